package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"yt2mp3/domain/media"
	"yt2mp3/infrastructure/config"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

// ErrPromptCancelled is returned when the user aborts an interactive prompt
var ErrPromptCancelled = errors.New("prompt cancelled")

// Prompter interface for interactive prompts (allows mocking in tests)
type Prompter interface {
	Input(message string, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
	Select(message string, options []string, defaultValue string) (string, error)
	Password(message string) (string, error)
}

// SurveyPrompter implements Prompter using the survey library
type SurveyPrompter struct{}

func (p *SurveyPrompter) Input(message string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

func (p *SurveyPrompter) Select(message string, options []string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Select{
		Message: message,
		Options: options,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (p *SurveyPrompter) Password(message string) (string, error) {
	result := ""
	if err := survey.AskOne(&survey.Password{Message: message}, &result); err != nil {
		return "", err
	}
	return result, nil
}

// DefaultPrompter is the prompter used in production
var DefaultPrompter Prompter = &SurveyPrompter{}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create configuration file interactively",
	Long: `Prompts for configuration values and writes config.yaml.

This command guides you through choosing the output directories, the default
audio quality, the silence threshold, an optional YouTube Data API key and the
locations of yt-dlp, ffmpeg and ffprobe.`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	return RunSetupWithPrompter(DefaultPrompter, GetConfigPath(), DefaultOutput)
}

// RunSetupWithPrompter runs the setup with a given prompter (for testing)
func RunSetupWithPrompter(prompter Prompter, configPath string, out OutputWriter) error {
	// Existing values become the prompt defaults
	base := config.Default()
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := prompter.Confirm(fmt.Sprintf("%s already exists. Overwrite?", configPath), false)
		if err != nil {
			return ErrPromptCancelled
		}
		if !overwrite {
			fmt.Fprintln(out, "Setup cancelled.")
			return nil
		}
		if existing, err := config.Load(configPath); err == nil {
			base = existing
		}
	}

	fmt.Fprintln(out, "Welcome to yt2mp3 setup!")
	fmt.Fprintln(out)

	cfg := base

	if err := promptPaths(prompter, cfg); err != nil {
		return err
	}
	if err := promptAudio(prompter, cfg); err != nil {
		return err
	}
	if err := promptYouTube(prompter, cfg); err != nil {
		return err
	}
	if err := promptTools(prompter, cfg); err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Paths.OutputDirectory, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Configuration saved to %s\n", configPath)
	return nil
}

func promptPaths(prompter Prompter, cfg *config.Config) error {
	output, err := prompter.Input("Where should MP3 files be saved?", cfg.Paths.OutputDirectory)
	if err != nil {
		return ErrPromptCancelled
	}
	if strings.TrimSpace(output) == "" {
		return fmt.Errorf("output directory is required")
	}
	cfg.Paths.OutputDirectory = config.ExpandPath(output)

	transcripts, err := prompter.Input("Where should transcripts be saved?", cfg.Paths.TranscriptsDirectory)
	if err != nil {
		return ErrPromptCancelled
	}
	if strings.TrimSpace(transcripts) != "" {
		cfg.Paths.TranscriptsDirectory = config.ExpandPath(transcripts)
	}
	return nil
}

func promptAudio(prompter Prompter, cfg *config.Config) error {
	options := make([]string, len(media.QualityChoices))
	for i, q := range media.QualityChoices {
		options[i] = q.String()
	}
	current := strconv.Itoa(cfg.Audio.Quality)
	if !media.Quality(cfg.Audio.Quality).Valid() {
		current = media.DefaultQuality.String()
	}

	choice, err := prompter.Select("Default audio quality (kbps)?", options, current)
	if err != nil {
		return ErrPromptCancelled
	}
	q, err := media.ParseQuality(choice)
	if err != nil {
		return err
	}
	cfg.Audio.Quality = int(q)

	threshold, err := prompter.Input("Silence threshold for trim (dB, <= 0)?", strconv.FormatFloat(cfg.Audio.SilenceThresholdDB, 'g', -1, 64))
	if err != nil {
		return ErrPromptCancelled
	}
	t, err := strconv.ParseFloat(strings.TrimSpace(threshold), 64)
	if err != nil || t > 0 {
		return fmt.Errorf("%w: threshold %q (must be a dB value <= 0)", config.ErrInvalidValue, threshold)
	}
	cfg.Audio.SilenceThresholdDB = t
	return nil
}

func promptYouTube(prompter Prompter, cfg *config.Config) error {
	useAPI, err := prompter.Confirm("Use the YouTube Data API for search? (needs an API key)", cfg.YouTube.APIKey != "")
	if err != nil {
		return ErrPromptCancelled
	}
	if !useAPI {
		cfg.YouTube.APIKey = ""
		return nil
	}

	key, err := prompter.Password("YouTube Data API key:")
	if err != nil {
		return ErrPromptCancelled
	}
	key = strings.TrimSpace(key)
	if key == "" && cfg.YouTube.APIKey == "" {
		return fmt.Errorf("API key is required when using the Data API")
	}
	if key != "" {
		cfg.YouTube.APIKey = key
	}
	return nil
}

func promptTools(prompter Prompter, cfg *config.Config) error {
	custom, err := prompter.Confirm("Are yt-dlp, ffmpeg or ffprobe installed outside PATH?", false)
	if err != nil {
		return ErrPromptCancelled
	}
	if !custom {
		return nil
	}

	for _, tool := range []struct {
		label string
		field *string
	}{
		{"Path to yt-dlp:", &cfg.Tools.YtdlpPath},
		{"Path to ffmpeg:", &cfg.Tools.FFmpegPath},
		{"Path to ffprobe:", &cfg.Tools.FFprobePath},
	} {
		v, err := prompter.Input(tool.label, *tool.field)
		if err != nil {
			return ErrPromptCancelled
		}
		if strings.TrimSpace(v) != "" {
			*tool.field = config.ExpandPath(v)
		}
	}
	return nil
}
