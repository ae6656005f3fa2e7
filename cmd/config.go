package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	applibrary "yt2mp3/application/library"
	"yt2mp3/domain/media"
	"yt2mp3/infrastructure/config"
	"yt2mp3/infrastructure/filesystem"

	"github.com/spf13/cobra"
)

// DefaultOutput is the default output writer for config commands
var DefaultOutput OutputWriter = os.Stdout

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the configuration",
	Long: `Show the config file location, the output directory and how many MP3s it holds.

Examples:
  yt2mp3 config
  yt2mp3 config set quality 320
  yt2mp3 config keys`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configKeysCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}
	return RunConfigShowWithDependencies(filesystem.NewLibrary(), cfg, GetConfigPath(), DefaultOutput)
}

// RunConfigShowWithDependencies prints the configuration summary with injected dependencies
func RunConfigShowWithDependencies(library media.Library, cfg *config.Config, configPath string, out OutputWriter) error {
	backend := "yt-dlp"
	if cfg.YouTube.APIKey != "" {
		backend = "YouTube Data API"
	}

	service := applibrary.NewService(library, nil, out)
	return service.PrintSummary(applibrary.Summary{
		ConfigPath:     configPath,
		OutputDir:      cfg.Paths.OutputDirectory,
		TranscriptsDir: cfg.Paths.TranscriptsDirectory,
		Quality:        media.Quality(cfg.Audio.Quality),
		SearchBackend:  backend,
	})
}

// --- SET command ---

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change a single setting",
	Long: `Validate and store a single setting in the config file.

Keys: output_dir, transcripts_dir, quality, threshold, api_key,
      ytdlp_path, ffmpeg_path, ffprobe_path

Examples:
  yt2mp3 config set quality 320
  yt2mp3 config set output_dir ~/Music/yt2mp3
  yt2mp3 config set threshold -40`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}
	return RunConfigSetWithDependencies(cfg, GetConfigPath(), args[0], args[1], DefaultOutput)
}

// RunConfigSetWithDependencies runs the set command with injected dependencies
func RunConfigSetWithDependencies(cfg *config.Config, configPath, key, value string, out OutputWriter) error {
	mgr := config.NewConfigManager(cfg, configPath)
	if err := mgr.Set(key, value); err != nil {
		return err
	}
	fmt.Fprintf(out, "Set %s in %s\n", key, configPath)
	return nil
}

// --- KEYS command ---

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the settings accepted by config set",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		return RunConfigKeysWithDependencies(cfg, DefaultOutput)
	},
}

// RunConfigKeysWithDependencies lists each settable key with its current value
func RunConfigKeysWithDependencies(cfg *config.Config, out OutputWriter) error {
	values := map[string]string{
		"output_dir":      cfg.Paths.OutputDirectory,
		"transcripts_dir": cfg.Paths.TranscriptsDirectory,
		"quality":         strconv.Itoa(cfg.Audio.Quality),
		"threshold":       strconv.FormatFloat(cfg.Audio.SilenceThresholdDB, 'g', -1, 64),
		"api_key":         maskSecret(cfg.YouTube.APIKey),
		"ytdlp_path":      cfg.Tools.YtdlpPath,
		"ffmpeg_path":     cfg.Tools.FFmpegPath,
		"ffprobe_path":    cfg.Tools.FFprobePath,
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tVALUE")
	for _, k := range config.Keys() {
		fmt.Fprintf(w, "%s\t%s\n", k, values[k])
	}
	return w.Flush()
}

func maskSecret(s string) string {
	switch {
	case s == "":
		return "(not set)"
	case len(s) <= 4:
		return "****"
	default:
		return "****" + s[len(s)-4:]
	}
}
