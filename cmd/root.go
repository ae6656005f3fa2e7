package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"yt2mp3/infrastructure/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
	cfgErr  error
)

var rootCmd = &cobra.Command{
	Use:   "yt2mp3",
	Short: "Download YouTube videos as MP3 files",
	Long: `yt2mp3 downloads YouTube videos as MP3 files, optionally keeping only
part of the video, and keeps them organized in one output directory.

  - Download single videos, batches or whole playlists
  - Clip a time range with --start, --duration or --end
  - Search YouTube and download a result
  - Watch the clipboard for YouTube links
  - Trim leading and trailing silence
  - Save captions as text, SRT or JSON

Requires yt-dlp and ffmpeg on PATH.

Example:
  yt2mp3 download "https://youtu.be/dQw4w9WgXcQ" --start 1:30 --duration 30s`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initLogging, initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.yt2mp3/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log external commands and retries to stderr")
}

func initLogging() {
	slog.SetDefault(newLogger(os.Stderr, verbose))
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func initConfig() {
	// .env is optional
	_ = godotenv.Load()

	if cfgFile == "" {
		cfgFile = config.DefaultPath()
	}
	cfg, cfgErr = config.LoadOrDefault(cfgFile)
	if cfgErr != nil {
		slog.Debug("configuration not loaded", "path", cfgFile, "error", cfgErr)
	}
}

// GetConfig returns the loaded configuration
func GetConfig() (*config.Config, error) {
	if cfgErr != nil {
		return nil, fmt.Errorf("failed to load configuration from %s: %w", cfgFile, cfgErr)
	}
	if cfg == nil {
		return config.Default(), nil
	}
	return cfg, nil
}

// GetConfigPath returns the config file in use
func GetConfigPath() string {
	if cfgFile == "" {
		return config.DefaultPath()
	}
	return cfgFile
}
