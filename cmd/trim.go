package cmd

import (
	"context"
	"fmt"
	"os"

	apptrim "yt2mp3/application/trim"
	"yt2mp3/domain/media"
	"yt2mp3/infrastructure/ffmpeg"
	"yt2mp3/infrastructure/filesystem"

	"github.com/spf13/cobra"
)

var (
	trimAll       bool
	trimNoStart   bool
	trimNoEnd     bool
	trimThreshold float64
)

var trimCmd = &cobra.Command{
	Use:   "trim [FILE]",
	Short: "Remove silence from the start and end of MP3 files",
	Long: `Remove leading and trailing silence from an MP3 file, replacing it in place.

Examples:
  yt2mp3 trim "song.mp3"           # trim a specific file
  yt2mp3 trim --all                # trim every file in the output directory
  yt2mp3 trim song.mp3 --no-end    # only trim the start
  yt2mp3 trim song.mp3 -t -40      # more aggressive threshold`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTrim,
}

func init() {
	rootCmd.AddCommand(trimCmd)
	trimCmd.Flags().BoolVar(&trimAll, "all", false, "trim all files in the output directory")
	trimCmd.Flags().BoolVar(&trimNoStart, "no-start", false, "keep silence at the start")
	trimCmd.Flags().BoolVar(&trimNoEnd, "no-end", false, "keep silence at the end")
	trimCmd.Flags().Float64VarP(&trimThreshold, "threshold", "t", apptrim.DefaultThresholdDB, "silence threshold in dB (default from config, -50)")
}

func runTrim(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}
	runner, err := newToolRunner(cfg)
	if err != nil {
		return err
	}

	threshold := cfg.Audio.SilenceThresholdDB
	if cmd.Flags().Changed("threshold") {
		threshold = trimThreshold
	}
	file := ""
	if len(args) == 1 {
		file = args[0]
	}

	trimmer := ffmpeg.NewSilenceTrimmer(
		ffmpeg.WithFFmpegPath(cfg.Tools.FFmpegPath),
		ffmpeg.WithCommandRunner(runner),
	)
	prober := ffmpeg.NewProber(
		ffmpeg.WithFFprobePath(cfg.Tools.FFprobePath),
		ffmpeg.WithCommandRunner(runner),
	)

	return RunTrimWithDependencies(
		cmd.Context(),
		trimmer,
		prober,
		filesystem.NewLibrary(),
		filesystem.NewChecker(),
		TrimOptions{
			File:        file,
			All:         trimAll,
			Dir:         cfg.Paths.OutputDirectory,
			TrimStart:   !trimNoStart,
			TrimEnd:     !trimNoEnd,
			ThresholdDB: threshold,
			Quality:     media.Quality(cfg.Audio.Quality),
		},
		os.Stdout,
	)
}

// TrimOptions are the trim command's flags after defaults are applied
type TrimOptions struct {
	File        string
	All         bool
	Dir         string
	TrimStart   bool
	TrimEnd     bool
	ThresholdDB float64
	Quality     media.Quality
}

// RunTrimWithDependencies runs the trim command with injected dependencies (for testing)
func RunTrimWithDependencies(
	ctx context.Context,
	trimmer media.SilenceTrimmer,
	prober media.DurationProber,
	library media.Library,
	fileChecker media.FileChecker,
	opts TrimOptions,
	output OutputWriter,
) error {
	if opts.File == "" && !opts.All {
		return fmt.Errorf("specify a file or use --all to trim all files")
	}

	input := apptrim.Input{
		Path:        opts.File,
		TrimStart:   opts.TrimStart,
		TrimEnd:     opts.TrimEnd,
		ThresholdDB: opts.ThresholdDB,
		Quality:     opts.Quality,
	}
	if err := input.Validate(); err != nil {
		return err
	}
	if !opts.All && !fileChecker.Exists(opts.File) {
		return fmt.Errorf("file not found: %s", opts.File)
	}

	if err := verifyInstalled(ctx, trimmer, "ffmpeg"); err != nil {
		return err
	}

	service := apptrim.NewService(trimmer, prober, library, output)
	if opts.All {
		_, err := service.TrimAll(ctx, opts.Dir, input)
		return err
	}
	_, err := service.Trim(ctx, input)
	return err
}
