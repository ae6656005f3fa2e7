package cmd

import (
	"context"
	"os"

	appdownload "yt2mp3/application/download"
	"yt2mp3/domain/clip"
	"yt2mp3/domain/media"
	"yt2mp3/infrastructure/ytdlp"

	"github.com/spf13/cobra"
)

var (
	downloadOutput   string
	downloadQuality  string
	downloadName     string
	downloadStart    string
	downloadDuration string
	downloadEnd      string
)

var downloadCmd = &cobra.Command{
	Use:     "download URL",
	Aliases: []string{"d"},
	Short:   "Download a YouTube video as MP3",
	Long: `Download a YouTube video and convert it to MP3.

Use --start with either --duration or --end to keep only part of the video.
Times accept seconds (90), clock values (1:30, 1:02:30) or units (1m30s).

Examples:
  yt2mp3 download "https://youtu.be/dQw4w9WgXcQ"
  yt2mp3 d "URL" -q 320 -n intro
  yt2mp3 d "URL" --start 12 --duration 20
  yt2mp3 d "URL" -s 1:30 -e 2:00`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)
	downloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "", "output directory for this download")
	downloadCmd.Flags().StringVarP(&downloadQuality, "quality", "q", "", qualityHelp())
	downloadCmd.Flags().StringVarP(&downloadName, "name", "n", "", "custom filename (without extension)")
	downloadCmd.Flags().StringVarP(&downloadStart, "start", "s", "", "start time (e.g. 12, 1:30, 1m30s)")
	downloadCmd.Flags().StringVarP(&downloadDuration, "duration", "d", "", "duration to capture (e.g. 20, 20s, 1:00)")
	downloadCmd.Flags().StringVarP(&downloadEnd, "end", "e", "", "end time (alternative to --duration)")
}

func runDownload(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}
	runner, err := newToolRunner(cfg)
	if err != nil {
		return err
	}
	quality, err := resolveQuality(downloadQuality, cfg)
	if err != nil {
		return err
	}

	downloader := ytdlp.NewDownloader(ytdlpOptions(cfg, runner)...)

	return RunDownloadWithDependencies(
		cmd.Context(),
		downloader,
		appdownload.Input{
			URL:       args[0],
			OutputDir: resolveDir(downloadOutput, cfg.Paths.OutputDirectory),
			Quality:   quality,
			Filename:  downloadName,
			Clip: clip.Request{
				Start:    downloadStart,
				Duration: downloadDuration,
				End:      downloadEnd,
			},
		},
		os.Stdout,
	)
}

// RunDownloadWithDependencies runs the download command with injected dependencies (for testing)
func RunDownloadWithDependencies(
	ctx context.Context,
	downloader media.Downloader,
	input appdownload.Input,
	output OutputWriter,
) error {
	// Clip arguments are checked before any tool runs
	if _, err := clip.Resolve(input.Clip); err != nil {
		return err
	}
	if err := verifyInstalled(ctx, downloader, "yt-dlp"); err != nil {
		return err
	}

	service := appdownload.NewService(downloader, output)
	_, err := service.Download(ctx, input)
	return err
}
