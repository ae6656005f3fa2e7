package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	appdownload "yt2mp3/application/download"
	"yt2mp3/domain/media"
	"yt2mp3/infrastructure/ytdlp"

	"github.com/spf13/cobra"
)

var (
	batchFile    string
	batchOutput  string
	batchQuality string
)

var batchCmd = &cobra.Command{
	Use:   "batch [URLS...]",
	Short: "Download several videos as MP3",
	Long: `Download a list of videos one after another.

URLs come from the arguments and, with --file, from a text file with one URL
per line. Blank lines and lines starting with # are ignored. The command
exits non-zero if any download failed.

Examples:
  yt2mp3 batch "URL1" "URL2"
  yt2mp3 batch -f urls.txt -q 320`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVarP(&batchFile, "file", "f", "", "file containing URLs (one per line)")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "output directory for downloads")
	batchCmd.Flags().StringVarP(&batchQuality, "quality", "q", "", qualityHelp())
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}
	runner, err := newToolRunner(cfg)
	if err != nil {
		return err
	}
	quality, err := resolveQuality(batchQuality, cfg)
	if err != nil {
		return err
	}

	var list io.Reader
	if batchFile != "" {
		f, err := os.Open(batchFile)
		if err != nil {
			return fmt.Errorf("failed to open URL file: %w", err)
		}
		defer f.Close()
		list = f
	}

	return RunBatchWithDependencies(
		cmd.Context(),
		ytdlp.NewDownloader(ytdlpOptions(cfg, runner)...),
		args,
		list,
		resolveDir(batchOutput, cfg.Paths.OutputDirectory),
		quality,
		os.Stdout,
	)
}

// RunBatchWithDependencies runs the batch command with injected dependencies (for testing).
// urlList may be nil when no --file was given.
func RunBatchWithDependencies(
	ctx context.Context,
	downloader media.Downloader,
	urls []string,
	urlList io.Reader,
	outputDir string,
	quality media.Quality,
	output OutputWriter,
) error {
	all := append([]string(nil), urls...)
	if urlList != nil {
		fromFile, err := media.ParseURLList(urlList)
		if err != nil {
			return err
		}
		all = append(all, fromFile...)
	}
	if len(all) == 0 {
		return fmt.Errorf("%w: pass URLs as arguments or use -f/--file", media.ErrNoURLs)
	}

	if err := verifyInstalled(ctx, downloader, "yt-dlp"); err != nil {
		return err
	}

	service := appdownload.NewService(downloader, output)
	_, err := service.Batch(ctx, all, outputDir, quality)
	return err
}
