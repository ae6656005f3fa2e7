package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	appdownload "yt2mp3/application/download"
	appwatch "yt2mp3/application/watch"
	"yt2mp3/domain/media"
	"yt2mp3/infrastructure/clipboard"
	"yt2mp3/infrastructure/process"
	"yt2mp3/infrastructure/ytdlp"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"
)

var (
	watchQuality  string
	watchOutput   string
	watchYes      bool
	watchInterval float64
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the clipboard for YouTube URLs and download them",
	Long: `Poll the clipboard and offer to download every new YouTube URL copied.

Each URL is handled once per session. Press Ctrl+C to stop.

Examples:
  yt2mp3 watch              # ask before each download
  yt2mp3 watch -y           # download without asking
  yt2mp3 watch -q 320 -y`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&watchQuality, "quality", "q", "", qualityHelp())
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "output directory")
	watchCmd.Flags().BoolVarP(&watchYes, "yes", "y", false, "download without prompting")
	watchCmd.Flags().Float64VarP(&watchInterval, "interval", "i", 0, "clipboard check interval in seconds (default from config, 1)")
}

// promptConfirmer adapts a Prompter to the watcher's yes/no question
type promptConfirmer struct {
	prompter Prompter
}

// Confirm maps Ctrl+C at the prompt to appwatch.ErrStopped
func (c promptConfirmer) Confirm(question string) (bool, error) {
	ok, err := c.prompter.Confirm(question, true)
	if errors.Is(err, terminal.InterruptErr) {
		return false, appwatch.ErrStopped
	}
	return ok, err
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}
	runner, err := newToolRunner(cfg)
	if err != nil {
		return err
	}
	quality, err := resolveQuality(watchQuality, cfg)
	if err != nil {
		return err
	}
	interval := cfg.WatchInterval()
	if cmd.Flags().Changed("interval") {
		interval = time.Duration(watchInterval * float64(time.Second))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	return RunWatchWithDependencies(
		ctx,
		clipboard.NewReader(process.NewExecCommandRunner(0)),
		ytdlp.NewDownloader(ytdlpOptions(cfg, runner)...),
		promptConfirmer{prompter: DefaultPrompter},
		appwatch.Options{
			OutputDir:   resolveDir(watchOutput, cfg.Paths.OutputDirectory),
			Quality:     quality,
			AutoConfirm: watchYes,
		},
		interval,
		os.Stdout,
	)
}

// RunWatchWithDependencies runs the watch command with injected dependencies (for testing).
// It returns when ctx is canceled.
func RunWatchWithDependencies(
	ctx context.Context,
	reader appwatch.ClipboardReader,
	downloader media.Downloader,
	confirm appwatch.Confirmer,
	opts appwatch.Options,
	interval time.Duration,
	output OutputWriter,
) error {
	watcher, err := appwatch.NewWatcher(reader, interval, output)
	if err != nil {
		return err
	}
	if err := verifyInstalled(ctx, downloader, "yt-dlp"); err != nil {
		return err
	}

	appwatch.PrintBanner(output, opts)
	handler := appwatch.NewDownloadHandler(appdownload.NewService(downloader, output), confirm, opts, output)
	if err := watcher.Run(ctx, handler); err != nil {
		return err
	}

	fmt.Fprintln(output, "\nStopped watching.")
	return nil
}
