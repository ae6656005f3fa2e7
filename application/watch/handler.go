package watch

import (
	"context"
	"errors"
	"fmt"
	"io"

	"yt2mp3/application/download"
	"yt2mp3/domain/media"
)

// Confirmer asks the user a yes/no question
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// Downloader saves a single URL
type Downloader interface {
	Download(ctx context.Context, in download.Input) (string, error)
}

// Options control what happens when a URL is detected
type Options struct {
	OutputDir   string
	Quality     media.Quality
	AutoConfirm bool
}

// PrintBanner prints the watcher header
func PrintBanner(out io.Writer, opts Options) {
	fmt.Fprintln(out, "Watching clipboard for YouTube URLs...")
	fmt.Fprintf(out, "Quality: %s kbps\n", opts.Quality)
	fmt.Fprintf(out, "Output: %s\n", opts.OutputDir)
	if opts.AutoConfirm {
		fmt.Fprintln(out, "Auto-download: ON")
	}
	fmt.Fprintln(out, "Press Ctrl+C to stop.")
	fmt.Fprintln(out)
}

// NewDownloadHandler returns a Handler that confirms and downloads each detected URL.
// A failed download is printed and the watcher keeps going. A Confirmer returning
// ErrStopped ends the watch.
func NewDownloadHandler(downloads Downloader, confirm Confirmer, opts Options, out io.Writer) Handler {
	return func(ctx context.Context, url string) error {
		fmt.Fprintf(out, "\nDetected: %s\n", url)

		if !opts.AutoConfirm {
			ok, err := confirm.Confirm("Download?")
			if errors.Is(err, ErrStopped) {
				return err
			}
			if err != nil {
				return fmt.Errorf("confirmation failed: %w", err)
			}
			if !ok {
				fmt.Fprintln(out, "Skipped.")
				return nil
			}
		}

		if _, err := downloads.Download(ctx, download.Input{
			URL:       url,
			OutputDir: opts.OutputDir,
			Quality:   opts.Quality,
		}); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
		fmt.Fprintln(out, "\nWatching...")
		return nil
	}
}
