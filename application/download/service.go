package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"yt2mp3/domain/clip"
	"yt2mp3/domain/media"
)

// ErrSomeFailed is returned by Queue when at least one item could not be downloaded
var ErrSomeFailed = errors.New("some downloads failed")

// Service downloads videos as MP3, one at a time
type Service struct {
	downloader media.Downloader
	output     io.Writer
}

// NewService creates a new download service
func NewService(downloader media.Downloader, output io.Writer) *Service {
	return &Service{
		downloader: downloader,
		output:     output,
	}
}

// Input contains the parameters for a single download
type Input struct {
	URL       string
	OutputDir string
	Quality   media.Quality
	Filename  string       // Optional custom name without extension
	Clip      clip.Request // Optional --start/--duration/--end
}

// Download resolves the clip window, fetches the audio and returns the saved path.
// Clip arguments are validated before anything is printed or downloaded.
func (s *Service) Download(ctx context.Context, in Input) (string, error) {
	window, err := clip.Resolve(in.Clip)
	if err != nil {
		return "", err
	}

	req, err := media.NewDownloadRequest(in.URL, in.OutputDir, in.Quality, in.Filename, window)
	if err != nil {
		return "", err
	}

	fmt.Fprintf(s.output, "Downloading: %s\n", req.URL)
	fmt.Fprintf(s.output, "Quality: %s kbps\n", req.Quality)
	if !in.Clip.IsEmpty() {
		fmt.Fprintf(s.output, "Clip: %s\n", in.Clip.Describe())
	}
	fmt.Fprintf(s.output, "Output: %s\n\n", req.OutputDir)

	bar := newProgressBar(s.output)
	path, err := s.downloader.Download(ctx, req, bar.Update)
	bar.Finish(err == nil)
	if err != nil {
		return "", err
	}

	fmt.Fprintf(s.output, "Saved: %s\n", path)
	return path, nil
}

// Item is one entry in a download queue
type Item struct {
	URL   string
	Label string // Shown in the [i/n] line; the URL when empty
}

// QueueResult summarises a queue run
type QueueResult struct {
	Succeeded []string // saved paths
	Failed    []Item
}

// Total returns the number of items attempted
func (r *QueueResult) Total() int {
	return len(r.Succeeded) + len(r.Failed)
}

// Queue downloads items sequentially at full length. A failed item is reported
// and skipped; the returned error wraps ErrSomeFailed if any item failed.
func (s *Service) Queue(ctx context.Context, items []Item, outputDir string, quality media.Quality) (*QueueResult, error) {
	result := &QueueResult{}
	total := len(items)

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("stopped after %d of %d: %w", i, total, err)
		}

		label := item.Label
		if label == "" {
			label = item.URL
		}
		fmt.Fprintf(s.output, "[%d/%d] %s\n", i+1, total, label)

		path, err := s.downloadQuiet(ctx, item.URL, outputDir, quality)
		if err != nil {
			fmt.Fprintf(s.output, "  Error: %v\n", err)
			result.Failed = append(result.Failed, item)
			continue
		}
		fmt.Fprintf(s.output, "  -> %s\n", filepath.Base(path))
		result.Succeeded = append(result.Succeeded, path)
	}

	fmt.Fprintf(s.output, "\nCompleted: %d/%d succeeded\n", len(result.Succeeded), total)
	if len(result.Failed) > 0 {
		fmt.Fprintf(s.output, "Failed (%d):\n", len(result.Failed))
		for _, item := range result.Failed {
			fmt.Fprintf(s.output, "  %s\n", item.URL)
		}
		return result, fmt.Errorf("%w: %d of %d", ErrSomeFailed, len(result.Failed), total)
	}
	return result, nil
}

// Batch downloads a list of URLs, printing a header before the queue
func (s *Service) Batch(ctx context.Context, urls []string, outputDir string, quality media.Quality) (*QueueResult, error) {
	if len(urls) == 0 {
		return nil, fmt.Errorf("%w: pass URLs as arguments or use -f/--file", media.ErrNoURLs)
	}
	if quality == 0 {
		quality = media.DefaultQuality
	}

	fmt.Fprintf(s.output, "Downloading %d videos...\n", len(urls))
	fmt.Fprintf(s.output, "Quality: %s kbps\n", quality)
	fmt.Fprintf(s.output, "Output: %s\n\n", outputDir)

	items := make([]Item, len(urls))
	for i, u := range urls {
		items[i] = Item{URL: u}
	}
	return s.Queue(ctx, items, outputDir, quality)
}

func (s *Service) downloadQuiet(ctx context.Context, url, outputDir string, quality media.Quality) (string, error) {
	req, err := media.NewDownloadRequest(url, outputDir, quality, "", clip.FullWindow())
	if err != nil {
		return "", err
	}
	return s.downloader.Download(ctx, req, nil)
}
