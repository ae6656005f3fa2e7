package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"yt2mp3/domain/media"
)

// DefaultInterval is how often the clipboard is polled
const DefaultInterval = time.Second

// ErrInvalidInterval is returned for a poll interval that is not positive
var ErrInvalidInterval = errors.New("interval must be greater than zero")

// ErrStopped is returned by a Handler to end the watch, for example when the
// user interrupts a confirmation prompt
var ErrStopped = errors.New("watch stopped")

// ClipboardReader returns the current clipboard text
type ClipboardReader interface {
	Read(ctx context.Context) (string, error)
}

// Handler is invoked once for each new YouTube URL
type Handler func(ctx context.Context, url string) error

// Watcher polls the clipboard and reports YouTube URLs it has not seen before
type Watcher struct {
	clipboard ClipboardReader
	interval  time.Duration
	output    io.Writer
	sessionID string
}

// NewWatcher creates a watcher polling every interval
func NewWatcher(clipboard ClipboardReader, interval time.Duration, output io.Writer) (*Watcher, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInterval, interval)
	}
	return &Watcher{
		clipboard: clipboard,
		interval:  interval,
		output:    output,
		sessionID: uuid.NewString(),
	}, nil
}

// SessionID identifies this watcher in log output
func (w *Watcher) SessionID() string {
	return w.sessionID
}

// Run polls until ctx is canceled. Clipboard failures count as an empty clipboard
// and handler errors are printed; neither stops the loop.
func (w *Watcher) Run(ctx context.Context, handle Handler) error {
	log := slog.With("session", w.sessionID)
	log.Debug("clipboard watcher started", "interval", w.interval)

	seen := make(map[string]struct{})
	last := ""

	for {
		if ctx.Err() != nil {
			log.Debug("clipboard watcher stopped", "seen", len(seen))
			return nil
		}

		text, err := w.clipboard.Read(ctx)
		if err != nil {
			log.Debug("clipboard read failed", "error", err)
			text = ""
		}

		if text != last {
			last = text
			if url := media.ExtractYouTubeURL(text); url != "" {
				if _, dup := seen[url]; !dup {
					seen[url] = struct{}{}
					err := handle(ctx, url)
					if errors.Is(err, ErrStopped) {
						log.Debug("clipboard watcher stopped by handler", "seen", len(seen))
						return nil
					}
					if err != nil {
						fmt.Fprintf(w.output, "Error: %v\n", err)
					}
				}
			}
		}

		select {
		case <-ctx.Done():
		case <-time.After(w.interval):
		}
	}
}
