package transcript

import "context"

// Fetcher downloads captions for a video and returns them rendered in the given format.
// It returns ErrNoCaptions when nothing is available in the language.
type Fetcher interface {
	Fetch(ctx context.Context, videoID, language string, format Format, includeAuto bool) (string, error)
}

// Writer persists a rendered transcript
type Writer interface {
	WriteFile(path string, content string) error
}
