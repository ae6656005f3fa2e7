package media

import "context"

// ProgressFunc receives download progress as a percentage from 0 to 100
type ProgressFunc func(percent float64)

// Downloader fetches a video and converts it to MP3
// This is a port that can be implemented by different infrastructure adapters
type Downloader interface {
	// Download saves the audio described by req and returns the final file path
	Download(ctx context.Context, req *DownloadRequest, progress ProgressFunc) (string, error)
}

// SilenceTrimmer removes leading and/or trailing silence from an audio file in place
type SilenceTrimmer interface {
	TrimSilence(ctx context.Context, path string, opts SilenceOptions) error
}

// SilenceOptions controls which ends of a file are trimmed and how quiet counts as silence
type SilenceOptions struct {
	TrimStart   bool
	TrimEnd     bool
	ThresholdDB float64
	Quality     Quality
}

// DurationProber reports the duration of a media file in seconds
type DurationProber interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// FileChecker defines the interface for checking file existence
type FileChecker interface {
	// Exists returns true if the file exists
	Exists(path string) bool
}

// Library lists the MP3 files in a directory
type Library interface {
	// ListTracks returns MP3 files newest first; a missing directory yields no tracks
	ListTracks(dir string) ([]Track, error)
}
