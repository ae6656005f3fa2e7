package media

import (
	"fmt"
	"path/filepath"
	"strings"

	"yt2mp3/domain/clip"
)

// DownloadRequest represents a request to download a video as MP3
type DownloadRequest struct {
	URL       string
	OutputDir string
	Quality   Quality
	Filename  string // Optional: custom name without extension
	Window    clip.Window
}

// NewDownloadRequest creates a new DownloadRequest with validation
func NewDownloadRequest(url, outputDir string, quality Quality, filename string, window clip.Window) (*DownloadRequest, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, ErrURLRequired
	}

	if outputDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}

	if quality == 0 {
		quality = DefaultQuality
	}
	if !quality.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuality, int(quality))
	}

	filename = strings.TrimSuffix(strings.TrimSpace(filename), ".mp3")
	if strings.ContainsAny(filename, `/\`) || filename == "." || filename == ".." {
		return nil, fmt.Errorf("%w: %q must not contain path separators", ErrInvalidFilename, filename)
	}

	return &DownloadRequest{
		URL:       url,
		OutputDir: outputDir,
		Quality:   quality,
		Filename:  filename,
		Window:    window,
	}, nil
}

// HasClip returns true if only part of the source should be kept
func (r *DownloadRequest) HasClip() bool {
	return !r.Window.IsFull()
}

// OutputTemplate returns the yt-dlp output template for this request
func (r *DownloadRequest) OutputTemplate() string {
	if r.Filename != "" {
		return filepath.Join(r.OutputDir, r.Filename+".%(ext)s")
	}
	return filepath.Join(r.OutputDir, "%(title)s.%(ext)s")
}

// ExpectedPath returns the final MP3 path when a custom filename was given
func (r *DownloadRequest) ExpectedPath() string {
	if r.Filename == "" {
		return ""
	}
	return filepath.Join(r.OutputDir, r.Filename+".mp3")
}
