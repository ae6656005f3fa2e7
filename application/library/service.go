package library

import (
	"context"
	"fmt"
	"io"

	"yt2mp3/domain/media"
)

// DefaultListCount is how many tracks list shows without -n
const DefaultListCount = 20

// FolderOpener shows a directory to the user
type FolderOpener interface {
	Open(ctx context.Context, dir string) error
}

// Service reports on the MP3s in the output directory
type Service struct {
	library media.Library
	opener  FolderOpener
	output  io.Writer
}

// NewService creates a new library service
func NewService(library media.Library, opener FolderOpener, output io.Writer) *Service {
	return &Service{
		library: library,
		opener:  opener,
		output:  output,
	}
}

// List prints up to count tracks in dir, newest first
func (s *Service) List(dir string, count int) ([]media.Track, error) {
	if count <= 0 {
		count = DefaultListCount
	}

	tracks, err := s.library.ListTracks(dir)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		fmt.Fprintf(s.output, "No MP3 files in %s\n", dir)
		return nil, nil
	}

	fmt.Fprintf(s.output, "MP3 files in %s:\n\n", dir)
	shown := tracks
	if len(shown) > count {
		shown = shown[:count]
	}
	for _, t := range shown {
		fmt.Fprintf(s.output, "  %6.1f MB  %s\n", t.SizeMB(), t.Name)
	}
	if rest := len(tracks) - len(shown); rest > 0 {
		fmt.Fprintf(s.output, "\n  ... and %d more files\n", rest)
	}
	return tracks, nil
}

// Summary describes the configured directories and what they hold
type Summary struct {
	ConfigPath     string
	OutputDir      string
	TranscriptsDir string
	Quality        media.Quality
	SearchBackend  string
}

// PrintSummary prints the configuration followed by file totals for the output directory
func (s *Service) PrintSummary(sum Summary) error {
	tracks, err := s.library.ListTracks(sum.OutputDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.output, "Config file: %s\n", sum.ConfigPath)
	fmt.Fprintf(s.output, "Output directory: %s\n", sum.OutputDir)
	if sum.TranscriptsDir != "" {
		fmt.Fprintf(s.output, "Transcripts directory: %s\n", sum.TranscriptsDir)
	}
	if sum.Quality != 0 {
		fmt.Fprintf(s.output, "Quality: %s kbps\n", sum.Quality)
	}
	if sum.SearchBackend != "" {
		fmt.Fprintf(s.output, "Search: %s\n", sum.SearchBackend)
	}
	fmt.Fprintf(s.output, "Total files: %d\n", len(tracks))
	fmt.Fprintf(s.output, "Total size: %.1f MB\n", media.TotalSizeMB(tracks))
	return nil
}

// Open shows dir in the platform file manager
func (s *Service) Open(ctx context.Context, dir string) error {
	if err := s.opener.Open(ctx, dir); err != nil {
		return err
	}
	fmt.Fprintf(s.output, "Opened: %s\n", dir)
	return nil
}
