package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"yt2mp3/domain/media"
)

// Library implements media.Library over a local directory
type Library struct{}

// NewLibrary creates a new directory-backed track lister
func NewLibrary() *Library {
	return &Library{}
}

// ListTracks returns the .mp3 files directly inside dir, newest first.
// Hidden files, such as in-progress trims, are skipped.
func (l *Library) ListTracks(dir string) ([]media.Track, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var tracks []media.Track
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.EqualFold(filepath.Ext(name), ".mp3") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		tracks = append(tracks, media.Track{
			Name:      name,
			Path:      filepath.Join(dir, name),
			SizeBytes: info.Size(),
			ModTime:   info.ModTime(),
		})
	}

	sort.SliceStable(tracks, func(i, j int) bool {
		if tracks[i].ModTime.Equal(tracks[j].ModTime) {
			return tracks[i].Name < tracks[j].Name
		}
		return tracks[i].ModTime.After(tracks[j].ModTime)
	})
	return tracks, nil
}

// WriteFile writes content to path, creating parent directories
func (l *Library) WriteFile(path string, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// EnsureDir creates dir and any parents
func (l *Library) EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// Ensure Library implements media.Library
var _ media.Library = (*Library)(nil)
