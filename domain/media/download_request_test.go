package media

import (
	"errors"
	"strings"
	"testing"

	"yt2mp3/domain/clip"
)

func TestNewDownloadRequest(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		outputDir   string
		quality     Quality
		filename    string
		wantQuality Quality
		wantName    string
		wantErr     error
		errContains string
	}{
		{
			name:        "valid request",
			url:         "https://youtu.be/dQw4w9WgXcQ",
			outputDir:   "/music",
			quality:     Quality320,
			wantQuality: Quality320,
		},
		{
			name:        "default quality",
			url:         "https://youtu.be/dQw4w9WgXcQ",
			outputDir:   "/music",
			wantQuality: DefaultQuality,
		},
		{
			name:        "custom filename drops mp3 extension",
			url:         "https://youtu.be/dQw4w9WgXcQ",
			outputDir:   "/music",
			filename:    "intro.mp3",
			wantQuality: DefaultQuality,
			wantName:    "intro",
		},
		{
			name:      "empty url",
			url:       "  ",
			outputDir: "/music",
			wantErr:   ErrURLRequired,
		},
		{
			name:      "unsupported quality",
			url:       "https://youtu.be/dQw4w9WgXcQ",
			outputDir: "/music",
			quality:   256,
			wantErr:   ErrInvalidQuality,
		},
		{
			name:      "filename with separator",
			url:       "https://youtu.be/dQw4w9WgXcQ",
			outputDir: "/music",
			filename:  "../escape",
			wantErr:   ErrInvalidFilename,
		},
		{
			name:        "missing output dir",
			url:         "https://youtu.be/dQw4w9WgXcQ",
			errContains: "output directory is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewDownloadRequest(tt.url, tt.outputDir, tt.quality, tt.filename, clip.FullWindow())

			if tt.wantErr != nil || tt.errContains != "" {
				if err == nil {
					t.Fatal("NewDownloadRequest() expected error, got nil")
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Errorf("NewDownloadRequest() error = %v, want %v", err, tt.wantErr)
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("NewDownloadRequest() error = %v, want error containing %q", err, tt.errContains)
				}
				return
			}

			if err != nil {
				t.Fatalf("NewDownloadRequest() unexpected error: %v", err)
			}
			if got.Quality != tt.wantQuality {
				t.Errorf("Quality = %d, want %d", got.Quality, tt.wantQuality)
			}
			if got.Filename != tt.wantName {
				t.Errorf("Filename = %q, want %q", got.Filename, tt.wantName)
			}
		})
	}
}

func TestDownloadRequest_OutputTemplate(t *testing.T) {
	req := &DownloadRequest{OutputDir: "/music"}
	if got, want := req.OutputTemplate(), "/music/%(title)s.%(ext)s"; got != want {
		t.Errorf("OutputTemplate() = %q, want %q", got, want)
	}
	if got := req.ExpectedPath(); got != "" {
		t.Errorf("ExpectedPath() = %q, want empty", got)
	}

	req.Filename = "intro"
	if got, want := req.OutputTemplate(), "/music/intro.%(ext)s"; got != want {
		t.Errorf("OutputTemplate() = %q, want %q", got, want)
	}
	if got, want := req.ExpectedPath(), "/music/intro.mp3"; got != want {
		t.Errorf("ExpectedPath() = %q, want %q", got, want)
	}
}

func TestDownloadRequest_HasClip(t *testing.T) {
	req := &DownloadRequest{Window: clip.FullWindow()}
	if req.HasClip() {
		t.Error("HasClip() = true for full window")
	}

	w, err := clip.Resolve(clip.Request{Start: "12", Duration: "20"})
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}
	req.Window = w
	if !req.HasClip() {
		t.Error("HasClip() = false for bounded window")
	}
}
