package ytdlp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"yt2mp3/domain/transcript"
	"yt2mp3/infrastructure/process"
)

const sampleSRT = "1\n00:00:00,000 --> 00:00:02,000\nhello\n\n2\n00:00:02,000 --> 00:00:04,000\nworld\n"

// writingRunner simulates yt-dlp writing a subtitle file next to the -o template
func writingRunner(t *testing.T, content string) *process.FakeRunner {
	t.Helper()
	return &process.FakeRunner{
		Handler: func(call process.Call) ([]byte, error) {
			tmpl, ok := argValue(call.Args, "-o")
			if !ok {
				t.Fatal("missing -o argument")
			}
			if content == "" {
				return nil, nil
			}
			path := filepath.Join(filepath.Dir(tmpl), "dQw4w9WgXcQ.en.srt")
			return nil, os.WriteFile(path, []byte(content), 0644)
		},
	}
}

func TestSubtitles_Fetch(t *testing.T) {
	tests := []struct {
		name   string
		format transcript.Format
		check  func(t *testing.T, out string)
	}{
		{
			name:   "srt is returned verbatim",
			format: transcript.FormatSRT,
			check: func(t *testing.T, out string) {
				if out != sampleSRT {
					t.Errorf("Fetch() = %q, want raw SRT", out)
				}
			},
		},
		{
			name:   "txt",
			format: transcript.FormatText,
			check: func(t *testing.T, out string) {
				if out != "hello\nworld\n" {
					t.Errorf("Fetch() = %q, want plain text", out)
				}
			},
		},
		{
			name:   "json",
			format: transcript.FormatJSON,
			check: func(t *testing.T, out string) {
				if !strings.Contains(out, `"text": "world"`) {
					t.Errorf("Fetch() = %q, want JSON cues", out)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSubtitles(WithCommandRunner(writingRunner(t, sampleSRT)))
			s.tempDir = t.TempDir()

			out, err := s.Fetch(context.Background(), "dQw4w9WgXcQ", "en", tt.format, true)
			if err != nil {
				t.Fatalf("Fetch() unexpected error: %v", err)
			}
			tt.check(t, out)
		})
	}
}

func TestSubtitles_AutoCaptionsFlag(t *testing.T) {
	runner := writingRunner(t, sampleSRT)
	s := NewSubtitles(WithCommandRunner(runner))
	s.tempDir = t.TempDir()

	if _, err := s.Fetch(context.Background(), "dQw4w9WgXcQ", "de", transcript.FormatText, false); err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}

	args := runner.LastCall().Args
	if slices.Contains(args, "--write-auto-subs") {
		t.Error("--write-auto-subs passed although auto captions were excluded")
	}
	if v, _ := argValue(args, "--sub-langs"); v != "de" {
		t.Errorf("--sub-langs = %q, want de", v)
	}
}

func TestSubtitles_NoCaptions(t *testing.T) {
	s := NewSubtitles(WithCommandRunner(writingRunner(t, "")))
	s.tempDir = t.TempDir()

	_, err := s.Fetch(context.Background(), "dQw4w9WgXcQ", "en", transcript.FormatText, true)
	if !errors.Is(err, transcript.ErrNoCaptions) {
		t.Errorf("Fetch() error = %v, want ErrNoCaptions", err)
	}
}
