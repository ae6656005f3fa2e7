package transcript

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"yt2mp3/domain/catalog"
	"yt2mp3/domain/transcript"
)

// --- Mock implementations for testing ---

type fetchCall struct {
	ID          string
	Language    string
	Format      transcript.Format
	IncludeAuto bool
}

type mockFetcher struct {
	calls     []fetchCall
	noCaption map[string]bool
	failIDs   map[string]error
}

func (m *mockFetcher) Fetch(ctx context.Context, videoID, language string, format transcript.Format, includeAuto bool) (string, error) {
	m.calls = append(m.calls, fetchCall{videoID, language, format, includeAuto})
	if m.noCaption[videoID] {
		return "", transcript.ErrNoCaptions
	}
	if err := m.failIDs[videoID]; err != nil {
		return "", err
	}
	return "captions for " + videoID + "\n", nil
}

type mockMetadata struct {
	video *catalog.Video
	err   error
}

func (m *mockMetadata) FetchVideo(ctx context.Context, url string) (*catalog.Video, error) {
	return m.video, m.err
}

type mockBrowser struct {
	playlist *catalog.Playlist
	err      error
	printed  bool
	out      io.Writer
}

func (m *mockBrowser) FetchPlaylist(ctx context.Context, url string) (*catalog.Playlist, error) {
	return m.playlist, m.err
}

func (m *mockBrowser) PrintEntries(pl *catalog.Playlist) {
	m.printed = true
	for i, v := range pl.Entries {
		fmt.Fprintf(m.out, "  %3d. %s\n", i+1, v.Title)
	}
}

type memoryWriter struct {
	files map[string]string
}

func (w *memoryWriter) WriteFile(path, content string) error {
	if w.files == nil {
		w.files = make(map[string]string)
	}
	w.files[path] = content
	return nil
}

func newRequest(t *testing.T, url string, format transcript.Format) *transcript.Request {
	t.Helper()
	req, err := transcript.NewRequest(url, "", format, true, "/transcripts")
	if err != nil {
		t.Fatalf("NewRequest() unexpected error: %v", err)
	}
	return req
}

const videoURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

func TestService_Download(t *testing.T) {
	fetcher := &mockFetcher{}
	writer := &memoryWriter{}
	meta := &mockMetadata{video: &catalog.Video{Title: "Never: Gonna?", Channel: "Rick Astley"}}
	var out bytes.Buffer
	svc := NewService(fetcher, meta, nil, writer, &out)

	path, err := svc.Download(context.Background(), newRequest(t, videoURL, transcript.FormatJSON))
	if err != nil {
		t.Fatalf("Download() unexpected error: %v", err)
	}

	want := filepath.Join("/transcripts", "Rick Astley", "Never_ Gonna_.json")
	if path != want {
		t.Errorf("Download() = %q, want %q", path, want)
	}
	if writer.files[want] != "captions for dQw4w9WgXcQ\n" {
		t.Errorf("written content = %q", writer.files[want])
	}
	if got := fetcher.calls[0]; got != (fetchCall{"dQw4w9WgXcQ", "en", transcript.FormatJSON, true}) {
		t.Errorf("fetch call = %+v", got)
	}
	for _, w := range []string{"Downloading transcript: " + videoURL, "Format: json", "Saved: " + want} {
		if !strings.Contains(out.String(), w) {
			t.Errorf("output missing %q:\n%s", w, out.String())
		}
	}
}

func TestService_DownloadWithoutMetadata(t *testing.T) {
	writer := &memoryWriter{}
	svc := NewService(&mockFetcher{}, &mockMetadata{err: errors.New("403")}, nil, writer, &bytes.Buffer{})

	path, err := svc.Download(context.Background(), newRequest(t, videoURL, transcript.FormatText))
	if err != nil {
		t.Fatalf("Download() unexpected error: %v", err)
	}
	if want := filepath.Join("/transcripts", "Unknown", "dQw4w9WgXcQ.txt"); path != want {
		t.Errorf("Download() = %q, want %q", path, want)
	}
}

func TestService_DownloadNoCaptions(t *testing.T) {
	writer := &memoryWriter{}
	var out bytes.Buffer
	fetcher := &mockFetcher{noCaption: map[string]bool{"dQw4w9WgXcQ": true}}
	svc := NewService(fetcher, &mockMetadata{video: &catalog.Video{Title: "t", Channel: "c"}}, nil, writer, &out)

	path, err := svc.Download(context.Background(), newRequest(t, videoURL, transcript.FormatText))
	if err != nil || path != "" {
		t.Fatalf("Download() = %q, %v; want \"\", nil", path, err)
	}
	if !strings.Contains(out.String(), "No captions available for this video.") {
		t.Errorf("output missing notice:\n%s", out.String())
	}
	if len(writer.files) != 0 {
		t.Error("file written without captions")
	}
}

func TestService_DownloadErrors(t *testing.T) {
	boom := errors.New("yt-dlp exited with status 1")
	tests := []struct {
		name    string
		url     string
		fetcher *mockFetcher
	}{
		{name: "not a video url", url: "https://example.com/nothing", fetcher: &mockFetcher{}},
		{name: "fetch failure", url: videoURL, fetcher: &mockFetcher{failIDs: map[string]error{"dQw4w9WgXcQ": boom}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.fetcher, &mockMetadata{video: &catalog.Video{}}, nil, &memoryWriter{}, &bytes.Buffer{})
			if _, err := svc.Download(context.Background(), newRequest(t, tt.url, transcript.FormatText)); err == nil {
				t.Error("Download() expected error")
			}
		})
	}
}

func samplePlaylist() *catalog.Playlist {
	return &catalog.Playlist{
		Title:   "Talks/2024",
		Channel: "Conf",
		Entries: []catalog.Video{
			{ID: "aaaaaaaaaaa", Title: "Opening"},
			{ID: "bbbbbbbbbbb", Title: "Silent"},
			{URL: "https://youtu.be/ccccccccccc", Title: "Broken"},
			{ID: "ddddddddddd", Title: "Closing"},
		},
	}
}

func TestService_Playlist(t *testing.T) {
	fetcher := &mockFetcher{
		noCaption: map[string]bool{"bbbbbbbbbbb": true},
		failIDs:   map[string]error{"ccccccccccc": errors.New("HTTP Error 500")},
	}
	writer := &memoryWriter{}
	var out bytes.Buffer
	svc := NewService(fetcher, nil, &mockBrowser{playlist: samplePlaylist(), out: &out}, writer, &out)

	req := newRequest(t, "https://www.youtube.com/playlist?list=PL1", transcript.FormatSRT)
	req.Max = 3
	result, err := svc.Playlist(context.Background(), req, false)
	if !errors.Is(err, ErrSomeFailed) {
		t.Fatalf("Playlist() error = %v, want ErrSomeFailed", err)
	}
	if len(result.Saved) != 1 || len(result.Skipped) != 1 || len(result.Failed) != 1 {
		t.Errorf("result = %+v", result)
	}

	dir := filepath.Join("/transcripts", "Conf", "Talks_2024")
	if result.OutputDir != dir {
		t.Errorf("OutputDir = %q, want %q", result.OutputDir, dir)
	}
	if _, ok := writer.files[filepath.Join(dir, "Opening.srt")]; !ok {
		t.Errorf("files written = %v", writer.files)
	}
	if len(fetcher.calls) != 3 {
		t.Errorf("fetched %d transcripts, want 3", len(fetcher.calls))
	}

	got := out.String()
	for _, w := range []string{
		"Downloading first 3 transcripts...\n",
		"Format: srt\n",
		"[1/3] Opening\n  -> Opening.srt\n",
		"[2/3] Silent\n  No captions available\n",
		"[3/3] Broken\n  Error: HTTP Error 500\n",
		"Completed: 1/3 succeeded\n",
		"Output: " + dir + "\n",
	} {
		if !strings.Contains(got, w) {
			t.Errorf("output missing %q:\n%s", w, got)
		}
	}
}

func TestService_PlaylistInfoOnly(t *testing.T) {
	fetcher := &mockFetcher{}
	var out bytes.Buffer
	browser := &mockBrowser{playlist: samplePlaylist(), out: &out}
	svc := NewService(fetcher, nil, browser, &memoryWriter{}, &out)

	result, err := svc.Playlist(context.Background(), newRequest(t, "https://www.youtube.com/playlist?list=PL1", transcript.FormatText), true)
	if err != nil || result != nil {
		t.Fatalf("Playlist() = %v, %v; want nil, nil", result, err)
	}
	if !browser.printed || len(fetcher.calls) != 0 {
		t.Errorf("printed=%v fetches=%d", browser.printed, len(fetcher.calls))
	}
}
