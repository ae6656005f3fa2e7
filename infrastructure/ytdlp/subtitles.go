package ytdlp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"yt2mp3/domain/media"
	"yt2mp3/domain/transcript"
	"yt2mp3/infrastructure/process"
)

// Subtitles implements transcript.Fetcher by asking yt-dlp to write SRT captions
// into a scratch directory, then rendering them in the requested format.
type Subtitles struct {
	ytdlpPath string
	runner    process.CommandRunner
	tempDir   string
}

// NewSubtitles creates a yt-dlp backed caption fetcher
func NewSubtitles(opts ...Option) *Subtitles {
	o := buildOptions(opts)
	return &Subtitles{ytdlpPath: o.ytdlpPath, runner: o.runner}
}

// Fetch implements transcript.Fetcher
func (s *Subtitles) Fetch(ctx context.Context, videoID, language string, format transcript.Format, includeAuto bool) (string, error) {
	dir, err := os.MkdirTemp(s.tempDir, "yt2mp3-subs-")
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(dir)

	args := []string{
		flagSkipDownload,
		flagWriteSubs,
	}
	if includeAuto {
		args = append(args, flagWriteAutoSubs)
	}
	args = append(args,
		flagSubLangs, language,
		flagSubFormat, "srt/best",
		flagConvertSubs, "srt",
		flagNoWarnings,
		flagOutput, filepath.Join(dir, "%(id)s.%(ext)s"),
		media.WatchURL(videoID),
	)

	if err := s.runner.Run(ctx, s.ytdlpPath, args...); err != nil {
		return "", fmt.Errorf("failed to fetch subtitles: %w", err)
	}

	path, err := findSubtitleFile(dir)
	if err != nil {
		return "", err
	}

	if format == transcript.FormatSRT {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read subtitles: %w", err)
		}
		return string(data), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open subtitles: %w", err)
	}
	defer f.Close()

	cues, err := transcript.ParseSRT(f)
	if err != nil {
		return "", err
	}
	if len(cues) == 0 {
		return "", transcript.ErrNoCaptions
	}

	if format == transcript.FormatJSON {
		return transcript.RenderJSON(cues)
	}
	return transcript.RenderText(cues), nil
}

func findSubtitleFile(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.srt"))
	if err != nil {
		return "", fmt.Errorf("failed to list subtitles: %w", err)
	}
	for _, m := range matches {
		if !strings.HasSuffix(m, ".live_chat.srt") {
			return m, nil
		}
	}
	return "", transcript.ErrNoCaptions
}

var _ transcript.Fetcher = (*Subtitles)(nil)
