package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"yt2mp3/domain/media"
	"yt2mp3/infrastructure/process"
)

// minSilenceSeconds is how long a quiet stretch must last before it is removed
const minSilenceSeconds = "0.1"

// SilenceTrimmer implements media.SilenceTrimmer using ffmpeg's silenceremove filter
type SilenceTrimmer struct {
	ffmpegPath string
	runner     process.CommandRunner
}

// Option is a functional option for configuring the ffmpeg adapters
type Option func(*options)

type options struct {
	ffmpegPath  string
	ffprobePath string
	runner      process.CommandRunner
}

// WithFFmpegPath sets a custom ffmpeg executable path
func WithFFmpegPath(path string) Option {
	return func(o *options) {
		if path != "" {
			o.ffmpegPath = path
		}
	}
}

// WithFFprobePath sets a custom ffprobe executable path
func WithFFprobePath(path string) Option {
	return func(o *options) {
		if path != "" {
			o.ffprobePath = path
		}
	}
}

// WithCommandRunner sets a custom command runner (for testing)
func WithCommandRunner(runner process.CommandRunner) Option {
	return func(o *options) {
		o.runner = runner
	}
}

func buildOptions(opts []Option) options {
	o := options{
		ffmpegPath:  "ffmpeg",
		ffprobePath: "ffprobe",
		runner:      &process.ExecCommandRunner{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewSilenceTrimmer creates a new ffmpeg-based silence trimmer
func NewSilenceTrimmer(opts ...Option) *SilenceTrimmer {
	o := buildOptions(opts)
	return &SilenceTrimmer{ffmpegPath: o.ffmpegPath, runner: o.runner}
}

// TrimSilence implements media.SilenceTrimmer. The file is re-encoded to a hidden
// sibling and renamed over the original only when ffmpeg succeeds.
func (t *SilenceTrimmer) TrimSilence(ctx context.Context, path string, opts media.SilenceOptions) error {
	filter := SilenceFilter(opts)
	if filter == "" {
		return fmt.Errorf("nothing to trim: both start and end trimming are disabled")
	}

	quality := opts.Quality
	if !quality.Valid() {
		quality = media.DefaultQuality
	}

	tmpPath := filepath.Join(filepath.Dir(path), "."+uuid.NewString()+".mp3")
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", path,
		"-af", filter,
		"-codec:a", "libmp3lame",
		"-b:a", quality.FFmpegBitrate(),
		"-map_metadata", "0",
		"-y",
		tmpPath,
	}

	if err := t.runner.Run(ctx, t.ffmpegPath, args...); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("ffmpeg silence removal failed: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

// SilenceFilter builds the -af filter chain. Trailing silence is removed by
// reversing the audio, stripping its new leading silence and reversing back.
func SilenceFilter(opts media.SilenceOptions) string {
	remove := fmt.Sprintf("silenceremove=start_periods=1:start_duration=%s:start_threshold=%gdB",
		minSilenceSeconds, opts.ThresholdDB)

	var chain []string
	if opts.TrimStart {
		chain = append(chain, remove)
	}
	if opts.TrimEnd {
		chain = append(chain, "areverse", remove, "areverse")
	}
	return strings.Join(chain, ",")
}

// VerifyInstalled checks that ffmpeg is available
func (t *SilenceTrimmer) VerifyInstalled(ctx context.Context) error {
	if _, err := t.runner.Output(ctx, t.ffmpegPath, "-version"); err != nil {
		return fmt.Errorf("ffmpeg not found or not executable: %w", err)
	}
	return nil
}

// Ensure SilenceTrimmer implements media.SilenceTrimmer
var _ media.SilenceTrimmer = (*SilenceTrimmer)(nil)
