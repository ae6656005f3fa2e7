package ffmpeg

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"yt2mp3/domain/media"
	"yt2mp3/infrastructure/process"
)

// Prober implements media.DurationProber using ffprobe
type Prober struct {
	ffprobePath string
	runner      process.CommandRunner
}

// NewProber creates a new ffprobe-based duration prober
func NewProber(opts ...Option) *Prober {
	o := buildOptions(opts)
	return &Prober{ffprobePath: o.ffprobePath, runner: o.runner}
}

// Duration implements media.DurationProber
func (p *Prober) Duration(ctx context.Context, path string) (float64, error) {
	out, err := p.runner.Output(ctx, p.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "csv=p=0",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	text := strings.TrimSpace(string(out))
	d, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected ffprobe output %q: %w", text, err)
	}
	return d, nil
}

// Ensure Prober implements media.DurationProber
var _ media.DurationProber = (*Prober)(nil)
