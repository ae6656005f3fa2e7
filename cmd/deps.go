package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"yt2mp3/domain/media"
	"yt2mp3/infrastructure/config"
	"yt2mp3/infrastructure/process"
	"yt2mp3/infrastructure/retry"
	"yt2mp3/infrastructure/ytdlp"
)

// OutputWriter allows capturing output in tests
type OutputWriter = io.Writer

const verifyTimeout = 5 * time.Second

// verifyInstalled runs VerifyInstalled on dep when it supports it
func verifyInstalled(ctx context.Context, dep any, tool string) error {
	verifiable, ok := dep.(interface{ VerifyInstalled(context.Context) error })
	if !ok {
		return nil
	}
	verifyCtx, cancel := context.WithTimeout(ctx, verifyTimeout)
	defer cancel()
	if err := verifiable.VerifyInstalled(verifyCtx); err != nil {
		return fmt.Errorf("%s verification failed: %w", tool, err)
	}
	return nil
}

// newToolRunner returns a runner bounded by tools.timeout
func newToolRunner(c *config.Config) (*process.ExecCommandRunner, error) {
	timeout, err := c.ToolTimeout()
	if err != nil {
		return nil, err
	}
	return process.NewExecCommandRunner(timeout), nil
}

// ytdlpOptions configures the yt-dlp adapters from the config file
func ytdlpOptions(c *config.Config, runner process.CommandRunner) []ytdlp.Option {
	return []ytdlp.Option{
		ytdlp.WithYtdlpPath(c.Tools.YtdlpPath),
		ytdlp.WithFFmpegPath(c.Tools.FFmpegPath),
		ytdlp.WithCommandRunner(runner),
		ytdlp.WithRetryPolicy(retry.DefaultPolicy(c.Tools.Retries)),
	}
}

// resolveQuality prefers the flag, then the config file
func resolveQuality(flag string, c *config.Config) (media.Quality, error) {
	if flag != "" {
		return media.ParseQuality(flag)
	}
	q := media.Quality(c.Audio.Quality)
	if !q.Valid() {
		return 0, fmt.Errorf("%w: audio.quality %d in config", media.ErrInvalidQuality, c.Audio.Quality)
	}
	return q, nil
}

// resolveDir prefers the flag, then the configured directory
func resolveDir(flag, configured string) string {
	if flag != "" {
		return config.ExpandPath(flag)
	}
	return configured
}

func qualityHelp() string {
	return fmt.Sprintf("audio quality in kbps: %v (default from config, 192)", media.QualityChoices)
}
