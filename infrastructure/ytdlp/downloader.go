package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"yt2mp3/domain/media"
	"yt2mp3/infrastructure/process"
	"yt2mp3/infrastructure/retry"
)

// Downloader implements media.Downloader by shelling out to yt-dlp
type Downloader struct {
	ytdlpPath  string
	ffmpegPath string
	runner     process.CommandRunner
	policy     retry.Policy
}

// Option is a functional option shared by the yt-dlp adapters
type Option func(*options)

type options struct {
	ytdlpPath  string
	ffmpegPath string
	runner     process.CommandRunner
	policy     retry.Policy
}

// WithYtdlpPath sets a custom yt-dlp executable path
func WithYtdlpPath(path string) Option {
	return func(o *options) {
		if path != "" {
			o.ytdlpPath = path
		}
	}
}

// WithFFmpegPath points yt-dlp at a specific ffmpeg binary
func WithFFmpegPath(path string) Option {
	return func(o *options) {
		o.ffmpegPath = path
	}
}

// WithCommandRunner sets a custom command runner (for testing)
func WithCommandRunner(runner process.CommandRunner) Option {
	return func(o *options) {
		o.runner = runner
	}
}

// WithRetryPolicy sets how transient download failures are retried
func WithRetryPolicy(p retry.Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

func buildOptions(opts []Option) options {
	o := options{
		ytdlpPath: "yt-dlp",
		runner:    &process.ExecCommandRunner{},
		policy:    retry.DefaultPolicy(0),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewDownloader creates a new yt-dlp based downloader
func NewDownloader(opts ...Option) *Downloader {
	o := buildOptions(opts)
	return &Downloader{
		ytdlpPath:  o.ytdlpPath,
		ffmpegPath: o.ffmpegPath,
		runner:     o.runner,
		policy:     o.policy,
	}
}

// Download implements media.Downloader
func (d *Downloader) Download(ctx context.Context, req *media.DownloadRequest, progress media.ProgressFunc) (string, error) {
	args := d.buildArgs(req)

	var finalPath string
	err := retry.Do(ctx, d.policy, IsTransient, func(ctx context.Context) error {
		finalPath = ""
		return d.runner.Stream(ctx, func(line string) {
			if pct, ok := parseProgress(line); ok {
				if progress != nil {
					progress(pct)
				}
				return
			}
			if isPathLine(line) {
				finalPath = strings.TrimSpace(line)
			}
		}, d.ytdlpPath, args...)
	})
	if err != nil {
		return "", fmt.Errorf("download failed: %w", err)
	}

	if finalPath == "" {
		finalPath = req.ExpectedPath()
	}
	if finalPath == "" {
		return "", fmt.Errorf("download finished but yt-dlp did not report the output file")
	}
	slog.Debug("download complete", "url", req.URL, "path", finalPath)
	return finalPath, nil
}

func (d *Downloader) buildArgs(req *media.DownloadRequest) []string {
	args := []string{
		flagExtractAudio,
		flagAudioFormat, "mp3",
		flagAudioQuality, req.Quality.YtdlpArg(),
		flagOutput, req.OutputTemplate(),
		flagNoPlaylist,
		flagNewline,
		flagProgress,
		flagProgressTmpl, progressTemplate,
		flagPrint, printFinalPath,
	}

	if d.ffmpegPath != "" {
		args = append(args, flagFFmpegLocation, d.ffmpegPath)
	}

	if trim := req.Window.TranscoderArgs(); len(trim) > 0 {
		args = append(args,
			flagExternalDLer, externalFFmpeg,
			flagExternalDLArgs, externalFFmpegInput+strings.Join(trim, " "),
		)
	}

	return append(args, req.URL)
}

// VerifyInstalled checks that yt-dlp is available
func (d *Downloader) VerifyInstalled(ctx context.Context) error {
	return verifyInstalled(ctx, d.runner, d.ytdlpPath)
}

func verifyInstalled(ctx context.Context, runner process.CommandRunner, path string) error {
	if _, err := runner.Output(ctx, path, flagVersion); err != nil {
		return fmt.Errorf("yt-dlp not found or not executable (install with: pip install yt-dlp): %w", err)
	}
	return nil
}

// parseProgress reads lines produced by progressTemplate, e.g. "[yt2mp3]  42.5%"
func parseProgress(line string) (float64, bool) {
	rest, ok := strings.CutPrefix(line, progressPrefix)
	if !ok {
		return 0, false
	}
	rest = strings.TrimSuffix(strings.TrimSpace(rest), "%")
	pct, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
	if err != nil {
		return 0, false
	}
	return pct, true
}

// isPathLine reports whether a stdout line is the file path printed after the move step
func isPathLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "[") {
		return false
	}
	return !strings.HasPrefix(line, "WARNING:") && !strings.HasPrefix(line, "ERROR:")
}

var transientMarkers = []string{
	"HTTP Error 5",
	"HTTP Error 429",
	"timed out",
	"Connection reset",
	"Temporary failure in name resolution",
	"Unable to download webpage",
	"IncompleteRead",
}

var permanentMarkers = []string{
	"Video unavailable",
	"Private video",
	"Unsupported URL",
	"is not a valid URL",
	"members-only",
	"Sign in to confirm your age",
}

// IsTransient classifies yt-dlp failures: network hiccups are retried, unavailable or unsupported videos are not
func IsTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var cmdErr *process.CommandError
	if !errors.As(err, &cmdErr) {
		return false
	}
	for _, m := range permanentMarkers {
		if strings.Contains(cmdErr.Stderr, m) {
			return false
		}
	}
	for _, m := range transientMarkers {
		if strings.Contains(cmdErr.Stderr, m) {
			return true
		}
	}
	return false
}

// Ensure Downloader implements media.Downloader
var _ media.Downloader = (*Downloader)(nil)
