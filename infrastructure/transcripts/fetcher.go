package transcripts

import (
	"context"
	"fmt"
	"strings"

	"github.com/horiagug/youtube-transcript-api-go/pkg/yt_transcript"
	"github.com/horiagug/youtube-transcript-api-go/pkg/yt_transcript_formatters"

	"yt2mp3/domain/transcript"
)

// Fetcher implements transcript.Fetcher for txt and json output using the
// youtube-transcript-api client. SRT and manual-only requests go to Fallback.
type Fetcher struct {
	Fallback transcript.Fetcher

	// newClient is swapped in tests
	newClient func(f yt_transcript_formatters.Formatter) transcriptClient
}

type transcriptClient interface {
	GetFormattedTranscripts(videoID string, languages []string, preserveFormatting bool) (string, error)
}

// NewFetcher creates a fetcher that defers to fallback for what the API client cannot do
func NewFetcher(fallback transcript.Fetcher) *Fetcher {
	return &Fetcher{
		Fallback: fallback,
		newClient: func(f yt_transcript_formatters.Formatter) transcriptClient {
			return yt_transcript.NewClient(yt_transcript.WithFormatter(f))
		},
	}
}

// Fetch implements transcript.Fetcher
func (f *Fetcher) Fetch(ctx context.Context, videoID, language string, format transcript.Format, includeAuto bool) (string, error) {
	// The API client cannot tell manual captions from generated ones, nor emit SRT
	if format == transcript.FormatSRT || !includeAuto {
		if f.Fallback == nil {
			return "", fmt.Errorf("%s transcripts without auto captions are not supported", format)
		}
		return f.Fallback.Fetch(ctx, videoID, language, format, includeAuto)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := f.newClient(formatterFor(format))
	text, err := client.GetFormattedTranscripts(videoID, []string{language}, false)
	if err != nil {
		if isNoTranscript(err) {
			return "", fmt.Errorf("%w: %v", transcript.ErrNoCaptions, err)
		}
		return "", fmt.Errorf("failed to fetch transcript: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", transcript.ErrNoCaptions
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text, nil
}

func formatterFor(format transcript.Format) yt_transcript_formatters.Formatter {
	if format == transcript.FormatJSON {
		return yt_transcript_formatters.NewJSONFormatter(
			yt_transcript_formatters.WithTimestamps(true),
			yt_transcript_formatters.WithLanguageCode(true),
		)
	}
	return yt_transcript_formatters.NewTextFormatter(
		yt_transcript_formatters.WithTimestamps(false),
		yt_transcript_formatters.WithLanguageCode(false),
	)
}

var noTranscriptMarkers = []string{
	"no transcript",
	"transcripts disabled",
	"subtitles are disabled",
	"no captions",
	"could not find",
}

func isNoTranscript(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, m := range noTranscriptMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

var _ transcript.Fetcher = (*Fetcher)(nil)
