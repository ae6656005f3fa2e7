package media

import (
	"fmt"
	"strconv"
	"strings"
)

// Quality is an MP3 bitrate in kbps
type Quality int

const (
	Quality128 Quality = 128
	Quality192 Quality = 192
	Quality320 Quality = 320

	// DefaultQuality is used when neither the flag nor the config sets one
	DefaultQuality = Quality192
)

// QualityChoices lists the accepted bitrates, for flag help text
var QualityChoices = []Quality{Quality128, Quality192, Quality320}

// ParseQuality parses "128", "192k" or "320 kbps" into a Quality
func ParseQuality(s string) (Quality, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimSuffix(s, "kbps")
	s = strings.TrimSuffix(strings.TrimSpace(s), "k")

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q (choose 128, 192 or 320)", ErrInvalidQuality, s)
	}
	q := Quality(n)
	if !q.Valid() {
		return 0, fmt.Errorf("%w: %d (choose 128, 192 or 320)", ErrInvalidQuality, n)
	}
	return q, nil
}

// Valid returns true for one of the supported bitrates
func (q Quality) Valid() bool {
	for _, c := range QualityChoices {
		if q == c {
			return true
		}
	}
	return false
}

// YtdlpArg returns the value for yt-dlp --audio-quality, e.g. "192K"
func (q Quality) YtdlpArg() string {
	return fmt.Sprintf("%dK", int(q))
}

// FFmpegBitrate returns the value for ffmpeg -b:a, e.g. "192k"
func (q Quality) FFmpegBitrate() string {
	return fmt.Sprintf("%dk", int(q))
}

func (q Quality) String() string {
	return strconv.Itoa(int(q))
}
