package clip

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Offset is a non-negative position in seconds from the start of a track
type Offset float64

var (
	// plainSecondsRegex matches "12" or "12.5"
	plainSecondsRegex = regexp.MustCompile(`^\d+(\.\d+)?$`)

	// clockRegex matches MM:SS or H:MM:SS
	clockRegex = regexp.MustCompile(`^(\d+):(\d+)(?::(\d+))?$`)

	// unitRegex matches 1h2m3s, 1m30s, 90s and 1m30 (bare trailing seconds)
	unitRegex = regexp.MustCompile(`^(?:(\d+)h)?(?:(\d+)m)?(?:(\d+(?:\.\d+)?)s?)?$`)
)

// ParseOffset parses a human time string into seconds.
//
// Accepted forms, tried in order:
//   - plain seconds: "12", "12.5"
//   - clock: "1:30", "1:02:30"
//   - unit suffixed: "90s", "1m30s", "1h2m3s", "1m30"
//
// A bare number is always seconds, so "130" is 130 seconds and never 1:30.
func ParseOffset(text string) (Offset, error) {
	s := strings.ToLower(strings.TrimSpace(text))

	if plainSecondsRegex.MatchString(s) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsInf(v, 0) {
			return 0, invalidFormat(text)
		}
		return Offset(v), nil
	}

	if strings.Contains(s, ":") {
		return parseClock(text, s)
	}

	return parseUnits(text, s)
}

func parseClock(original, s string) (Offset, error) {
	m := clockRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, invalidFormat(original)
	}

	parts := []string{m[1], m[2]}
	if m[3] != "" {
		parts = append(parts, m[3])
	}

	var total float64
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return 0, invalidFormat(original)
		}
		if i > 0 && v >= 60 {
			return 0, fmt.Errorf("%w: %q: minutes and seconds must be 0-59", ErrInvalidTimeFormat, original)
		}
		total = total*60 + float64(v)
	}

	return Offset(total), nil
}

func parseUnits(original, s string) (Offset, error) {
	if s == "" || !strings.ContainsAny(s, "hms") {
		return 0, invalidFormat(original)
	}

	m := unitRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, invalidFormat(original)
	}

	var total float64
	if m[1] != "" {
		h, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, invalidFormat(original)
		}
		total += float64(h) * 3600
	}
	if m[2] != "" {
		mins, err := strconv.Atoi(m[2])
		if err != nil {
			return 0, invalidFormat(original)
		}
		total += float64(mins) * 60
	}
	if m[3] != "" {
		secs, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			return 0, invalidFormat(original)
		}
		total += secs
	}

	if math.IsInf(total, 0) {
		return 0, invalidFormat(original)
	}
	return Offset(total), nil
}

func invalidFormat(text string) error {
	return fmt.Errorf("%w: %q (expected e.g. 12, 1:30, 1m30s or 1:02:30)", ErrInvalidTimeFormat, text)
}

// Seconds returns the offset as a float
func (o Offset) Seconds() float64 {
	return float64(o)
}

// String returns the canonical numeric-seconds form, which ParseOffset reads back exactly
func (o Offset) String() string {
	return strconv.FormatFloat(float64(o), 'f', -1, 64)
}

// Clock formats the offset as M:SS or H:MM:SS, truncating fractional seconds
func (o Offset) Clock() string {
	total := int64(o)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
