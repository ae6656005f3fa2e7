package transcript

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Cue is one timed caption line
type Cue struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// End returns the cue end in seconds
func (c Cue) End() float64 {
	return c.Start + c.Duration
}

var (
	srtTimingRegex = regexp.MustCompile(`^(\d{1,2}):(\d{2}):(\d{2})[,.](\d{3})\s*-->\s*(\d{1,2}):(\d{2}):(\d{2})[,.](\d{3})`)
	markupRegex    = regexp.MustCompile(`<[^>]+>|\{\\[^}]*\}`)
)

// ParseSRT reads SubRip cues. Index lines are optional and inline markup is stripped.
func ParseSRT(r io.Reader) ([]Cue, error) {
	var (
		cues    []Cue
		current *Cue
		lines   []string
		lineNo  int
	)

	flush := func() {
		if current != nil {
			current.Text = strings.TrimSpace(strings.Join(lines, " "))
			if current.Text != "" {
				cues = append(cues, *current)
			}
		}
		current = nil
		lines = nil
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))

		if line == "" {
			flush()
			continue
		}

		if m := srtTimingRegex.FindStringSubmatch(line); m != nil {
			flush()
			start := srtSeconds(m[1:5])
			end := srtSeconds(m[5:9])
			if end < start {
				return nil, fmt.Errorf("%w: line %d: end before start", ErrMalformedSRT, lineNo)
			}
			current = &Cue{Start: start, Duration: end - start}
			continue
		}

		if current == nil {
			// cue index or stray text before the first timing line
			if _, err := strconv.Atoi(line); err == nil {
				continue
			}
			return nil, fmt.Errorf("%w: line %d: expected timing, got %q", ErrMalformedSRT, lineNo, line)
		}

		if text := strings.TrimSpace(markupRegex.ReplaceAllString(line, "")); text != "" {
			lines = append(lines, text)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read subtitles: %w", err)
	}
	flush()

	return cues, nil
}

func srtSeconds(parts []string) float64 {
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	s, _ := strconv.Atoi(parts[2])
	ms, _ := strconv.Atoi(parts[3])
	return float64(h*3600+m*60+s) + float64(ms)/1000
}

// RenderText joins cue text into plain lines, dropping consecutive duplicates
// that auto-generated captions repeat while scrolling.
func RenderText(cues []Cue) string {
	var b strings.Builder
	var prev string
	for _, c := range cues {
		if c.Text == prev {
			continue
		}
		b.WriteString(c.Text)
		b.WriteByte('\n')
		prev = c.Text
	}
	return b.String()
}

// RenderJSON encodes cues as an indented JSON array
func RenderJSON(cues []Cue) (string, error) {
	if cues == nil {
		cues = []Cue{}
	}
	data, err := json.MarshalIndent(cues, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode transcript: %w", err)
	}
	return string(data) + "\n", nil
}
