package transcript

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
)

const sampleSRT = `1
00:00:01,000 --> 00:00:03,500
Hello <i>there</i>

2
00:00:03,500 --> 00:00:05,000
general
kenobi

3
00:01:00.250 --> 00:01:02,000
Hello there
`

func TestParseSRT(t *testing.T) {
	cues, err := ParseSRT(strings.NewReader(sampleSRT))
	if err != nil {
		t.Fatalf("ParseSRT() unexpected error: %v", err)
	}
	if len(cues) != 3 {
		t.Fatalf("ParseSRT() returned %d cues, want 3", len(cues))
	}

	want := []Cue{
		{Start: 1, Duration: 2.5, Text: "Hello there"},
		{Start: 3.5, Duration: 1.5, Text: "general kenobi"},
		{Start: 60.25, Duration: 1.75, Text: "Hello there"},
	}
	for i, w := range want {
		got := cues[i]
		if got.Text != w.Text {
			t.Errorf("cue %d Text = %q, want %q", i, got.Text, w.Text)
		}
		if math.Abs(got.Start-w.Start) > 1e-9 || math.Abs(got.Duration-w.Duration) > 1e-9 {
			t.Errorf("cue %d timing = (%v, %v), want (%v, %v)", i, got.Start, got.Duration, w.Start, w.Duration)
		}
	}
}

func TestParseSRT_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "text before timing", input: "hello\n00:00:01,000 --> 00:00:02,000\nx\n"},
		{name: "end before start", input: "1\n00:00:05,000 --> 00:00:02,000\nx\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSRT(strings.NewReader(tt.input)); !errors.Is(err, ErrMalformedSRT) {
				t.Errorf("ParseSRT() error = %v, want ErrMalformedSRT", err)
			}
		})
	}
}

func TestParseSRT_Empty(t *testing.T) {
	cues, err := ParseSRT(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseSRT() unexpected error: %v", err)
	}
	if len(cues) != 0 {
		t.Errorf("ParseSRT() returned %d cues, want 0", len(cues))
	}
}

func TestRenderText(t *testing.T) {
	cues := []Cue{{Text: "one"}, {Text: "one"}, {Text: "two"}, {Text: "one"}}
	if got, want := RenderText(cues), "one\ntwo\none\n"; got != want {
		t.Errorf("RenderText() = %q, want %q", got, want)
	}
}

func TestRenderJSON(t *testing.T) {
	out, err := RenderJSON([]Cue{{Start: 1, Duration: 2.5, Text: "hi"}})
	if err != nil {
		t.Fatalf("RenderJSON() unexpected error: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("RenderJSON() produced invalid JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0]["text"] != "hi" || decoded[0]["start"] != 1.0 {
		t.Errorf("RenderJSON() = %s", out)
	}

	empty, err := RenderJSON(nil)
	if err != nil {
		t.Fatalf("RenderJSON(nil) unexpected error: %v", err)
	}
	if strings.TrimSpace(empty) != "[]" {
		t.Errorf("RenderJSON(nil) = %q, want []", empty)
	}
}
