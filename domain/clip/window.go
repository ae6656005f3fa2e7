package clip

import (
	"fmt"
	"math"
	"strings"
)

// Request holds the optional --start, --duration and --end values as typed by the user.
// An empty string means the value was not supplied.
type Request struct {
	Start    string
	Duration string
	End      string
}

// IsEmpty returns true if no clip value was supplied
func (r Request) IsEmpty() bool {
	return strings.TrimSpace(r.Start) == "" &&
		strings.TrimSpace(r.Duration) == "" &&
		strings.TrimSpace(r.End) == ""
}

// Describe returns a one-line summary of the request, e.g. "start=1:30, duration=30s"
func (r Request) Describe() string {
	start := strings.TrimSpace(r.Start)
	if start == "" {
		start = "0"
	}
	desc := "start=" + start
	if d := strings.TrimSpace(r.Duration); d != "" {
		desc += ", duration=" + d
	} else if e := strings.TrimSpace(r.End); e != "" {
		desc += ", end=" + e
	}
	return desc
}

// Window is a resolved clip range. A nil End means the clip runs to the end of the source.
type Window struct {
	Start Offset
	End   *Offset
}

// FullWindow returns the window covering the whole source
func FullWindow() Window {
	return Window{}
}

// Resolve validates a request and computes its clip window
func Resolve(req Request) (Window, error) {
	startText := strings.TrimSpace(req.Start)
	durationText := strings.TrimSpace(req.Duration)
	endText := strings.TrimSpace(req.End)

	if durationText != "" && endText != "" {
		return Window{}, fmt.Errorf("%w: got duration %q and end %q", ErrConflictingClipArgs, durationText, endText)
	}

	var start Offset
	if startText != "" {
		v, err := ParseOffset(startText)
		if err != nil {
			return Window{}, fmt.Errorf("invalid start time: %w", err)
		}
		start = v
	}

	switch {
	case durationText != "":
		d, err := ParseOffset(durationText)
		if err != nil {
			return Window{}, fmt.Errorf("invalid duration: %w", err)
		}
		if d <= 0 {
			return Window{}, fmt.Errorf("%w: duration %s must be greater than zero", ErrInvalidClipRange, d)
		}
		end := start + d
		switch {
		case math.IsInf(float64(end), 0):
			return Window{}, fmt.Errorf("%w: start %s plus duration %s is out of range", ErrInvalidClipRange, start, d)
		case end <= start:
			return Window{}, fmt.Errorf("%w: duration %s is too small to extend start %s", ErrInvalidClipRange, d, start)
		}
		return Window{Start: start, End: &end}, nil

	case endText != "":
		end, err := ParseOffset(endText)
		if err != nil {
			return Window{}, fmt.Errorf("invalid end time: %w", err)
		}
		if end <= start {
			return Window{}, fmt.Errorf("%w: end %ss must be after start %ss", ErrInvalidClipRange, end, start)
		}
		return Window{Start: start, End: &end}, nil
	}

	return Window{Start: start}, nil
}

// IsBounded returns true if the window has an end
func (w Window) IsBounded() bool {
	return w.End != nil
}

// IsFull returns true if the window covers the whole source
func (w Window) IsFull() bool {
	return w.Start == 0 && w.End == nil
}

// Duration returns the window length; ok is false for an unbounded window
func (w Window) Duration() (d Offset, ok bool) {
	if w.End == nil {
		return 0, false
	}
	return *w.End - w.Start, true
}

// TranscoderArgs returns ffmpeg input trim arguments: -ss for the start and -t for the length
func (w Window) TranscoderArgs() []string {
	var args []string
	if w.Start > 0 {
		args = append(args, "-ss", w.Start.String())
	}
	if d, ok := w.Duration(); ok {
		args = append(args, "-t", d.String())
	}
	return args
}

// String returns the window as "start-end" in seconds, e.g. "12-32" or "90-end"
func (w Window) String() string {
	if w.End == nil {
		return w.Start.String() + "-end"
	}
	return w.Start.String() + "-" + w.End.String()
}
