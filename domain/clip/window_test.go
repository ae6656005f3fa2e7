package clip

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func offsetPtr(v Offset) *Offset {
	return &v
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		req         Request
		wantStart   Offset
		wantEnd     *Offset
		wantErr     error
		errContains string
	}{
		{
			name:      "no arguments is the whole file",
			req:       Request{},
			wantStart: 0,
		},
		{
			name:      "start and duration",
			req:       Request{Start: "12", Duration: "20"},
			wantStart: 12,
			wantEnd:   offsetPtr(32),
		},
		{
			name:      "start and end in clock form",
			req:       Request{Start: "1:30", End: "2:00"},
			wantStart: 90,
			wantEnd:   offsetPtr(120),
		},
		{
			name:      "unit suffixed start and duration",
			req:       Request{Start: "1m30s", Duration: "30s"},
			wantStart: 90,
			wantEnd:   offsetPtr(120),
		},
		{
			name:      "start only is unbounded",
			req:       Request{Start: "45"},
			wantStart: 45,
		},
		{
			name:      "duration without start begins at zero",
			req:       Request{Duration: "1:00"},
			wantStart: 0,
			wantEnd:   offsetPtr(60),
		},
		{
			name:      "end without start begins at zero",
			req:       Request{End: "10"},
			wantStart: 0,
			wantEnd:   offsetPtr(10),
		},
		{
			name:    "duration and end conflict",
			req:     Request{Start: "10", Duration: "5", End: "20"},
			wantErr: ErrConflictingClipArgs,
		},
		{
			name:    "conflict is reported before parsing",
			req:     Request{Start: "bogus", Duration: "bogus", End: "bogus"},
			wantErr: ErrConflictingClipArgs,
		},
		{
			name:        "end before start",
			req:         Request{Start: "20", End: "10"},
			wantErr:     ErrInvalidClipRange,
			errContains: "end 10s must be after start 20s",
		},
		{
			name:    "end equal to start",
			req:     Request{Start: "1:00", End: "60"},
			wantErr: ErrInvalidClipRange,
		},
		{
			name:    "zero duration",
			req:     Request{Start: "5", Duration: "0"},
			wantErr: ErrInvalidClipRange,
		},
		{
			name:        "zero duration names the duration",
			req:         Request{Start: "5", Duration: "0"},
			wantErr:     ErrInvalidClipRange,
			errContains: "duration 0 must be greater than zero",
		},
		{
			name:        "duration lost to float precision",
			req:         Request{Start: "100000000000000000", Duration: "1"},
			wantErr:     ErrInvalidClipRange,
			errContains: "too small to extend start",
		},
		{
			name:        "start plus duration overflows",
			req:         Request{Start: "1" + strings.Repeat("0", 308), Duration: "1" + strings.Repeat("0", 308)},
			wantErr:     ErrInvalidClipRange,
			errContains: "out of range",
		},
		{
			name:        "invalid start",
			req:         Request{Start: "abc"},
			wantErr:     ErrInvalidTimeFormat,
			errContains: "invalid start time",
		},
		{
			name:        "invalid duration",
			req:         Request{Duration: "1:99"},
			wantErr:     ErrInvalidTimeFormat,
			errContains: "invalid duration",
		},
		{
			name:        "invalid end",
			req:         Request{End: "soon"},
			wantErr:     ErrInvalidTimeFormat,
			errContains: "invalid end time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Resolve() error = %v, want %v", err, tt.wantErr)
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("Resolve() error = %v, want error containing %q", err, tt.errContains)
				}
				return
			}

			if err != nil {
				t.Fatalf("Resolve() unexpected error: %v", err)
			}
			if got.Start != tt.wantStart {
				t.Errorf("Resolve() Start = %v, want %v", got.Start, tt.wantStart)
			}
			switch {
			case tt.wantEnd == nil && got.End != nil:
				t.Errorf("Resolve() End = %v, want unbounded", *got.End)
			case tt.wantEnd != nil && got.End == nil:
				t.Errorf("Resolve() End = unbounded, want %v", *tt.wantEnd)
			case tt.wantEnd != nil && *got.End != *tt.wantEnd:
				t.Errorf("Resolve() End = %v, want %v", *got.End, *tt.wantEnd)
			}
		})
	}
}

func TestWindow_TranscoderArgs(t *testing.T) {
	tests := []struct {
		name   string
		window Window
		want   []string
	}{
		{name: "full file", window: FullWindow(), want: nil},
		{name: "start only", window: Window{Start: 90}, want: []string{"-ss", "90"}},
		{name: "bounded from zero", window: Window{End: offsetPtr(30)}, want: []string{"-t", "30"}},
		{name: "start and end", window: Window{Start: 12, End: offsetPtr(32)}, want: []string{"-ss", "12", "-t", "20"}},
		{name: "fractional", window: Window{Start: 1.5, End: offsetPtr(4)}, want: []string{"-ss", "1.5", "-t", "2.5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.window.TranscoderArgs(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Window.TranscoderArgs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWindow_Accessors(t *testing.T) {
	full := FullWindow()
	if !full.IsFull() || full.IsBounded() {
		t.Errorf("FullWindow() IsFull=%v IsBounded=%v, want true/false", full.IsFull(), full.IsBounded())
	}
	if _, ok := full.Duration(); ok {
		t.Error("FullWindow().Duration() ok = true, want false")
	}
	if got := full.String(); got != "0-end" {
		t.Errorf("FullWindow().String() = %q, want %q", got, "0-end")
	}

	w := Window{Start: 12, End: offsetPtr(32)}
	if w.IsFull() || !w.IsBounded() {
		t.Errorf("bounded window IsFull=%v IsBounded=%v, want false/true", w.IsFull(), w.IsBounded())
	}
	if d, ok := w.Duration(); !ok || d != 20 {
		t.Errorf("Window.Duration() = %v, %v, want 20, true", d, ok)
	}
	if got := w.String(); got != "12-32" {
		t.Errorf("Window.String() = %q, want %q", got, "12-32")
	}
}

func TestRequest_Describe(t *testing.T) {
	tests := []struct {
		req       Request
		want      string
		wantEmpty bool
	}{
		{req: Request{}, want: "start=0", wantEmpty: true},
		{req: Request{Start: "12", Duration: "20"}, want: "start=12, duration=20"},
		{req: Request{Start: "1:30", End: "2:00"}, want: "start=1:30, end=2:00"},
		{req: Request{End: "2:00"}, want: "start=0, end=2:00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.req.Describe(); got != tt.want {
				t.Errorf("Request.Describe() = %q, want %q", got, tt.want)
			}
			if got := tt.req.IsEmpty(); got != tt.wantEmpty {
				t.Errorf("Request.IsEmpty() = %v, want %v", got, tt.wantEmpty)
			}
		})
	}
}
