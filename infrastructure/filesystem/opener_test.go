package filesystem

import (
	"context"
	"errors"
	"testing"

	"yt2mp3/infrastructure/process"
)

func TestOpenCommand(t *testing.T) {
	tests := []struct {
		goos    string
		want    string
		wantErr bool
	}{
		{goos: "darwin", want: "open"},
		{goos: "windows", want: "explorer"},
		{goos: "linux", want: "xdg-open"},
		{goos: "plan9", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args, err := OpenCommand(tt.goos, "/music")
			if tt.wantErr {
				if err == nil {
					t.Error("OpenCommand() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("OpenCommand() unexpected error: %v", err)
			}
			if name != tt.want || len(args) != 1 || args[0] != "/music" {
				t.Errorf("OpenCommand() = %q %v", name, args)
			}
		})
	}
}

func TestOpener_Open(t *testing.T) {
	failing := func(process.Call) ([]byte, error) {
		return nil, &process.CommandError{Name: "x", ExitCode: 1}
	}

	linux := &Opener{goos: "linux", runner: &process.FakeRunner{Handler: failing}}
	if err := linux.Open(context.Background(), "/music"); err == nil {
		t.Error("Open() on linux expected error when xdg-open fails")
	}

	windows := &Opener{goos: "windows", runner: &process.FakeRunner{Handler: failing}}
	if err := windows.Open(context.Background(), "/music"); err != nil {
		t.Errorf("Open() on windows error = %v, want nil", err)
	}

	runner := &process.FakeRunner{}
	mac := &Opener{goos: "darwin", runner: runner}
	if err := mac.Open(context.Background(), "/music"); err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	if got := runner.LastCall().CommandLine(); got != "open /music" {
		t.Errorf("command = %q, want %q", got, "open /music")
	}

	var cmdErr *process.CommandError
	err := linux.Open(context.Background(), "/music")
	if !errors.As(err, &cmdErr) {
		t.Errorf("Open() error = %v, want wrapped CommandError", err)
	}
}
