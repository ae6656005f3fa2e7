package clipboard

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"yt2mp3/infrastructure/process"
)

// readTimeout bounds each clipboard read so a hung helper cannot stall the watcher
const readTimeout = time.Second

// ErrUnsupported is returned on platforms without a known clipboard helper
var ErrUnsupported = errors.New("clipboard access is not supported on this platform")

type command struct {
	name string
	args []string
}

// commandsFor lists clipboard helpers for goos in order of preference
func commandsFor(goos string) []command {
	switch goos {
	case "darwin":
		return []command{{name: "pbpaste"}}
	case "windows":
		return []command{{name: "powershell", args: []string{"-NoProfile", "-Command", "Get-Clipboard"}}}
	case "linux", "freebsd", "openbsd", "netbsd":
		return []command{
			{name: "wl-paste", args: []string{"--no-newline"}},
			{name: "xclip", args: []string{"-selection", "clipboard", "-o"}},
			{name: "xsel", args: []string{"--clipboard", "--output"}},
		}
	default:
		return nil
	}
}

// Reader reads text from the system clipboard through a platform helper
type Reader struct {
	commands []command
	runner   process.CommandRunner
	// working remembers the first helper that succeeded
	working int
}

// NewReader creates a clipboard reader for the current OS
func NewReader(runner process.CommandRunner) *Reader {
	return newReader(runtime.GOOS, runner)
}

func newReader(goos string, runner process.CommandRunner) *Reader {
	return &Reader{commands: commandsFor(goos), runner: runner, working: -1}
}

// Read returns the trimmed clipboard text
func (r *Reader) Read(ctx context.Context) (string, error) {
	if len(r.commands) == 0 {
		return "", ErrUnsupported
	}

	order := make([]int, 0, len(r.commands))
	if r.working >= 0 {
		order = append(order, r.working)
	}
	for i := range r.commands {
		if i != r.working {
			order = append(order, i)
		}
	}

	var lastErr error
	for _, i := range order {
		c := r.commands[i]
		readCtx, cancel := context.WithTimeout(ctx, readTimeout)
		out, err := r.runner.Output(readCtx, c.name, c.args...)
		cancel()
		if err == nil {
			r.working = i
			return strings.TrimSpace(string(out)), nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("failed to read clipboard: %w", lastErr)
}
