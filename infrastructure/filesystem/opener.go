package filesystem

import (
	"context"
	"fmt"
	"runtime"

	"yt2mp3/infrastructure/process"
)

// Opener shows a directory in the platform file manager
type Opener struct {
	goos   string
	runner process.CommandRunner
}

// NewOpener creates an opener for the current OS
func NewOpener(runner process.CommandRunner) *Opener {
	return &Opener{goos: runtime.GOOS, runner: runner}
}

// OpenCommand returns the program and arguments that open dir on goos
func OpenCommand(goos, dir string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{dir}, nil
	case "windows":
		return "explorer", []string{dir}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{dir}, nil
	default:
		return "", nil, fmt.Errorf("opening folders is not supported on %s", goos)
	}
}

// Open launches the file manager on dir
func (o *Opener) Open(ctx context.Context, dir string) error {
	name, args, err := OpenCommand(o.goos, dir)
	if err != nil {
		return err
	}
	if err := o.runner.Run(ctx, name, args...); err != nil {
		// explorer.exe exits 1 even when it succeeds
		if o.goos == "windows" {
			return nil
		}
		return fmt.Errorf("failed to open %s: %w", dir, err)
	}
	return nil
}
