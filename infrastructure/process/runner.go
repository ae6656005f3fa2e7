package process

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// CommandRunner defines the interface for running external commands
// This allows mocking exec.Command in tests
type CommandRunner interface {
	// Run executes a command, discarding stdout
	Run(ctx context.Context, name string, args ...string) error
	// Output executes a command and returns its stdout
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// Stream executes a command and calls onLine for every stdout line as it arrives
	Stream(ctx context.Context, onLine func(line string), name string, args ...string) error
}

// ExecCommandRunner is the production implementation using os/exec.
// A failed command yields a *CommandError carrying its exit status and stderr.
type ExecCommandRunner struct {
	// Timeout bounds each command; zero means no limit beyond ctx
	Timeout time.Duration
}

// NewExecCommandRunner creates a runner with the given per-command timeout
func NewExecCommandRunner(timeout time.Duration) *ExecCommandRunner {
	return &ExecCommandRunner{Timeout: timeout}
}

// Run executes a command and returns any error
func (r *ExecCommandRunner) Run(ctx context.Context, name string, args ...string) error {
	_, err := r.Output(ctx, name, args...)
	return err
}

// Output executes a command and returns its output
func (r *ExecCommandRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logCommand(name, args)
	if err := cmd.Run(); err != nil {
		return stdout.Bytes(), wrapError(ctx, name, args, stderr.String(), err)
	}
	return stdout.Bytes(), nil
}

// Stream executes a command and hands each stdout line to onLine
func (r *ExecCommandRunner) Stream(ctx context.Context, onLine func(line string), name string, args ...string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to open stdout for %s: %w", name, err)
	}

	logCommand(name, args)
	if err := cmd.Start(); err != nil {
		return wrapError(ctx, name, args, "", err)
	}

	scanErr := scanLines(stdout, onLine)

	if err := cmd.Wait(); err != nil {
		return wrapError(ctx, name, args, stderr.String(), err)
	}
	if scanErr != nil {
		return fmt.Errorf("failed to read %s output: %w", name, scanErr)
	}
	return nil
}

func (r *ExecCommandRunner) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.Timeout > 0 {
		return context.WithTimeout(ctx, r.Timeout)
	}
	return context.WithCancel(ctx)
}

// scanLines splits on \n and \r so carriage-return progress updates arrive one by one
func scanLines(r io.Reader, onLine func(string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	scanner.Split(func(data []byte, atEOF bool) (int, []byte, error) {
		if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
			return i + 1, data[:i], nil
		}
		if atEOF && len(data) > 0 {
			return len(data), data, nil
		}
		return 0, nil, nil
	})

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if onLine != nil {
			onLine(line)
		}
	}
	return scanner.Err()
}

func wrapError(ctx context.Context, name string, args []string, stderr string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s interrupted: %w", name, ctxErr)
	}
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%w: %s: %w", ErrNotInstalled, name, err)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &CommandError{
			Name:     name,
			Args:     args,
			ExitCode: exitErr.ExitCode(),
			Stderr:   strings.TrimSpace(stderr),
		}
	}
	return fmt.Errorf("failed to run %s: %w", name, err)
}

func logCommand(name string, args []string) {
	slog.Debug("running command", "name", name, "args", strings.Join(args, " "))
}

// Ensure ExecCommandRunner implements CommandRunner
var _ CommandRunner = (*ExecCommandRunner)(nil)
