package process

import (
	"context"
	"strings"
	"sync"
)

// Call records one invocation made through a FakeRunner
type Call struct {
	Name string
	Args []string
}

// CommandLine returns the call as a single space-separated string
func (c Call) CommandLine() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// FakeRunner is a scriptable CommandRunner for tests in other packages
type FakeRunner struct {
	mu    sync.Mutex
	Calls []Call

	// Handler returns stdout and an error for a call; nil means success with no output
	Handler func(call Call) ([]byte, error)
}

func (f *FakeRunner) record(name string, args []string) ([]byte, error) {
	call := Call{Name: name, Args: append([]string(nil), args...)}
	f.mu.Lock()
	f.Calls = append(f.Calls, call)
	f.mu.Unlock()

	if f.Handler == nil {
		return nil, nil
	}
	return f.Handler(call)
}

// Run implements CommandRunner
func (f *FakeRunner) Run(ctx context.Context, name string, args ...string) error {
	_, err := f.record(name, args)
	return err
}

// Output implements CommandRunner
func (f *FakeRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return f.record(name, args)
}

// Stream implements CommandRunner by splitting the scripted stdout into lines
func (f *FakeRunner) Stream(ctx context.Context, onLine func(line string), name string, args ...string) error {
	out, err := f.record(name, args)
	if scanErr := scanLines(strings.NewReader(string(out)), onLine); scanErr != nil {
		return scanErr
	}
	return err
}

// LastCall returns the most recent call, or a zero Call if none
func (f *FakeRunner) LastCall() Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Calls) == 0 {
		return Call{}
	}
	return f.Calls[len(f.Calls)-1]
}

var _ CommandRunner = (*FakeRunner)(nil)
