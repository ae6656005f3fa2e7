package process

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotInstalled is returned when the executable cannot be found
var ErrNotInstalled = errors.New("executable not found")

// CommandError reports a command that ran and exited non-zero
type CommandError struct {
	Name     string
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", e.Name, e.ExitCode)
	if detail := e.Detail(); detail != "" {
		msg += ": " + detail
	}
	return msg
}

// Detail returns the most relevant stderr line: the last one mentioning ERROR, else the last line
func (e *CommandError) Detail() string {
	lines := strings.Split(strings.TrimSpace(e.Stderr), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.Contains(lines[i], "ERROR") {
			return strings.TrimSpace(lines[i])
		}
	}
	return strings.TrimSpace(lines[len(lines)-1])
}
