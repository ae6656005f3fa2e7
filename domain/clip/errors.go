package clip

import "errors"

var (
	// ErrInvalidTimeFormat is returned when a time string matches none of the accepted grammars
	ErrInvalidTimeFormat = errors.New("invalid time format")

	// ErrConflictingClipArgs is returned when both a duration and an end time are supplied
	ErrConflictingClipArgs = errors.New("duration and end cannot be used together")

	// ErrInvalidClipRange is returned when the computed end is not after the start
	ErrInvalidClipRange = errors.New("invalid clip range")
)
