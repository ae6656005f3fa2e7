package transcript

import "errors"

var (
	// ErrNoCaptions is returned when a video has no captions in the requested language
	ErrNoCaptions = errors.New("no captions available")

	// ErrInvalidFormat is returned for an output format other than txt, srt or json
	ErrInvalidFormat = errors.New("invalid transcript format")

	// ErrMalformedSRT is returned when a subtitle file cannot be parsed
	ErrMalformedSRT = errors.New("malformed SRT")
)
