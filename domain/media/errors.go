package media

import "errors"

var (
	// ErrURLRequired is returned when a download request has no URL
	ErrURLRequired = errors.New("url is required")

	// ErrInvalidQuality is returned for a bitrate outside 128, 192 and 320 kbps
	ErrInvalidQuality = errors.New("invalid audio quality")

	// ErrInvalidFilename is returned when a custom filename contains a path separator
	ErrInvalidFilename = errors.New("invalid filename")

	// ErrNoURLs is returned when a batch has nothing to download
	ErrNoURLs = errors.New("no URLs provided")
)
