package catalog

import "errors"

var (
	// ErrInvalidSelection is returned when a 1-based result number is out of range
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrEmptyQuery is returned when a search has no terms
	ErrEmptyQuery = errors.New("search query is required")

	// ErrEmptyPlaylist is returned when a playlist has no entries
	ErrEmptyPlaylist = errors.New("playlist has no videos")
)
