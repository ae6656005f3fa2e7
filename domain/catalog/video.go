package catalog

import (
	"fmt"

	"yt2mp3/domain/clip"
)

// Video is a single search result or playlist entry
type Video struct {
	ID       string
	Title    string
	Channel  string
	Duration clip.Offset
	URL      string
}

// DurationLabel returns the duration as M:SS, or "?" when unknown
func (v Video) DurationLabel() string {
	if v.Duration <= 0 {
		return "?"
	}
	return v.Duration.Clock()
}

// Playlist is a named, ordered list of videos
type Playlist struct {
	ID      string
	Title   string
	Channel string
	Entries []Video
}

// Count returns the number of entries
func (p *Playlist) Count() int {
	return len(p.Entries)
}

// Limit returns the first n entries; n <= 0 means all of them
func (p *Playlist) Limit(n int) []Video {
	if n <= 0 || n >= len(p.Entries) {
		return p.Entries
	}
	return p.Entries[:n]
}

// SelectResult returns the n-th result, counting from 1
func SelectResult(results []Video, n int) (Video, error) {
	if n < 1 || n > len(results) {
		return Video{}, fmt.Errorf("%w: %d (choose 1-%d)", ErrInvalidSelection, n, len(results))
	}
	return results[n-1], nil
}
