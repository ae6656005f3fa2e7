package ytclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/kkdai/youtube/v2"

	"yt2mp3/domain/catalog"
	"yt2mp3/domain/clip"
	"yt2mp3/domain/media"
)

// Client implements catalog.PlaylistFetcher and catalog.MetadataFetcher by
// reading YouTube's web API directly, without spawning yt-dlp.
type Client struct {
	yt youtube.Client
}

// NewClient creates a metadata client whose HTTP requests time out after timeout
func NewClient(timeout time.Duration) *Client {
	return &Client{
		yt: youtube.Client{HTTPClient: &http.Client{Timeout: timeout}},
	}
}

// FetchPlaylist implements catalog.PlaylistFetcher
func (c *Client) FetchPlaylist(ctx context.Context, url string) (*catalog.Playlist, error) {
	p, err := c.yt.GetPlaylistContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching playlist: %w", err)
	}
	return toPlaylist(p), nil
}

// FetchVideo implements catalog.MetadataFetcher
func (c *Client) FetchVideo(ctx context.Context, url string) (*catalog.Video, error) {
	v, err := c.yt.GetVideoContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching video info: %w", err)
	}
	return &catalog.Video{
		ID:       v.ID,
		Title:    orUnknown(v.Title),
		Channel:  orUnknown(v.Author),
		Duration: clip.Offset(v.Duration.Seconds()),
		URL:      media.WatchURL(v.ID),
	}, nil
}

func toPlaylist(p *youtube.Playlist) *catalog.Playlist {
	out := &catalog.Playlist{
		ID:      p.ID,
		Title:   orUnknown(p.Title),
		Channel: orUnknown(p.Author),
		Entries: make([]catalog.Video, 0, len(p.Videos)),
	}
	for _, e := range p.Videos {
		if e == nil || e.ID == "" {
			continue
		}
		out.Entries = append(out.Entries, catalog.Video{
			ID:       e.ID,
			Title:    orUnknown(e.Title),
			Channel:  orUnknown(e.Author),
			Duration: clip.Offset(e.Duration.Seconds()),
			URL:      media.WatchURL(e.ID),
		})
	}
	return out
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

var (
	_ catalog.PlaylistFetcher = (*Client)(nil)
	_ catalog.MetadataFetcher = (*Client)(nil)
)
