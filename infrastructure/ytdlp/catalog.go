package ytdlp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"yt2mp3/domain/catalog"
	"yt2mp3/domain/clip"
	"yt2mp3/domain/media"
	"yt2mp3/infrastructure/process"
)

// Catalog implements catalog.Searcher and catalog.PlaylistFetcher using
// yt-dlp's flat JSON listing. It needs no API key.
type Catalog struct {
	ytdlpPath string
	runner    process.CommandRunner
}

// NewCatalog creates a yt-dlp backed search and playlist client
func NewCatalog(opts ...Option) *Catalog {
	o := buildOptions(opts)
	return &Catalog{ytdlpPath: o.ytdlpPath, runner: o.runner}
}

// flatListing is the subset of `yt-dlp -J --flat-playlist` output we read
type flatListing struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Channel  string      `json:"channel"`
	Uploader string      `json:"uploader"`
	Entries  []flatEntry `json:"entries"`
}

type flatEntry struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Channel  string   `json:"channel"`
	Uploader string   `json:"uploader"`
	Duration *float64 `json:"duration"`
	URL      string   `json:"url"`
}

// Search implements catalog.Searcher using the ytsearchN: pseudo-URL
func (c *Catalog) Search(ctx context.Context, query string, max int) ([]catalog.Video, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, catalog.ErrEmptyQuery
	}
	if max <= 0 {
		max = 10
	}

	listing, err := c.list(ctx, fmt.Sprintf("ytsearch%d:%s", max, query))
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return listing.videos(), nil
}

// FetchPlaylist implements catalog.PlaylistFetcher
func (c *Catalog) FetchPlaylist(ctx context.Context, url string) (*catalog.Playlist, error) {
	listing, err := c.list(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlist: %w", err)
	}

	return &catalog.Playlist{
		ID:      listing.ID,
		Title:   firstNonEmpty(listing.Title, "Unknown"),
		Channel: firstNonEmpty(listing.Channel, listing.Uploader, "Unknown"),
		Entries: listing.videos(),
	}, nil
}

func (c *Catalog) list(ctx context.Context, target string) (*flatListing, error) {
	out, err := c.runner.Output(ctx, c.ytdlpPath, flagDumpJSON, flagFlatPlaylist, flagNoWarnings, target)
	if err != nil {
		return nil, err
	}

	var listing flatListing
	if err := json.Unmarshal(out, &listing); err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp output: %w", err)
	}
	return &listing, nil
}

func (l *flatListing) videos() []catalog.Video {
	videos := make([]catalog.Video, 0, len(l.Entries))
	for _, e := range l.Entries {
		if e.ID == "" {
			continue
		}
		v := catalog.Video{
			ID:      e.ID,
			Title:   firstNonEmpty(e.Title, "Unknown"),
			Channel: firstNonEmpty(e.Channel, e.Uploader, "Unknown"),
			URL:     e.URL,
		}
		if e.Duration != nil {
			v.Duration = clip.Offset(*e.Duration)
		}
		if !strings.HasPrefix(v.URL, "http") {
			v.URL = media.WatchURL(e.ID)
		}
		videos = append(videos, v)
	}
	return videos
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

var (
	_ catalog.Searcher        = (*Catalog)(nil)
	_ catalog.PlaylistFetcher = (*Catalog)(nil)
)
