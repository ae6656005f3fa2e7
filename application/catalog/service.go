package catalog

import (
	"context"
	"fmt"
	"io"
	"strings"

	"yt2mp3/application/download"
	"yt2mp3/domain/catalog"
	"yt2mp3/domain/media"
)

// Downloads is the part of the download service used for search picks and playlists
type Downloads interface {
	Download(ctx context.Context, in download.Input) (string, error)
	Queue(ctx context.Context, items []download.Item, outputDir string, quality media.Quality) (*download.QueueResult, error)
}

// Service searches YouTube and works through playlists
type Service struct {
	searcher  catalog.Searcher
	playlists catalog.PlaylistFetcher
	downloads Downloads
	output    io.Writer
}

// NewService creates a new catalog service
func NewService(searcher catalog.Searcher, playlists catalog.PlaylistFetcher, downloads Downloads, output io.Writer) *Service {
	return &Service{
		searcher:  searcher,
		playlists: playlists,
		downloads: downloads,
		output:    output,
	}
}

// SearchInput contains the parameters for a search
type SearchInput struct {
	Query     string
	Count     int
	Pick      int // 1-based result to download; 0 lists only
	OutputDir string
	Quality   media.Quality
}

// Search lists matching videos and optionally downloads one of them
func (s *Service) Search(ctx context.Context, in SearchInput) ([]catalog.Video, error) {
	query := strings.TrimSpace(in.Query)
	if query == "" {
		return nil, catalog.ErrEmptyQuery
	}
	count := in.Count
	if count <= 0 {
		count = 10
	}

	fmt.Fprintf(s.output, "Searching: %s...\n", query)
	results, err := s.searcher.Search(ctx, query, count)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	if len(results) == 0 {
		fmt.Fprintln(s.output, "No results found.")
		return nil, nil
	}

	fmt.Fprintln(s.output)
	for i, v := range results {
		fmt.Fprintf(s.output, "  %2d. [%5s] %s\n", i+1, v.DurationLabel(), v.Title)
		fmt.Fprintf(s.output, "      %s\n", v.Channel)
	}

	if in.Pick == 0 {
		fmt.Fprintln(s.output)
		fmt.Fprintln(s.output, `Use -d N to download a result, e.g.: yt2mp3 search "query" -d 1`)
		return results, nil
	}

	selected, err := catalog.SelectResult(results, in.Pick)
	if err != nil {
		return results, err
	}
	fmt.Fprintf(s.output, "\nSelected: %s\n", selected.Title)
	if _, err := s.downloads.Download(ctx, download.Input{
		URL:       selected.URL,
		OutputDir: in.OutputDir,
		Quality:   in.Quality,
	}); err != nil {
		return results, err
	}
	return results, nil
}

// PlaylistInput contains the parameters for a playlist run
type PlaylistInput struct {
	URL       string
	Max       int // 0 means every entry
	InfoOnly  bool
	OutputDir string
	Quality   media.Quality
}

// FetchPlaylist loads a playlist and prints its header
func (s *Service) FetchPlaylist(ctx context.Context, url string) (*catalog.Playlist, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, media.ErrURLRequired
	}

	fmt.Fprintln(s.output, "Fetching playlist info...")
	pl, err := s.playlists.FetchPlaylist(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlist: %w", err)
	}
	if pl.Count() == 0 {
		return nil, fmt.Errorf("%w: %s", catalog.ErrEmptyPlaylist, url)
	}

	fmt.Fprintf(s.output, "\nPlaylist: %s\n", pl.Title)
	fmt.Fprintf(s.output, "Channel: %s\n", pl.Channel)
	fmt.Fprintf(s.output, "Videos: %d\n", pl.Count())
	return pl, nil
}

// PrintEntries lists playlist entries with their durations
func (s *Service) PrintEntries(pl *catalog.Playlist) {
	fmt.Fprintln(s.output)
	for i, v := range pl.Entries {
		fmt.Fprintf(s.output, "  %3d. [%5s] %s\n", i+1, v.DurationLabel(), v.Title)
	}
}

// Playlist lists a playlist's entries or downloads them in order
func (s *Service) Playlist(ctx context.Context, in PlaylistInput) (*download.QueueResult, error) {
	pl, err := s.FetchPlaylist(ctx, in.URL)
	if err != nil {
		return nil, err
	}
	if in.InfoOnly {
		s.PrintEntries(pl)
		return nil, nil
	}

	entries := pl.Limit(in.Max)
	if len(entries) < pl.Count() {
		fmt.Fprintf(s.output, "Downloading first %d videos...\n", len(entries))
	} else {
		fmt.Fprintf(s.output, "Downloading %d videos...\n", len(entries))
	}
	fmt.Fprintln(s.output)

	items := make([]download.Item, len(entries))
	for i, v := range entries {
		items[i] = download.Item{URL: v.URL, Label: v.Title}
	}
	return s.downloads.Queue(ctx, items, in.OutputDir, in.Quality)
}
