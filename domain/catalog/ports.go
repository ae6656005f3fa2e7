package catalog

import "context"

// Searcher finds videos matching a free-text query
type Searcher interface {
	Search(ctx context.Context, query string, max int) ([]Video, error)
}

// PlaylistFetcher loads a playlist and its entries
type PlaylistFetcher interface {
	FetchPlaylist(ctx context.Context, url string) (*Playlist, error)
}

// MetadataFetcher loads the title and channel of a single video
type MetadataFetcher interface {
	FetchVideo(ctx context.Context, url string) (*Video, error)
}
