package youtubeapi

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"yt2mp3/domain/catalog"
	"yt2mp3/domain/clip"
	"yt2mp3/domain/media"
	"yt2mp3/infrastructure/retry"
)

// ErrAPIKeyRequired is returned when the searcher is built without a key
var ErrAPIKeyRequired = errors.New("youtube api key required")

// maxResultsPerPage is the largest maxResults search.list accepts
const maxResultsPerPage = 50

// Searcher implements catalog.Searcher using the YouTube Data API v3
type Searcher struct {
	service *youtube.Service
	policy  retry.Policy
}

// NewSearcher creates a Data API client authenticated with an API key.
// Extra client options are appended, which tests use to point at a local server.
func NewSearcher(ctx context.Context, apiKey string, extra ...option.ClientOption) (*Searcher, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrAPIKeyRequired
	}

	opts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, extra...)
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &Searcher{service: service, policy: retry.DefaultPolicy(2)}, nil
}

// Search implements catalog.Searcher. Durations come from a second videos.list
// call because search results carry no contentDetails.
func (s *Searcher) Search(ctx context.Context, query string, max int) ([]catalog.Video, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, catalog.ErrEmptyQuery
	}
	if max <= 0 {
		max = 10
	}
	if max > maxResultsPerPage {
		max = maxResultsPerPage
	}

	var resp *youtube.SearchListResponse
	err := retry.Do(ctx, s.policy, isRetryableAPIError, func(ctx context.Context) error {
		var err error
		resp, err = s.service.Search.List([]string{"snippet"}).
			Q(query).
			Type("video").
			MaxResults(int64(max)).
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("youtube search failed: %w", err)
	}

	videos := make([]catalog.Video, 0, len(resp.Items))
	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		videos = append(videos, catalog.Video{
			ID:      item.Id.VideoId,
			Title:   html.UnescapeString(item.Snippet.Title),
			Channel: html.UnescapeString(item.Snippet.ChannelTitle),
			URL:     media.WatchURL(item.Id.VideoId),
		})
		ids = append(ids, item.Id.VideoId)
	}

	if len(ids) > 0 {
		durations, err := s.durations(ctx, ids)
		if err != nil {
			// Results are still usable without durations
			slog.Debug("could not fetch video durations", "error", err)
		}
		for i := range videos {
			videos[i].Duration = durations[videos[i].ID]
		}
	}

	return videos, nil
}

func (s *Searcher) durations(ctx context.Context, ids []string) (map[string]clip.Offset, error) {
	result := make(map[string]clip.Offset, len(ids))

	resp, err := s.service.Videos.List([]string{"contentDetails"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return result, err
	}

	for _, v := range resp.Items {
		if v.ContentDetails == nil {
			continue
		}
		secs, err := ParseISODuration(v.ContentDetails.Duration)
		if err != nil {
			continue
		}
		result[v.Id] = clip.Offset(secs)
	}
	return result, nil
}

// isRetryableAPIError retries server errors and rate limiting; quota exhaustion lasts until the daily reset
func isRetryableAPIError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500 {
			return true
		}
		return false
	}
	return true
}

// Ensure Searcher implements catalog.Searcher
var _ catalog.Searcher = (*Searcher)(nil)
