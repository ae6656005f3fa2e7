package transcript

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"yt2mp3/domain/catalog"
	"yt2mp3/domain/media"
	"yt2mp3/domain/transcript"
)

// ErrSomeFailed is returned when at least one playlist transcript failed for a reason other than missing captions
var ErrSomeFailed = errors.New("some transcripts failed")

const unknownCreator = "Unknown"

// PlaylistBrowser loads a playlist and prints its header and entries
type PlaylistBrowser interface {
	FetchPlaylist(ctx context.Context, url string) (*catalog.Playlist, error)
	PrintEntries(pl *catalog.Playlist)
}

// Service saves captions as text, SRT or JSON under <root>/<creator>/[<playlist>/]
type Service struct {
	fetcher   transcript.Fetcher
	metadata  catalog.MetadataFetcher
	playlists PlaylistBrowser
	writer    transcript.Writer
	output    io.Writer
}

// NewService creates a new transcript service
func NewService(fetcher transcript.Fetcher, metadata catalog.MetadataFetcher, playlists PlaylistBrowser, writer transcript.Writer, output io.Writer) *Service {
	return &Service{
		fetcher:   fetcher,
		metadata:  metadata,
		playlists: playlists,
		writer:    writer,
		output:    output,
	}
}

// Download saves the transcript of a single video and returns its path.
// A video without captions prints a notice and returns "" with no error.
func (s *Service) Download(ctx context.Context, req *transcript.Request) (string, error) {
	fmt.Fprintf(s.output, "Downloading transcript: %s\n", req.URL)
	fmt.Fprintf(s.output, "Format: %s\n\n", req.Format)

	id, err := media.VideoID(req.URL)
	if err != nil {
		return "", err
	}

	title, creator := id, unknownCreator
	if v, err := s.metadata.FetchVideo(ctx, req.URL); err != nil {
		slog.Warn("video metadata unavailable, naming transcript by ID", "video", id, "error", err)
	} else {
		title, creator = v.Title, v.Channel
	}

	path := transcript.OutputPath(req.OutputDir, creator, "", title, req.Format)
	if err := s.save(ctx, id, path, req); err != nil {
		if errors.Is(err, transcript.ErrNoCaptions) {
			fmt.Fprintln(s.output, "No captions available for this video.")
			return "", nil
		}
		return "", err
	}

	fmt.Fprintf(s.output, "Saved: %s\n", path)
	return path, nil
}

// PlaylistResult summarises a playlist transcript run
type PlaylistResult struct {
	Saved     []string
	Skipped   []string // titles without captions
	Failed    []string
	OutputDir string
}

// Playlist lists a playlist's entries when infoOnly is set, otherwise saves
// the transcripts of the first req.Max entries in order.
func (s *Service) Playlist(ctx context.Context, req *transcript.Request, infoOnly bool) (*PlaylistResult, error) {
	pl, err := s.playlists.FetchPlaylist(ctx, req.URL)
	if err != nil {
		return nil, err
	}
	if infoOnly {
		s.playlists.PrintEntries(pl)
		return nil, nil
	}

	entries := pl.Limit(req.Max)
	if len(entries) < pl.Count() {
		fmt.Fprintf(s.output, "Downloading first %d transcripts...\n", len(entries))
	} else {
		fmt.Fprintf(s.output, "Downloading %d transcripts...\n", len(entries))
	}
	fmt.Fprintf(s.output, "Format: %s\n\n", req.Format)

	creator := pl.Channel
	if creator == "" {
		creator = unknownCreator
	}
	result := &PlaylistResult{
		OutputDir: filepath.Dir(transcript.OutputPath(req.OutputDir, creator, pl.Title, "x", req.Format)),
	}

	total := len(entries)
	for i, v := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		fmt.Fprintf(s.output, "[%d/%d] %s\n", i+1, total, v.Title)

		id := v.ID
		if id == "" {
			if id, err = media.VideoID(v.URL); err != nil {
				fmt.Fprintf(s.output, "  Error: %v\n", err)
				result.Failed = append(result.Failed, v.Title)
				continue
			}
		}

		path := transcript.OutputPath(req.OutputDir, creator, pl.Title, v.Title, req.Format)
		switch err := s.save(ctx, id, path, req); {
		case errors.Is(err, transcript.ErrNoCaptions):
			fmt.Fprintln(s.output, "  No captions available")
			result.Skipped = append(result.Skipped, v.Title)
		case err != nil:
			fmt.Fprintf(s.output, "  Error: %v\n", err)
			result.Failed = append(result.Failed, v.Title)
		default:
			fmt.Fprintf(s.output, "  -> %s\n", filepath.Base(path))
			result.Saved = append(result.Saved, path)
		}
	}

	fmt.Fprintf(s.output, "\nCompleted: %d/%d succeeded\n", len(result.Saved), total)
	fmt.Fprintf(s.output, "Output: %s\n", result.OutputDir)
	if len(result.Failed) > 0 {
		return result, fmt.Errorf("%w: %d of %d", ErrSomeFailed, len(result.Failed), total)
	}
	return result, nil
}

func (s *Service) save(ctx context.Context, videoID, path string, req *transcript.Request) error {
	content, err := s.fetcher.Fetch(ctx, videoID, req.Language, req.Format, req.IncludeAuto)
	if err != nil {
		return err
	}
	return s.writer.WriteFile(path, content)
}
