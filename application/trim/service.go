package trim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"yt2mp3/domain/media"
)

// DefaultThresholdDB is the loudness below which audio counts as silence
const DefaultThresholdDB = -50.0

// minReportedGain is the smallest change reported as "removed"
const minReportedGain = 0.1

var (
	// ErrNothingToTrim is returned when both ends are disabled
	ErrNothingToTrim = errors.New("nothing to trim: enable at least one of start or end")

	// ErrInvalidThreshold is returned for a threshold above 0 dB
	ErrInvalidThreshold = errors.New("threshold must be <= 0 dB")

	// ErrSomeFailed is returned by TrimAll when at least one file could not be trimmed
	ErrSomeFailed = errors.New("some files could not be trimmed")
)

// Service removes silence from the ends of MP3 files
type Service struct {
	trimmer media.SilenceTrimmer
	prober  media.DurationProber
	library media.Library
	output  io.Writer
}

// NewService creates a new trim service
func NewService(trimmer media.SilenceTrimmer, prober media.DurationProber, library media.Library, output io.Writer) *Service {
	return &Service{
		trimmer: trimmer,
		prober:  prober,
		library: library,
		output:  output,
	}
}

// Input contains the parameters for trimming a file
type Input struct {
	Path        string
	TrimStart   bool
	TrimEnd     bool
	ThresholdDB float64
	Quality     media.Quality
}

// Validate checks the options shared by single and batch trims
func (in Input) Validate() error {
	if !in.TrimStart && !in.TrimEnd {
		return ErrNothingToTrim
	}
	if in.ThresholdDB > 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidThreshold, in.ThresholdDB)
	}
	return nil
}

// Result reports durations in seconds before and after trimming
type Result struct {
	Path    string
	Before  float64
	After   float64
	Removed float64
}

// Trim removes silence from one file and prints "Trimming: name... removed X.Xs"
func (s *Service) Trim(ctx context.Context, in Input) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	before, err := s.prober.Duration(ctx, in.Path)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(s.output, "Trimming: %s...", filepath.Base(in.Path))
	err = s.trimmer.TrimSilence(ctx, in.Path, media.SilenceOptions{
		TrimStart:   in.TrimStart,
		TrimEnd:     in.TrimEnd,
		ThresholdDB: in.ThresholdDB,
		Quality:     in.Quality,
	})
	if err != nil {
		fmt.Fprintf(s.output, " error: %v\n", err)
		return nil, err
	}

	after, err := s.prober.Duration(ctx, in.Path)
	if err != nil {
		fmt.Fprintf(s.output, " error: %v\n", err)
		return nil, err
	}

	result := &Result{Path: in.Path, Before: before, After: after, Removed: before - after}
	if result.Removed > minReportedGain {
		fmt.Fprintf(s.output, " removed %.1fs\n", result.Removed)
	} else {
		fmt.Fprintln(s.output, " no silence found")
	}
	return result, nil
}

// TrimAll trims every MP3 in dir. A failing file is reported and the rest are still trimmed.
func (s *Service) TrimAll(ctx context.Context, dir string, opts Input) ([]*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	tracks, err := s.library.ListTracks(dir)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		fmt.Fprintf(s.output, "No MP3 files found in %s\n", dir)
		return nil, nil
	}

	fmt.Fprintf(s.output, "Trimming %d files in %s...\n", len(tracks), dir)
	var results []*Result
	failed := 0
	for _, t := range tracks {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		in := opts
		in.Path = t.Path
		r, err := s.Trim(ctx, in)
		if err != nil {
			failed++
			continue
		}
		results = append(results, r)
	}

	if failed > 0 {
		return results, fmt.Errorf("%w: %d of %d", ErrSomeFailed, failed, len(tracks))
	}
	return results, nil
}
