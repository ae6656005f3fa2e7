// Package retry re-runs flaky external operations with exponential backoff.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"
)

// Policy controls how often and how patiently an operation is retried
type Policy struct {
	// Retries is the number of extra attempts after the first failure
	Retries        int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Multiplier     float64
	// JitterFraction spreads each delay by +/- this share of itself
	JitterFraction float64
}

// DefaultPolicy returns the policy used for downloads
func DefaultPolicy(retries int) Policy {
	return Policy{
		Retries:        retries,
		InitialBackoff: 2 * time.Second,
		MaxBackoff:     30 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.2,
	}
}

// Classifier reports whether an error is worth another attempt
type Classifier func(error) bool

// ErrPermanent marks an error that must never be retried
var ErrPermanent = errors.New("permanent failure")

// Permanent wraps err so that the default classifier gives up immediately
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrPermanent, err)
}

// IsRetryable is the default classifier: everything except cancellation and permanent errors
func IsRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return !errors.Is(err, ErrPermanent)
}

// Do runs fn until it succeeds, the classifier rejects its error, or the retries run out
func Do(ctx context.Context, p Policy, classify Classifier, fn func(context.Context) error) error {
	if classify == nil {
		classify = IsRetryable
	}

	backoff := p.InitialBackoff
	var lastErr error

	for attempt := 0; attempt <= p.Retries; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err
		if !classify(err) {
			return err
		}
		if attempt == p.Retries {
			break
		}

		sleep := backoff + jitter(backoff, p.JitterFraction)
		if p.MaxBackoff > 0 && sleep > p.MaxBackoff {
			sleep = p.MaxBackoff
		}
		slog.Debug("retrying after error", "attempt", attempt+1, "wait", sleep, "error", err)

		select {
		case <-time.After(sleep):
		case <-ctx.Done():
			return ctx.Err()
		}

		backoff = time.Duration(float64(backoff) * p.Multiplier)
		if p.MaxBackoff > 0 && backoff > p.MaxBackoff {
			backoff = p.MaxBackoff
		}
	}

	if p.Retries == 0 {
		return lastErr
	}
	return fmt.Errorf("giving up after %d attempts: %w", p.Retries+1, lastErr)
}

func jitter(d time.Duration, fraction float64) time.Duration {
	if fraction <= 0 || d <= 0 {
		return 0
	}
	spread := float64(d) * fraction
	return time.Duration((rand.Float64()*2 - 1) * spread)
}
