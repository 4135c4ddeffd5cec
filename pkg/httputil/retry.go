package httputil

import (
	"context"
	"errors"
	"time"
)

// Probe fetches should fail fast: a missing aspect ratio falls back to 1.0,
// so a slow registry of retries hurts more than a skipped dimension.
const (
	defaultRetryAttempts = 3
	defaultRetryDelay    = 500 * time.Millisecond
)

// RetryableError marks a probe failure as transient. Network timeouts and
// 5xx responses from image hosts are worth a second attempt; 4xx responses
// and undecodable images are not, and must be returned unwrapped so [Retry]
// gives up immediately.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry runs fetch up to attempts times, doubling the delay between
// attempts. Only errors wrapped in [RetryableError] are retried. The context
// is checked while waiting, so a cancelled probe run stops between attempts
// and returns ctx.Err().
func Retry(ctx context.Context, attempts int, delay time.Duration, fetch func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var last error
	for attempt := 1; ; attempt++ {
		err := fetch()
		if err == nil {
			return nil
		}
		if !errors.As(err, new(*RetryableError)) {
			return err
		}
		last = err

		if attempt == attempts {
			return last
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
}

// RetryWithBackoff is [Retry] with the probe defaults: three attempts
// starting at half a second, so a flaky image host costs at most a few
// seconds per item.
func RetryWithBackoff(ctx context.Context, fetch func() error) error {
	return Retry(ctx, defaultRetryAttempts, defaultRetryDelay, fetch)
}
