// Package fetch provides concurrent download orchestration: a bounded
// worker pool, per-link retry with exponential backoff, and per-domain
// rate limiting.
package fetch

import (
	"context"
	"log/slog"
	"math/rand"
	"time"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// DefaultBackoffBase is the delay before the first retry. Each
// subsequent retry doubles it.
const DefaultBackoffBase = time.Second

// DefaultMaxAttempts is the total number of attempts per link.
const DefaultMaxAttempts = 3

// BackoffDelays computes the delays between attempts: base, doubling
// for each subsequent retry. attempts is the total attempt count, so
// the result has attempts-1 entries. The result is never nil: a single
// attempt yields an empty slice, and attempt counts below one are
// clamped to one.
func BackoffDelays(base time.Duration, attempts int) []time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	delays := make([]time.Duration, attempts-1)
	d := base
	for i := range delays {
		delays[i] = d
		d *= 2
	}
	return delays
}

// FetchWithRetry attempts to fetch a URL, sleeping between failed
// attempts for the given delay plus up to the same amount of jitter.
// The total attempt count is len(delays)+1. Timeouts, connection
// errors, and non-2xx statuses are all retried the same way; the last
// error is returned once the delays are exhausted.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, logger *slog.Logger, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		body, err := fetch(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		// Don't sleep after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		delay := delays[attempt]
		if delay > 0 {
			delay += time.Duration(rand.Int63n(int64(delay)))
		}

		if logger != nil {
			logger.Warn("retrying fetch",
				"url", url,
				"attempt", attempt+2,
				"delay", delay,
				"err", err,
			)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}

	return "", lastErr
}
