package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docask"
)

// DefaultRetryDelays returns backoff delays of 1s, 2s and 4s for callers
// that opt into fetch retries.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetryDelays fetches url, retrying once after each delay.
// With no delays the fetch is attempted exactly once. Invalid URLs are not
// retried. The logger, if non-nil, receives one warning per retry.
func FetchWithRetryDelays(ctx context.Context, url string, fetcher docask.Fetcher, logger *slog.Logger, delays []time.Duration) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		html, err := fetcher.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt == len(delays) || docask.ErrorCode(err) == docask.EINVALID {
			break
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		if logger != nil {
			logger.Warn("retrying fetch", "url", url, "attempt", attempt+2, "err", err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
