// Package slog provides logging decorators for docask services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docask"
)

var _ docask.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   docask.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next docask.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

var _ docask.Prober = (*LoggingProber)(nil)

// LoggingProber wraps a Prober with logging.
type LoggingProber struct {
	next   docask.Prober
	logger *slog.Logger
}

// NewLoggingProber creates a new LoggingProber.
func NewLoggingProber(next docask.Prober, logger *slog.Logger) *LoggingProber {
	return &LoggingProber{next: next, logger: logger}
}

// Accessible delegates to the wrapped prober and logs the result.
func (p *LoggingProber) Accessible(ctx context.Context, url string) (ok bool) {
	defer func(begin time.Time) {
		p.logger.Info("probe",
			"url", url,
			"accessible", ok,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return p.next.Accessible(ctx, url)
}
