package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docask"
)

var _ docask.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService logs every sitemap lookup made for the link
// fallback of a documentation root.
type LoggingSitemapService struct {
	next   docask.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService wraps next.
func NewLoggingSitemapService(next docask.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs logs the root, the number of pages found and any error.
// A lookup that finds nothing is logged at Warn, since the exploration then
// ends without links.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, rootURL string) (urls []string, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if err != nil || len(urls) == 0 {
			level = slog.LevelWarn
		}
		s.logger.Log(ctx, level, "sitemap discovery",
			"root", rootURL,
			"pages", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, rootURL)
}
