package docask

import "context"

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its HTML.
	// A non-success status is reported as an EUNAVAILABLE error.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// Prober checks whether a URL is reachable before a full fetch is attempted.
type Prober interface {
	// Accessible reports whether url answers with a success status.
	// Any network failure is reported as false, never as an error.
	Accessible(ctx context.Context, url string) bool
}

// SitemapService discovers page URLs from a site's sitemaps.
type SitemapService interface {
	// DiscoverURLs returns the page URLs listed in the sitemaps of baseURL's
	// host, restricted to baseURL's path prefix.
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}

// DomainLimiter paces requests per host.
type DomainLimiter interface {
	// Wait blocks until a request to domain is allowed.
	// Returns an error if the context is canceled first.
	Wait(ctx context.Context, domain string) error
}
