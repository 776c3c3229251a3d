package mock

import (
	"context"

	"github.com/fwojciec/docask"
)

var _ docask.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of docask.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

// Pages returns a Fetcher serving fixed HTML by URL.
// Unknown URLs fail with an EUNAVAILABLE error.
func Pages(pages map[string]string) *Fetcher {
	return &Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			html, ok := pages[url]
			if !ok {
				return "", docask.Errorf(docask.EUNAVAILABLE, "HTTP 404 for %s", url)
			}
			return html, nil
		},
	}
}

var _ docask.Prober = (*Prober)(nil)

// Prober is a mock implementation of docask.Prober.
type Prober struct {
	AccessibleFn func(ctx context.Context, url string) bool
}

func (p *Prober) Accessible(ctx context.Context, url string) bool {
	return p.AccessibleFn(ctx, url)
}

var _ docask.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of docask.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL)
}

var _ docask.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of docask.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

var _ docask.FrameworkDetector = (*FrameworkDetector)(nil)

// FrameworkDetector is a mock implementation of docask.FrameworkDetector.
type FrameworkDetector struct {
	DetectFn     func(html string) docask.Framework
	RequiresJSFn func(framework docask.Framework) (requires bool, known bool)
}

func (d *FrameworkDetector) Detect(html string) docask.Framework {
	return d.DetectFn(html)
}

func (d *FrameworkDetector) RequiresJS(framework docask.Framework) (bool, bool) {
	return d.RequiresJSFn(framework)
}
