package crawl

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"sync"

	"github.com/fwojciec/docask"
)

var _ docask.Fetcher = (*AutoFetcher)(nil)

// AutoFetcher picks plain HTTP or browser rendering per host. The first page
// of a host fetched over HTTP decides:
//  1. fetch over HTTP; on failure use the browser for that page and decide
//     on a later one
//  2. detect the documentation framework
//  3. a known framework uses the renderer it requires
//  4. an unknown one is fetched again in the browser and the browser wins
//     when its main content differs substantially
//
// The HTML already fetched while deciding is returned, so the choice costs
// no extra request for the chosen renderer.
type AutoFetcher struct {
	HTTP      docask.Fetcher
	Browser   docask.Fetcher
	Detector  docask.FrameworkDetector
	Extractor docask.Extractor
	Logger    *slog.Logger

	mu         sync.Mutex
	useBrowser map[string]bool
}

// NewAutoFetcher returns an AutoFetcher choosing between httpFetcher and browser.
func NewAutoFetcher(httpFetcher, browser docask.Fetcher, detector docask.FrameworkDetector, extractor docask.Extractor) *AutoFetcher {
	return &AutoFetcher{
		HTTP:      httpFetcher,
		Browser:   browser,
		Detector:  detector,
		Extractor: extractor,
	}
}

// Fetch retrieves rawURL with the renderer chosen for its host.
func (f *AutoFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", docask.Errorf(docask.EINVALID, "invalid URL %q", rawURL)
	}

	f.mu.Lock()
	browser, decided := f.useBrowser[u.Host]
	f.mu.Unlock()
	if decided {
		if browser {
			return f.Browser.Fetch(ctx, rawURL)
		}
		return f.HTTP.Fetch(ctx, rawURL)
	}

	html, browser, ok, err := f.decide(ctx, rawURL)
	if err != nil || !ok {
		return html, err
	}
	f.mu.Lock()
	if f.useBrowser == nil {
		f.useBrowser = make(map[string]bool)
	}
	f.useBrowser[u.Host] = browser
	f.mu.Unlock()

	f.logger().Info("renderer chosen", "host", u.Host, "browser", browser)
	return html, nil
}

// decide fetches rawURL and decides whether its host needs the browser.
// ok is false when no decision could be made: a failed HTTP fetch falls
// back to the browser for this page only.
func (f *AutoFetcher) decide(ctx context.Context, rawURL string) (html string, browser, ok bool, err error) {
	httpHTML, err := f.HTTP.Fetch(ctx, rawURL)
	if err != nil {
		if ctx.Err() != nil {
			return "", false, false, ctx.Err()
		}
		html, err := f.Browser.Fetch(ctx, rawURL)
		return html, true, false, err
	}

	framework := f.Detector.Detect(httpHTML)
	if requires, known := f.Detector.RequiresJS(framework); known {
		if !requires {
			return httpHTML, false, true, nil
		}
		html, err := f.Browser.Fetch(ctx, rawURL)
		return html, true, err == nil, err
	}

	browserHTML, err := f.Browser.Fetch(ctx, rawURL)
	if err != nil {
		if ctx.Err() != nil {
			return "", false, false, ctx.Err()
		}
		return httpHTML, false, true, nil
	}
	if ContentDiffers(httpHTML, browserHTML, f.Extractor) {
		return browserHTML, true, true, nil
	}
	return httpHTML, false, true, nil
}

// Close closes both underlying fetchers.
func (f *AutoFetcher) Close() error {
	return errors.Join(f.HTTP.Close(), f.Browser.Close())
}

func (f *AutoFetcher) logger() *slog.Logger {
	if f.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return f.Logger
}
