// Package crawl answers queries by greedily following the most relevant
// link of a documentation site until a page yields relevant fragments.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/fwojciec/docask"
	"github.com/fwojciec/docask/bloom"
)

// DefaultMaxDepth is the number of link-follow hops allowed beyond the
// first followed page.
const DefaultMaxDepth = 3

// Visited-set sizing for a single exploration.
const (
	visitedExpectedURLs      = 1000
	visitedFalsePositiveRate = 0.001
)

var _ docask.Asker = (*Controller)(nil)

// Controller explores documentation sources for answers.
type Controller struct {
	Sources []*docask.DocSource

	// Fetcher fetches pages of sources without a dedicated renderer.
	Fetcher docask.Fetcher

	// Renderers overrides Fetcher for sources with a matching Renderer.
	Renderers map[docask.Renderer]docask.Fetcher

	// Prober, if set, is consulted before the root page is fetched.
	Prober docask.Prober

	Links     docask.LinkExtractor
	Fragments docask.FragmentExtractor

	// Extractor, if set, narrows pages to their main content before
	// fragments are extracted.
	Extractor docask.Extractor

	Ranker  docask.Ranker
	Limiter docask.DomainLimiter

	// Sitemaps supplies link candidates when the root page has none and
	// SitemapFallback is enabled.
	Sitemaps        docask.SitemapService
	SitemapFallback bool

	MaxDepth    int
	RetryDelays []time.Duration
	Logger      *slog.Logger
}

// exploration holds the state of one Explore call.
type exploration struct {
	source  *docask.DocSource
	query   string
	fetcher docask.Fetcher
	visited *bloom.VisitedSet
	answer  *docask.Answer
}

// Ask explores the named source for query.
// Returns ENOTFOUND if no source has that name.
func (c *Controller) Ask(ctx context.Context, source, query string) (*docask.Answer, error) {
	src, err := docask.FindSource(c.Sources, source)
	if err != nil {
		return nil, err
	}
	return c.Explore(ctx, src, query)
}

// Compare explores first and then second for the same query. Each
// exploration starts from fresh state.
func (c *Controller) Compare(ctx context.Context, query, first, second string) (*docask.Comparison, error) {
	a, err := c.Ask(ctx, first, query)
	if err != nil {
		return nil, err
	}
	b, err := c.Ask(ctx, second, query)
	if err != nil {
		return nil, err
	}
	return &docask.Comparison{Query: query, First: a, Second: b}, nil
}

// Explore starts at the source root and follows the best-ranked link until
// a page yields fragments or the depth limit is reached. Failures are
// reported in the answer; only context errors are returned.
func (c *Controller) Explore(ctx context.Context, source *docask.DocSource, query string) (*docask.Answer, error) {
	e := &exploration{
		source:  source,
		query:   query,
		fetcher: c.fetcherFor(source),
		visited: bloom.NewVisitedSet(visitedExpectedURLs, visitedFalsePositiveRate),
		answer:  &docask.Answer{Source: source.Name, Query: query},
	}
	logger := c.logger().With("source", source.Name)
	logger.Debug("exploring", "query", query, "root", source.RootURL)

	if c.Prober != nil && !c.Prober.Accessible(ctx, source.RootURL) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		logger.Warn("root not accessible", "url", source.RootURL)
		return e.finish(docask.StatusUnreachable, docask.CannotAccessMessage(source.RootURL)), nil
	}

	e.visited.Visit(source.RootURL)
	html, err := c.fetch(ctx, e, source.RootURL)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logger.Warn("root fetch failed", "url", source.RootURL, "err", err)
		return e.finish(docask.StatusUnreachable, docask.CannotAccessMessage(source.RootURL)), nil
	}

	answer, err := c.step(ctx, e, source.RootURL, html, 0)
	if err != nil {
		return nil, err
	}
	logger.Debug("done", "status", answer.Status, "depth", answer.Depth, "fragments", len(answer.Fragments))
	return answer, nil
}

// step ranks the links of the page at pageURL, follows the best one and
// either returns its fragments or recurses into it.
func (c *Controller) step(ctx context.Context, e *exploration, pageURL, html string, depth int) (*docask.Answer, error) {
	logger := c.logger().With("source", e.source.Name, "depth", depth)
	e.answer.Depth = depth

	links, err := c.Links.ExtractLinks(html, pageURL)
	if err != nil {
		logger.Warn("link extraction failed", "url", pageURL, "err", err)
		links = nil
	}
	if depth == 0 && len(links) == 0 && c.SitemapFallback && c.Sitemaps != nil {
		links = c.sitemapLinks(ctx, e.source.RootURL)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	links = unvisited(e.visited, links)

	if len(links) == 0 {
		if depth == 0 {
			return e.finish(docask.StatusNoLinks, docask.NoLinksMessage(e.source.Name)), nil
		}
		return e.finish(docask.StatusNoContent, docask.MessageNoRelevantContent), nil
	}

	best, score, ok, err := c.Ranker.BestLink(ctx, e.query, links)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logger.Warn("link ranking failed", "err", err)
		return e.finish(docask.StatusFailed, rankingMessage(err)), nil
	}
	if !ok {
		return e.finish(docask.StatusNoContent, docask.MessageNoRelevantContent), nil
	}
	logger.Debug("following link", "text", best.Text, "url", best.URL, "score", score)

	e.visited.Visit(best.URL)
	target, err := c.fetch(ctx, e, best.URL)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logger.Warn("fetch failed", "url", best.URL, "err", err)
		return e.finish(docask.StatusUnreachable, docask.CannotAccessMessage(best.URL)), nil
	}

	fragments := c.fragments(logger, target)
	top, err := c.Ranker.TopFragments(ctx, e.query, fragments)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logger.Warn("fragment ranking failed", "err", err)
		return e.finish(docask.StatusFailed, rankingMessage(err)), nil
	}

	if len(top) > 0 {
		section := best
		e.answer.Section = &section
		e.answer.Fragments = top
		return e.finish(docask.StatusFound, ""), nil
	}

	if depth+1 > c.maxDepth() {
		return e.finish(docask.StatusExhausted, docask.MessageNoRelevantContent), nil
	}
	logger.Debug("no fragments, descending", "url", best.URL)
	return c.step(ctx, e, best.URL, target, depth+1)
}

// fetch paces and fetches rawURL, recording it in the trail.
func (c *Controller) fetch(ctx context.Context, e *exploration, rawURL string) (string, error) {
	if err := waitURL(ctx, c.Limiter, rawURL); err != nil {
		return "", err
	}
	e.answer.Trail = append(e.answer.Trail, rawURL)
	return FetchWithRetryDelays(ctx, rawURL, e.fetcher, c.logger(), c.RetryDelays)
}

// fragments extracts fragments from html, narrowed to its main content
// when an Extractor is set and succeeds.
func (c *Controller) fragments(logger *slog.Logger, html string) []docask.Fragment {
	if html == "" {
		return nil
	}
	if c.Extractor != nil {
		if res, err := c.Extractor.Extract(html); err == nil && strings.TrimSpace(res.ContentHTML) != "" {
			if frags, err := c.Fragments.ExtractFragments(res.ContentHTML); err == nil && len(frags) > 0 {
				return frags
			}
		}
	}
	frags, err := c.Fragments.ExtractFragments(html)
	if err != nil {
		logger.Warn("fragment extraction failed", "err", err)
		return nil
	}
	return frags
}

// sitemapLinks synthesizes link candidates from the sitemap URLs of rootURL,
// using the last path segment as anchor text.
func (c *Controller) sitemapLinks(ctx context.Context, rootURL string) []docask.LinkCandidate {
	urls, err := c.Sitemaps.DiscoverURLs(ctx, rootURL)
	if err != nil {
		c.logger().Warn("sitemap discovery failed", "url", rootURL, "err", err)
		return nil
	}
	links := make([]docask.LinkCandidate, 0, len(urls))
	for _, u := range urls {
		text := SitemapText(u)
		if text == "" {
			continue
		}
		links = append(links, docask.LinkCandidate{Text: text, URL: u})
	}
	return links
}

// SitemapText derives anchor text from a page URL: its last path segment
// with dashes and underscores as spaces and any extension removed.
func SitemapText(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	seg := path.Base(strings.TrimSuffix(u.Path, "/"))
	if seg == "." || seg == "/" {
		return ""
	}
	seg = strings.TrimSuffix(seg, path.Ext(seg))
	seg = strings.NewReplacer("-", " ", "_", " ").Replace(seg)
	return docask.Normalize(seg)
}

func (c *Controller) fetcherFor(source *docask.DocSource) docask.Fetcher {
	if f, ok := c.Renderers[source.Renderer]; ok && f != nil {
		return f
	}
	return c.Fetcher
}

func (c *Controller) maxDepth() int {
	if c.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return c.MaxDepth
}

func (c *Controller) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

func (e *exploration) finish(status docask.AnswerStatus, message string) *docask.Answer {
	e.answer.Status = status
	e.answer.Message = message
	return e.answer
}

func unvisited(visited *bloom.VisitedSet, links []docask.LinkCandidate) []docask.LinkCandidate {
	out := links[:0:0]
	for _, l := range links {
		if !visited.Visited(l.URL) {
			out = append(out, l)
		}
	}
	return out
}

func rankingMessage(err error) string {
	return fmt.Sprintf("Ranking failed: %v", err)
}
