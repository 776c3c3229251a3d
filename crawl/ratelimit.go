package crawl

import (
	"context"
	"net/url"
	"sync"

	"github.com/fwojciec/docask"
	"golang.org/x/time/rate"
)

// DefaultRequestsPerSecond paces successive page fetches on one host.
const DefaultRequestsPerSecond = 1.0

var _ docask.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter paces requests with one token bucket per host and a burst
// of 1, so the first request to a host is immediate and later ones wait.
// A non-positive rate disables pacing.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second per host.
func NewDomainLimiter(rps float64) *DomainLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until a request to domain is allowed.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(d.limit, 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// waitURL paces a request to rawURL's host. A nil limiter never waits.
func waitURL(ctx context.Context, l docask.DomainLimiter, rawURL string) error {
	if l == nil {
		return ctx.Err()
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return docask.Errorf(docask.EINVALID, "invalid URL %q", rawURL)
	}
	return l.Wait(ctx, u.Host)
}
