package http

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/docask"
)

// DefaultProbeTimeout is the default timeout for accessibility probes.
const DefaultProbeTimeout = 5 * time.Second

// Ensure Prober implements docask.Prober at compile time.
var _ docask.Prober = (*Prober)(nil)

// Prober checks URL accessibility with a HEAD request.
type Prober struct {
	client        *http.Client
	userAgent     string
	respectRobots bool
}

// ProberOption configures a Prober.
type ProberOption func(*Prober)

// WithProbeTimeout sets the probe timeout. Defaults to DefaultProbeTimeout (5s).
func WithProbeTimeout(d time.Duration) ProberOption {
	return func(p *Prober) {
		p.client.Timeout = d
	}
}

// WithProbeUserAgent sets the User-Agent header sent with probes.
func WithProbeUserAgent(ua string) ProberOption {
	return func(p *Prober) {
		p.userAgent = ua
	}
}

// WithRobots makes the prober report URLs disallowed by the host's
// robots.txt for the prober's user agent as inaccessible.
func WithRobots(respect bool) ProberOption {
	return func(p *Prober) {
		p.respectRobots = respect
	}
}

// NewProber creates a new Prober.
func NewProber(opts ...ProberOption) *Prober {
	p := &Prober{
		client:    &http.Client{Timeout: DefaultProbeTimeout},
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Accessible reports whether rawURL answers a HEAD request with 200 OK.
// Network errors and any other status report false.
func (p *Prober) Accessible(ctx context.Context, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}

	if p.respectRobots {
		robots, err := fetchRobots(ctx, p.client, u, p.userAgent)
		path := u.EscapedPath()
		if path == "" {
			path = "/"
		}
		if err == nil && !robots.TestAgent(path, p.userAgent) {
			return false
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return false
	}
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
