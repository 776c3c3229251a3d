// Package bloom tracks visited URLs with a Bloom filter.
package bloom

import (
	"net/url"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// VisitedSet records URLs seen during one exploration. URLs differing only
// by fragment, trailing slash or host case count as the same page.
// False positives are possible at the configured rate; false negatives are not.
// A VisitedSet is not safe for concurrent use.
type VisitedSet struct {
	f *bloom.BloomFilter
	n uint
}

// NewVisitedSet creates a set sized for n expected URLs with the given
// false positive rate.
func NewVisitedSet(n uint, fpRate float64) *VisitedSet {
	return &VisitedSet{f: bloom.NewWithEstimates(n, fpRate)}
}

// Visit marks rawURL as visited and reports whether it was new.
func (s *VisitedSet) Visit(rawURL string) bool {
	if s.f.TestAndAddString(Canonical(rawURL)) {
		return false
	}
	s.n++
	return true
}

// Visited reports whether rawURL might have been visited.
func (s *VisitedSet) Visited(rawURL string) bool {
	return s.f.TestString(Canonical(rawURL))
}

// Len returns the number of URLs newly added by Visit.
func (s *VisitedSet) Len() uint {
	return s.n
}

// Canonical returns rawURL with the fragment removed, the scheme and host
// lower-cased and a trailing slash trimmed from the path, so a bare host
// and its root path are the same URL. Unparseable input
// is returned unchanged.
func Canonical(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.Fragment = ""
	u.RawFragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawPath = strings.TrimSuffix(u.RawPath, "/")
	return u.String()
}
