package docask

import (
	"net/url"
	"strings"
)

// Renderer selects how pages of a documentation source are fetched.
type Renderer string

// Supported renderers.
const (
	RendererHTTP    Renderer = "http"
	RendererBrowser Renderer = "browser"
	RendererAuto    Renderer = "auto"
)

// DocSource is a documentation site addressed by a stable name.
type DocSource struct {
	Name     string   `json:"name" yaml:"name"`
	RootURL  string   `json:"rootUrl" yaml:"root_url"`
	Renderer Renderer `json:"renderer,omitempty" yaml:"renderer,omitempty"`
}

// Validate returns an error if the source contains invalid fields.
func (s *DocSource) Validate() error {
	if s.Name == "" {
		return Errorf(EINVALID, "source name required")
	}
	if s.RootURL == "" {
		return Errorf(EINVALID, "source %q root URL required", s.Name)
	}
	u, err := url.Parse(s.RootURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return Errorf(EINVALID, "source %q root URL %q must be an absolute http(s) URL", s.Name, s.RootURL)
	}
	switch s.Renderer {
	case "", RendererHTTP, RendererBrowser, RendererAuto:
	default:
		return Errorf(EINVALID, "source %q has unknown renderer %q", s.Name, s.Renderer)
	}
	return nil
}

// DefaultSources returns the built-in documentation sources.
func DefaultSources() []*DocSource {
	return []*DocSource{
		{Name: "Segment", RootURL: "https://segment.com/docs"},
		{Name: "mParticle", RootURL: "https://docs.mparticle.com"},
		{Name: "Lytics", RootURL: "https://docs.lytics.com"},
		{Name: "Zeotap", RootURL: "https://docs.zeotap.com/home/en-us"},
	}
}

// FindSource looks a source up by name, ignoring case.
// Returns ENOTFOUND if no source has that name.
func FindSource(sources []*DocSource, name string) (*DocSource, error) {
	for _, s := range sources {
		if strings.EqualFold(s.Name, strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return nil, Errorf(ENOTFOUND, "No documentation available for %s.", name)
}

// MergeSources overlays extra sources onto base. A source in extra replaces
// the base source with the same name; new names are appended in order.
func MergeSources(base, extra []*DocSource) []*DocSource {
	merged := make([]*DocSource, 0, len(base)+len(extra))
	merged = append(merged, base...)
	for _, s := range extra {
		replaced := false
		for i, existing := range merged {
			if strings.EqualFold(existing.Name, s.Name) {
				merged[i] = s
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, s)
		}
	}
	return merged
}

// SourceNames returns the names of sources in order.
func SourceNames(sources []*DocSource) []string {
	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = s.Name
	}
	return names
}
