// Package trafilatura narrows documentation pages to their main content
// using go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/docask"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

var _ docask.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor with fallback extraction enabled.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
// Returns EINVALID for empty input and ENOTFOUND when no content block is found.
func (e *Extractor) Extract(rawHTML string) (*docask.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docask.Errorf(docask.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, docask.Errorf(docask.ENOTFOUND, "no main content: %v", err)
	}
	if result.ContentNode == nil {
		return nil, docask.Errorf(docask.ENOTFOUND, "no main content")
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, result.ContentNode); err != nil {
		return nil, err
	}

	return &docask.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: buf.String(),
	}, nil
}
