// Package readability narrows documentation pages to their main content
// using go-readability. It serves as an alternative to the trafilatura
// package for sites where trafilatura keeps too much navigation.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/docask"
	"github.com/go-shiori/go-readability"
)

var _ docask.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct {
	// PageURL, when set, is used to resolve relative links in the content.
	PageURL *url.URL
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
// Returns EINVALID for empty input and ENOTFOUND when readability finds
// no article.
func (e *Extractor) Extract(rawHTML string) (*docask.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docask.Errorf(docask.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), e.PageURL)
	if err != nil {
		return nil, docask.Errorf(docask.ENOTFOUND, "no main content: %v", err)
	}
	if strings.TrimSpace(article.Content) == "" {
		return nil, docask.Errorf(docask.ENOTFOUND, "no main content")
	}

	return &docask.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
