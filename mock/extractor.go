package mock

import "github.com/fwojciec/docask"

var _ docask.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of docask.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]docask.LinkCandidate, error)
}

func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]docask.LinkCandidate, error) {
	return e.ExtractLinksFn(html, baseURL)
}

var _ docask.FragmentExtractor = (*FragmentExtractor)(nil)

// FragmentExtractor is a mock implementation of docask.FragmentExtractor.
type FragmentExtractor struct {
	ExtractFragmentsFn func(html string) ([]docask.Fragment, error)
}

func (e *FragmentExtractor) ExtractFragments(html string) ([]docask.Fragment, error) {
	return e.ExtractFragmentsFn(html)
}

var _ docask.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of docask.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*docask.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*docask.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ docask.Converter = (*Converter)(nil)

// Converter is a mock implementation of docask.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
