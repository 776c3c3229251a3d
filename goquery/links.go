// Package goquery implements HTML extraction for docask using goquery:
// anchor candidates for link ranking, text fragments for answer ranking and
// documentation framework detection.
package goquery

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docask"
)

// DefaultMinTextLen is the minimum normalized anchor text length, in runes,
// for a link to become a candidate.
const DefaultMinTextLen = 4

var _ docask.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor extracts link candidates from every anchor of a page.
type LinkExtractor struct {
	// MinTextLen drops anchors with shorter normalized text. Zero disables.
	MinTextLen int
}

// NewLinkExtractor returns a LinkExtractor with DefaultMinTextLen.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{MinTextLen: DefaultMinTextLen}
}

// ExtractLinks returns one candidate per distinct normalized anchor text.
// When the same text appears more than once the last URL wins while the
// candidate keeps the position of its first occurrence.
func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]docask.LinkCandidate, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, docask.Errorf(docask.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docask.Errorf(docask.EINVALID, "failed to parse HTML: %v", err)
	}

	index := make(map[string]int)
	links := []docask.LinkCandidate{}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if strings.TrimSpace(href) == "" || isNonHTTPLink(href) {
			return
		}

		text := docask.Normalize(sel.Text())
		if text == "" || utf8.RuneCountInString(text) < e.MinTextLen {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}

		if i, ok := index[text]; ok {
			links[i].URL = resolved
			return
		}
		index[text] = len(links)
		links = append(links, docask.LinkCandidate{Text: text, URL: resolved})
	})

	return links, nil
}

// resolveURL resolves href against base with the fragment stripped.
// Returns empty string if href cannot be parsed.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
