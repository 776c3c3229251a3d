package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docask"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	textSelector = "p, li, h1, h2, h3, h4, h5, h6"
	codeSelector = "pre, code"
)

var _ docask.FragmentExtractor = (*FragmentExtractor)(nil)

// FragmentExtractor extracts the text of paragraphs, list items and headings
// and, optionally, code blocks.
type FragmentExtractor struct {
	// IncludeCode adds pre and code elements as KindCode fragments.
	IncludeCode bool

	// IncludeScript adds script elements whose type is not JavaScript,
	// such as JSON payload examples.
	IncludeScript bool

	// MinWords drops fragments with fewer words. Zero keeps everything.
	MinWords int

	// Converter renders code fragments as Markdown when set.
	Converter docask.Converter
}

// NewFragmentExtractor returns a FragmentExtractor for prose elements only.
func NewFragmentExtractor() *FragmentExtractor {
	return &FragmentExtractor{}
}

// ExtractFragments returns fragments in document order. Text is trimmed and
// empty fragments are dropped. A code element inside a pre is covered by
// the pre and not emitted again.
func (e *FragmentExtractor) ExtractFragments(htmlContent string) ([]docask.Fragment, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, docask.Errorf(docask.EINVALID, "failed to parse HTML: %v", err)
	}

	fragments := []docask.Fragment{}
	doc.Find(e.selector()).Each(func(_ int, sel *goquery.Selection) {
		node := sel.Nodes[0]

		kind, ok := e.kindOf(node)
		if !ok {
			return
		}

		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}
		if e.MinWords > 0 && docask.WordCount(text) < e.MinWords {
			return
		}

		f := docask.Fragment{Kind: kind, Text: text}
		if kind == docask.KindCode && e.Converter != nil {
			if outer, err := goquery.OuterHtml(sel); err == nil {
				if md, err := e.Converter.Convert(outer); err == nil {
					f.Markdown = strings.TrimSpace(md)
				}
			}
		}
		fragments = append(fragments, f)
	})

	return fragments, nil
}

func (e *FragmentExtractor) selector() string {
	sel := textSelector
	if e.IncludeCode {
		sel += ", " + codeSelector
	}
	if e.IncludeScript {
		sel += ", script"
	}
	return sel
}

func (e *FragmentExtractor) kindOf(node *html.Node) (docask.FragmentKind, bool) {
	switch node.DataAtom {
	case atom.P:
		return docask.KindParagraph, true
	case atom.Li:
		return docask.KindListItem, true
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return docask.KindHeading, true
	case atom.Pre:
		return docask.KindCode, true
	case atom.Code:
		return docask.KindCode, !insidePre(node)
	case atom.Script:
		return docask.KindCode, !isJavaScript(node)
	}
	return "", false
}

func insidePre(node *html.Node) bool {
	for p := node.Parent; p != nil; p = p.Parent {
		if p.DataAtom == atom.Pre {
			return true
		}
	}
	return false
}

// isJavaScript reports whether a script element holds executable code.
// A missing type attribute means JavaScript.
func isJavaScript(node *html.Node) bool {
	for _, attr := range node.Attr {
		if attr.Key != "type" {
			continue
		}
		t := strings.ToLower(strings.TrimSpace(attr.Val))
		return t == "" || t == "module" || strings.Contains(t, "javascript") || strings.Contains(t, "ecmascript")
	}
	return true
}
