package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docask"
)

var _ docask.FrameworkDetector = (*Detector)(nil)

// frameworkMarkers lists, in detection order, selectors that only appear in
// pages produced by one documentation generator. VitePress precedes VuePress
// because it descends from it.
var frameworkMarkers = []struct {
	framework docask.Framework
	selectors []string
}{
	{docask.FrameworkDocusaurus, []string{"#__docusaurus_skipToContent_fallback", ".theme-doc-sidebar-container", "[data-rh][data-theme]"}},
	{docask.FrameworkMkDocs, []string{"[data-md-color-scheme]", "[data-md-component]", ".md-nav--primary"}},
	{docask.FrameworkSphinx, []string{".toctree-wrapper", ".wy-nav-side", ".wy-menu-vertical", ".sphinxsidebar"}},
	{docask.FrameworkVitePress, []string{"#VPContent", ".VPDoc", ".VPDocAsideOutline"}},
	{docask.FrameworkVuePress, []string{".theme-default-content", ".sidebar-links", ".vuepress-navbar"}},
	{docask.FrameworkGitBook, []string{"[data-testid='space.sidebar']", "[data-testid='page.desktopTableOfContents']"}},
	{docask.FrameworkNextra, []string{".nextra-navbar", ".nextra-sidebar", ".nextra-toc"}},
}

// Detector identifies documentation frameworks from HTML content.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes HTML and returns the identified framework.
// The meta generator tag wins when present; otherwise structural markers
// are checked. Returns FrameworkUnknown if nothing matches.
func (d *Detector) Detect(html string) docask.Framework {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return docask.FrameworkUnknown
	}

	if framework := fromGenerator(doc); framework != docask.FrameworkUnknown {
		return framework
	}

	for _, m := range frameworkMarkers {
		for _, sel := range m.selectors {
			if doc.Find(sel).Length() > 0 {
				return m.framework
			}
		}
	}

	if hasGitBookClasses(doc) {
		return docask.FrameworkGitBook
	}
	return docask.FrameworkUnknown
}

// RequiresJS reports whether pages of framework carry their content only
// after client-side rendering.
func (d *Detector) RequiresJS(framework docask.Framework) (requires bool, known bool) {
	switch framework {
	case docask.FrameworkDocusaurus, docask.FrameworkMkDocs, docask.FrameworkSphinx,
		docask.FrameworkVuePress, docask.FrameworkVitePress:
		return false, true
	case docask.FrameworkGitBook, docask.FrameworkNextra:
		return true, true
	}
	return false, false
}

func fromGenerator(doc *goquery.Document) docask.Framework {
	generator, _ := doc.Find("meta[name='generator']").Last().Attr("content")
	generator = strings.ToLower(generator)
	if generator == "" {
		return docask.FrameworkUnknown
	}

	for _, f := range []docask.Framework{
		docask.FrameworkSphinx,
		docask.FrameworkGitBook,
		docask.FrameworkDocusaurus,
		docask.FrameworkMkDocs,
		docask.FrameworkVitePress,
		docask.FrameworkVuePress,
		docask.FrameworkNextra,
	} {
		if strings.Contains(generator, string(f)) {
			return f
		}
	}
	return docask.FrameworkUnknown
}

// hasGitBookClasses requires two of GitBook's html element classes.
func hasGitBookClasses(doc *goquery.Document) bool {
	class, _ := doc.Find("html").Attr("class")
	count := 0
	for _, c := range []string{"circular-corners", "theme-clean", "tint"} {
		if strings.Contains(class, c) {
			count++
		}
	}
	return count >= 2
}
