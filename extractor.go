package docask

// LinkCandidate is an anchor found on a documentation page.
type LinkCandidate struct {
	// Text is the normalized anchor text.
	Text string `json:"text"`

	// URL is the absolute URL the anchor points to.
	URL string `json:"url"`
}

// LinkExtractor extracts link candidates from HTML.
type LinkExtractor interface {
	// ExtractLinks parses html and returns its anchors with normalized text
	// and URLs resolved against baseURL. Returns an empty slice when the page
	// has no usable anchors.
	ExtractLinks(html string, baseURL string) ([]LinkCandidate, error)
}

// FragmentKind identifies the element a fragment was taken from.
type FragmentKind string

// Fragment kinds.
const (
	KindParagraph FragmentKind = "paragraph"
	KindListItem  FragmentKind = "list_item"
	KindHeading   FragmentKind = "heading"
	KindCode      FragmentKind = "code"
)

// Fragment is the stripped text of one content element.
type Fragment struct {
	Kind FragmentKind `json:"kind"`
	Text string       `json:"text"`

	// Markdown is an optional markdown rendering of the element,
	// set for code blocks when a Converter is available.
	Markdown string `json:"markdown,omitempty"`
}

// FragmentExtractor extracts text fragments from HTML.
type FragmentExtractor interface {
	// ExtractFragments returns the text-bearing elements of html in document order.
	ExtractFragments(html string) ([]Fragment, error)
}

// ExtractResult holds the main content of an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML with
	// navigation, footers and sidebars removed.
	ContentHTML string
}

// Extractor narrows an HTML page down to its main content.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	Convert(html string) (string, error)
}
