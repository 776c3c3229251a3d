package crawl

import "github.com/fwojciec/docask"

// ContentDiffers reports whether the browser-rendered page carries
// substantially more main content than the plain HTTP page: more than 50%
// longer, or any content where HTTP had none. Extraction errors count as
// a difference.
func ContentDiffers(httpHTML, browserHTML string, extractor docask.Extractor) bool {
	plain, err := extractor.Extract(httpHTML)
	if err != nil {
		return true
	}
	rendered, err := extractor.Extract(browserHTML)
	if err != nil {
		return true
	}

	plainLen := len(plain.ContentHTML)
	renderedLen := len(rendered.ContentHTML)
	if plainLen == 0 {
		return renderedLen > 0
	}
	return float64(renderedLen) > float64(plainLen)*1.5
}
