// Package docask answers how-to questions about customer data platforms by
// crawling their public documentation. A query is embedded, compared against
// the anchors of a documentation page, and the best-matching link is followed
// until text fragments relevant to the query are found or the crawl depth is
// exhausted.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, gemini/).
package docask
