package docask

import (
	"context"
	"fmt"
)

// AnswerStatus describes how an exploration ended.
type AnswerStatus string

// Answer statuses.
const (
	// StatusFound means relevant fragments were found.
	StatusFound AnswerStatus = "found"

	// StatusUnreachable means the documentation root or the followed page
	// could not be fetched.
	StatusUnreachable AnswerStatus = "unreachable"

	// StatusNoLinks means the documentation root had no link candidates.
	StatusNoLinks AnswerStatus = "no_links"

	// StatusNoContent means a branch ended without links or fragments.
	StatusNoContent AnswerStatus = "no_content"

	// StatusExhausted means the maximum crawl depth was reached.
	StatusExhausted AnswerStatus = "exhausted"

	// StatusFailed means ranking failed, e.g. the embedding model errored.
	StatusFailed AnswerStatus = "failed"
)

// MessageNoRelevantContent is shown when an exploration yields nothing.
const MessageNoRelevantContent = "No relevant content found."

// CannotAccessMessage is the message for a documentation page that could not be fetched.
func CannotAccessMessage(url string) string {
	return fmt.Sprintf("Cannot access %s. The page might be restricted.", url)
}

// NoLinksMessage is the message for a documentation root without links.
func NoLinksMessage(source string) string {
	return fmt.Sprintf("No links found in %s's documentation.", source)
}

// ScoredFragment is a fragment with its similarity to the query.
type ScoredFragment struct {
	Fragment
	Score float64 `json:"score"`
}

// Answer is the outcome of exploring one documentation source for a query.
type Answer struct {
	Source  string       `json:"source"`
	Query   string       `json:"query"`
	Status  AnswerStatus `json:"status"`
	Message string       `json:"message,omitempty"`

	// Section is the link whose target held the fragments.
	Section *LinkCandidate `json:"section,omitempty"`

	Fragments []ScoredFragment `json:"fragments,omitempty"`

	// Depth is the crawl depth of the last page whose links were ranked;
	// the root page is depth 0.
	Depth int `json:"depth"`

	// Trail lists the URLs fetched, in order.
	Trail []string `json:"trail,omitempty"`
}

// Found reports whether the answer carries relevant fragments.
func (a *Answer) Found() bool {
	return a != nil && a.Status == StatusFound && len(a.Fragments) > 0
}

// Comparison holds two independently explored answers for the same query.
type Comparison struct {
	Query  string  `json:"query"`
	First  *Answer `json:"first"`
	Second *Answer `json:"second"`
}

// Asker answers questions from documentation sources.
type Asker interface {
	// Ask explores the named source for the query.
	// Returns ENOTFOUND if the source does not exist. Fetch and extraction
	// failures are reported in the Answer, not as errors.
	Ask(ctx context.Context, source, query string) (*Answer, error)

	// Compare explores two sources for the same query, one after the other.
	Compare(ctx context.Context, query, first, second string) (*Comparison, error)
}
