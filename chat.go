package docask

import "context"

// ChatRequest is one round of interactive input.
type ChatRequest struct {
	Query  string
	Source string

	// CompareWith names a second source to answer the same query from.
	// Empty means a single-source answer.
	CompareWith string
}

// Validate returns an error if the request contains invalid fields.
func (r *ChatRequest) Validate() error {
	if r.Query == "" {
		return Errorf(EINVALID, "query required")
	}
	if r.Source == "" {
		return Errorf(EINVALID, "source required")
	}
	if r.CompareWith != "" && r.CompareWith == r.Source {
		return Errorf(EINVALID, "cannot compare %s with itself", r.Source)
	}
	return nil
}

// Prompter collects chat requests from a user.
type Prompter interface {
	// Prompt asks for the next request among the named sources. ok is false
	// when the user ends the session.
	Prompt(ctx context.Context, sources []string) (req *ChatRequest, ok bool, err error)
}
