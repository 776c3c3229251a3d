package mock

import (
	"context"

	"github.com/fwojciec/docask"
)

var _ docask.Asker = (*Asker)(nil)

// Asker is a mock implementation of docask.Asker.
type Asker struct {
	AskFn     func(ctx context.Context, source, query string) (*docask.Answer, error)
	CompareFn func(ctx context.Context, query, first, second string) (*docask.Comparison, error)
}

func (a *Asker) Ask(ctx context.Context, source, query string) (*docask.Answer, error) {
	return a.AskFn(ctx, source, query)
}

func (a *Asker) Compare(ctx context.Context, query, first, second string) (*docask.Comparison, error) {
	return a.CompareFn(ctx, query, first, second)
}

var _ docask.Prompter = (*Prompter)(nil)

// Prompter is a mock implementation of docask.Prompter.
type Prompter struct {
	PromptFn func(ctx context.Context, sources []string) (*docask.ChatRequest, bool, error)
}

func (p *Prompter) Prompt(ctx context.Context, sources []string) (*docask.ChatRequest, bool, error) {
	return p.PromptFn(ctx, sources)
}
