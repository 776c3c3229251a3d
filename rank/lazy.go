package rank

import (
	"context"
	"sync"

	"github.com/fwojciec/docask"
)

var _ docask.Embedder = (*LazyEmbedder)(nil)

// LazyEmbedder defers construction of an expensive embedder until the
// first Embed call. Construction runs once; its error is returned by every
// later call.
type LazyEmbedder struct {
	model string
	init  func(ctx context.Context) (docask.Embedder, error)

	once     sync.Once
	embedder docask.Embedder
	err      error
}

// NewLazyEmbedder returns an embedder that calls init on first use. model
// must name the model init produces, so cache lookups need no initialization.
func NewLazyEmbedder(model string, init func(ctx context.Context) (docask.Embedder, error)) *LazyEmbedder {
	return &LazyEmbedder{model: model, init: init}
}

// Model returns the model name given at construction.
func (l *LazyEmbedder) Model() string {
	return l.model
}

// Embed initializes the underlying embedder if needed and delegates to it.
func (l *LazyEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	l.once.Do(func() {
		l.embedder, l.err = l.init(ctx)
	})
	if l.err != nil {
		return nil, l.err
	}
	return l.embedder.Embed(ctx, texts)
}
