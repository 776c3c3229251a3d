package mock

import (
	"context"

	"github.com/fwojciec/docask"
)

var _ docask.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of docask.Embedder.
type Embedder struct {
	EmbedFn func(ctx context.Context, texts []string) ([][]float32, error)
	ModelFn func() string
}

func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return e.EmbedFn(ctx, texts)
}

func (e *Embedder) Model() string {
	if e.ModelFn == nil {
		return "mock"
	}
	return e.ModelFn()
}

// VectorEmbedder returns an Embedder that looks vectors up by text.
// Texts without a vector embed to the zero vector of the same dimension.
func VectorEmbedder(vectors map[string][]float32) *Embedder {
	dim := 0
	for _, v := range vectors {
		dim = len(v)
		break
	}
	return &Embedder{
		EmbedFn: func(_ context.Context, texts []string) ([][]float32, error) {
			out := make([][]float32, len(texts))
			for i, text := range texts {
				if v, ok := vectors[text]; ok {
					out[i] = v
				} else {
					out[i] = make([]float32, dim)
				}
			}
			return out, nil
		},
	}
}

var _ docask.EmbeddingCache = (*EmbeddingCache)(nil)

// EmbeddingCache is a mock implementation of docask.EmbeddingCache.
type EmbeddingCache struct {
	GetEmbeddingFn func(ctx context.Context, key string) ([]float32, bool, error)
	PutEmbeddingFn func(ctx context.Context, key string, vec []float32) error
}

func (c *EmbeddingCache) GetEmbedding(ctx context.Context, key string) ([]float32, bool, error) {
	return c.GetEmbeddingFn(ctx, key)
}

func (c *EmbeddingCache) PutEmbedding(ctx context.Context, key string, vec []float32) error {
	return c.PutEmbeddingFn(ctx, key, vec)
}

var _ docask.Ranker = (*Ranker)(nil)

// Ranker is a mock implementation of docask.Ranker.
type Ranker struct {
	BestLinkFn     func(ctx context.Context, query string, links []docask.LinkCandidate) (docask.LinkCandidate, float64, bool, error)
	TopFragmentsFn func(ctx context.Context, query string, fragments []docask.Fragment) ([]docask.ScoredFragment, error)
}

func (r *Ranker) BestLink(ctx context.Context, query string, links []docask.LinkCandidate) (docask.LinkCandidate, float64, bool, error) {
	return r.BestLinkFn(ctx, query, links)
}

func (r *Ranker) TopFragments(ctx context.Context, query string, fragments []docask.Fragment) ([]docask.ScoredFragment, error) {
	return r.TopFragmentsFn(ctx, query, fragments)
}
