package docask

import "context"

// Embedder encodes text into fixed-length vectors.
type Embedder interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Model identifies the embedding model. Vectors from different models
	// are not comparable.
	Model() string
}

// EmbeddingCache stores embedding vectors by key.
type EmbeddingCache interface {
	// GetEmbedding returns the cached vector for key and whether it was found.
	GetEmbedding(ctx context.Context, key string) ([]float32, bool, error)

	// PutEmbedding stores vec under key.
	PutEmbedding(ctx context.Context, key string, vec []float32) error
}

// Ranker orders link candidates and fragments by similarity to a query.
type Ranker interface {
	// BestLink returns the candidate most similar to query. ok is false when
	// there is no candidate to select.
	BestLink(ctx context.Context, query string, links []LinkCandidate) (best LinkCandidate, score float64, ok bool, err error)

	// TopFragments returns the fragments most similar to query, best first.
	TopFragments(ctx context.Context, query string, fragments []Fragment) ([]ScoredFragment, error)
}
