// Package gemini embeds text with the Google Gemini embedding models.
package gemini

import (
	"context"
	"fmt"

	"github.com/fwojciec/docask"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini embedding model used when none is configured.
const DefaultModel = "gemini-embedding-001"

// MaxBatchSize is the largest number of texts sent in one request.
const MaxBatchSize = 100

// taskType tunes embeddings for comparing short texts with each other.
const taskType = "SEMANTIC_SIMILARITY"

// EmbedContentFunc matches genai's Models.EmbedContent.
type EmbedContentFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)

var _ docask.Embedder = (*Embedder)(nil)

// Embedder implements docask.Embedder using the Gemini API.
type Embedder struct {
	embed      EmbedContentFunc
	model      string
	dimensions int32
}

// Option configures an Embedder.
type Option func(*Embedder)

// WithModel sets the embedding model.
func WithModel(model string) Option {
	return func(e *Embedder) {
		e.model = model
	}
}

// WithDimensions truncates vectors to n dimensions. Zero keeps the model default.
func WithDimensions(n int32) Option {
	return func(e *Embedder) {
		e.dimensions = n
	}
}

// NewEmbedder creates an Embedder backed by client.
func NewEmbedder(client *genai.Client, opts ...Option) *Embedder {
	return NewEmbedderFunc(client.Models.EmbedContent, opts...)
}

// NewEmbedderFunc creates an Embedder calling fn for each batch.
func NewEmbedderFunc(fn EmbedContentFunc, opts ...Option) *Embedder {
	e := &Embedder{embed: fn, model: DefaultModel}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewClient connects to the Gemini API with apiKey.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, docask.Errorf(docask.EINVALID, "GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to Gemini API: %w", err)
	}
	return client, nil
}

// Model returns the model name, including the dimensionality when set.
func (e *Embedder) Model() string {
	if e.dimensions > 0 {
		return fmt.Sprintf("%s-%d", e.model, e.dimensions)
	}
	return e.model
}

// Embed returns one vector per text, sending at most MaxBatchSize texts
// per request.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += MaxBatchSize {
		end := min(start+MaxBatchSize, len(texts))
		vecs, err := e.embedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		out = append(out, vecs...)
	}
	return out, nil
}

func (e *Embedder) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}

	config := &genai.EmbedContentConfig{TaskType: taskType}
	if e.dimensions > 0 {
		dims := e.dimensions
		config.OutputDimensionality = &dims
	}

	resp, err := e.embed(ctx, e.model, contents, config)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, docask.Errorf(docask.EUNAVAILABLE, "gemini embedding: %v", err)
	}
	if resp == nil || len(resp.Embeddings) != len(texts) {
		got := 0
		if resp != nil {
			got = len(resp.Embeddings)
		}
		return nil, docask.Errorf(docask.EINTERNAL, "gemini returned %d embeddings for %d texts", got, len(texts))
	}

	vecs := make([][]float32, len(texts))
	for i, emb := range resp.Embeddings {
		if emb == nil {
			return nil, docask.Errorf(docask.EINTERNAL, "gemini returned empty embedding at %d", i)
		}
		vecs[i] = emb.Values
	}
	return vecs, nil
}
