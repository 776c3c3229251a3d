// Package hashembed implements a local sentence embedder based on feature
// hashing. It needs no model download or network access and produces the
// same vector for the same normalized text on every run.
//
// Each text contributes word unigrams, word bigrams and character trigrams of
// every word. Features are hashed with xxhash into a fixed number of buckets
// with a hash-derived sign, and the resulting vector is L2 normalized, so the
// dot product of two vectors is their cosine similarity.
package hashembed

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docask"
)

// DefaultDimensions matches the width of common small sentence-transformer models.
const DefaultDimensions = 384

// Feature weights. Word features dominate; trigrams make the embedding
// tolerant of inflection ("track", "tracking").
const (
	unigramWeight = 1.0
	bigramWeight  = 0.7
	trigramWeight = 0.35
)

var _ docask.Embedder = (*Embedder)(nil)

// Embedder is a deterministic feature-hashing embedder.
type Embedder struct {
	dims int
}

// Option configures an Embedder.
type Option func(*Embedder)

// WithDimensions sets the vector width. Values below 1 are ignored.
func WithDimensions(n int) Option {
	return func(e *Embedder) {
		if n > 0 {
			e.dims = n
		}
	}
}

// NewEmbedder creates an Embedder with DefaultDimensions.
func NewEmbedder(opts ...Option) *Embedder {
	e := &Embedder{dims: DefaultDimensions}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Model identifies the hashing scheme and width.
func (e *Embedder) Model() string {
	return fmt.Sprintf("hashembed-v1-%d", e.dims)
}

// Embed returns one unit-length vector per text. Texts without word
// characters embed to the zero vector.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = e.vector(text)
	}
	return out, nil
}

func (e *Embedder) vector(text string) []float32 {
	acc := make([]float64, e.dims)
	words := tokenize(text)

	for i, w := range words {
		e.add(acc, "w:"+w, unigramWeight)
		if i > 0 {
			e.add(acc, "b:"+words[i-1]+" "+w, bigramWeight)
		}
		padded := []rune("#" + w + "#")
		for j := 0; j+3 <= len(padded); j++ {
			e.add(acc, "c:"+string(padded[j:j+3]), trigramWeight)
		}
	}

	var norm float64
	for _, v := range acc {
		norm += v * v
	}
	vec := make([]float32, e.dims)
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i, v := range acc {
		vec[i] = float32(v / norm)
	}
	return vec
}

func (e *Embedder) add(acc []float64, feature string, weight float64) {
	h := xxhash.Sum64String(feature)
	idx := h % uint64(e.dims)
	if h>>63 == 1 {
		weight = -weight
	}
	acc[idx] += weight
}

// tokenize splits normalized text into words of letters and digits.
func tokenize(text string) []string {
	return strings.FieldsFunc(docask.Normalize(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
