package rank

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docask"
	"golang.org/x/sync/singleflight"
)

var _ docask.Embedder = (*CachingEmbedder)(nil)

// CachingEmbedder memoizes embeddings per model and normalized text.
// Misses are embedded by the wrapped Embedder in a single batch, and
// concurrent calls missing the same texts share one backend call.
type CachingEmbedder struct {
	next  docask.Embedder
	cache docask.EmbeddingCache
	group singleflight.Group
}

// NewCachingEmbedder wraps next with cache.
func NewCachingEmbedder(next docask.Embedder, cache docask.EmbeddingCache) *CachingEmbedder {
	return &CachingEmbedder{next: next, cache: cache}
}

// Model returns the wrapped embedder's model.
func (c *CachingEmbedder) Model() string {
	return c.next.Model()
}

// Embed returns cached vectors where available and embeds the rest.
func (c *CachingEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	model := c.next.Model()
	out := make([][]float32, len(texts))

	// Indices of each missing key, so repeated texts are embedded once.
	missing := make(map[string][]int)
	var missKeys, missTexts []string

	for i, text := range texts {
		key := CacheKey(model, text)
		if idx, ok := missing[key]; ok {
			missing[key] = append(idx, i)
			continue
		}
		vec, ok, err := c.cache.GetEmbedding(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("reading embedding cache: %w", err)
		}
		if ok {
			out[i] = vec
			continue
		}
		missing[key] = []int{i}
		missKeys = append(missKeys, key)
		missTexts = append(missTexts, text)
	}

	if len(missKeys) == 0 {
		return out, nil
	}

	batchKey := strings.Join(missKeys, ",")
	v, err, _ := c.group.Do(batchKey, func() (any, error) {
		vecs, err := c.next.Embed(ctx, missTexts)
		if err != nil {
			return nil, err
		}
		if len(vecs) != len(missTexts) {
			return nil, docask.Errorf(docask.EINTERNAL, "embedder returned %d vectors for %d texts", len(vecs), len(missTexts))
		}
		for i, key := range missKeys {
			if err := c.cache.PutEmbedding(ctx, key, vecs[i]); err != nil {
				return nil, fmt.Errorf("writing embedding cache: %w", err)
			}
		}
		return vecs, nil
	})
	if err != nil {
		return nil, err
	}

	vecs := v.([][]float32)
	for i, key := range missKeys {
		for _, idx := range missing[key] {
			out[idx] = vecs[i]
		}
	}
	return out, nil
}

// CacheKey identifies the embedding of text under model. Texts that
// normalize equally share a key.
func CacheKey(model, text string) string {
	h := xxhash.New()
	_, _ = h.WriteString(model)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(docask.Normalize(text))
	return strconv.FormatUint(h.Sum64(), 16)
}
