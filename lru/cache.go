// Package lru implements an in-process docask.EmbeddingCache on top of
// hashicorp/golang-lru, optionally reading through to a persistent cache.
package lru

import (
	"context"

	"github.com/fwojciec/docask"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize is the number of vectors kept in memory.
const DefaultSize = 4096

var _ docask.EmbeddingCache = (*Cache)(nil)

// Cache holds recently used embeddings in memory. When a backing cache is
// set, misses are read from it and writes go to both.
type Cache struct {
	cache   *lru.Cache[string, []float32]
	backing docask.EmbeddingCache
}

// Option configures a Cache.
type Option func(*Cache)

// WithBacking reads through to and writes through to backing.
func WithBacking(backing docask.EmbeddingCache) Option {
	return func(c *Cache) {
		c.backing = backing
	}
}

// NewCache creates a Cache holding up to size vectors.
func NewCache(size int, opts ...Option) (*Cache, error) {
	if size <= 0 {
		return nil, docask.Errorf(docask.EINVALID, "cache size must be positive")
	}
	inner, err := lru.New[string, []float32](size)
	if err != nil {
		return nil, err
	}
	c := &Cache{cache: inner}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GetEmbedding returns the vector for key from memory or the backing cache.
func (c *Cache) GetEmbedding(ctx context.Context, key string) ([]float32, bool, error) {
	if vec, ok := c.cache.Get(key); ok {
		return vec, true, nil
	}
	if c.backing == nil {
		return nil, false, nil
	}

	vec, ok, err := c.backing.GetEmbedding(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	c.cache.Add(key, vec)
	return vec, true, nil
}

// PutEmbedding stores vec in memory and in the backing cache.
func (c *Cache) PutEmbedding(ctx context.Context, key string, vec []float32) error {
	c.cache.Add(key, vec)
	if c.backing == nil {
		return nil
	}
	return c.backing.PutEmbedding(ctx, key, vec)
}

// Len returns the number of vectors held in memory.
func (c *Cache) Len() int {
	return c.cache.Len()
}
