package rank_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/docask"
	"github.com/fwojciec/docask/mock"
	"github.com/fwojciec/docask/rank"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapCache returns an EmbeddingCache backed by a map.
func mapCache() *mock.EmbeddingCache {
	var mu sync.Mutex
	m := make(map[string][]float32)
	return &mock.EmbeddingCache{
		GetEmbeddingFn: func(_ context.Context, key string) ([]float32, bool, error) {
			mu.Lock()
			defer mu.Unlock()
			v, ok := m[key]
			return v, ok, nil
		},
		PutEmbeddingFn: func(_ context.Context, key string, vec []float32) error {
			mu.Lock()
			defer mu.Unlock()
			m[key] = vec
			return nil
		},
	}
}

// countingEmbedder embeds each text as a one-element vector of its length
// and records every batch it receives.
func countingEmbedder(batches *[][]string, mu *sync.Mutex) *mock.Embedder {
	return &mock.Embedder{
		EmbedFn: func(_ context.Context, texts []string) ([][]float32, error) {
			mu.Lock()
			*batches = append(*batches, texts)
			mu.Unlock()
			out := make([][]float32, len(texts))
			for i, t := range texts {
				out[i] = []float32{float32(len(t))}
			}
			return out, nil
		},
	}
}

func TestCachingEmbedder_Embed(t *testing.T) {
	t.Parallel()

	t.Run("embeds only misses in one batch", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var batches [][]string
		e := rank.NewCachingEmbedder(countingEmbedder(&batches, &mu), mapCache())

		_, err := e.Embed(context.Background(), []string{"alpha", "beta"})
		require.NoError(t, err)

		vecs, err := e.Embed(context.Background(), []string{"beta", "gamma", "alpha"})
		require.NoError(t, err)

		assert.Equal(t, [][]string{{"alpha", "beta"}, {"gamma"}}, batches)
		assert.Equal(t, [][]float32{{4}, {5}, {5}}, vecs)
	})

	t.Run("shares vectors between texts that normalize equally", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var batches [][]string
		e := rank.NewCachingEmbedder(countingEmbedder(&batches, &mu), mapCache())

		vecs, err := e.Embed(context.Background(), []string{"Create Audience", "create   audience"})

		require.NoError(t, err)
		require.Len(t, batches, 1)
		assert.Equal(t, []string{"Create Audience"}, batches[0])
		assert.Equal(t, vecs[0], vecs[1])
	})

	t.Run("collapses concurrent identical misses", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		release := make(chan struct{})
		next := &mock.Embedder{
			EmbedFn: func(_ context.Context, texts []string) ([][]float32, error) {
				calls.Add(1)
				<-release
				return [][]float32{{1}}, nil
			},
		}
		e := rank.NewCachingEmbedder(next, mapCache())

		var wg sync.WaitGroup
		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = e.Embed(context.Background(), []string{"same text"})
			}()
		}
		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.LessOrEqual(t, calls.Load(), int32(2))
	})

	t.Run("propagates embedder error without caching", func(t *testing.T) {
		t.Parallel()

		cache := mapCache()
		e := rank.NewCachingEmbedder(&mock.Embedder{
			EmbedFn: func(context.Context, []string) ([][]float32, error) {
				return nil, errors.New("quota exceeded")
			},
		}, cache)

		_, err := e.Embed(context.Background(), []string{"x"})
		require.ErrorContains(t, err, "quota exceeded")

		_, ok, _ := cache.GetEmbedding(context.Background(), rank.CacheKey("mock", "x"))
		assert.False(t, ok)
	})

	t.Run("propagates cache read error", func(t *testing.T) {
		t.Parallel()

		e := rank.NewCachingEmbedder(&mock.Embedder{}, &mock.EmbeddingCache{
			GetEmbeddingFn: func(context.Context, string) ([]float32, bool, error) {
				return nil, false, docask.Errorf(docask.EINTERNAL, "disk full")
			},
		})

		_, err := e.Embed(context.Background(), []string{"x"})
		assert.Equal(t, docask.EINTERNAL, docask.ErrorCode(err))
	})
}

func TestCacheKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, rank.CacheKey("m", "Hello  World"), rank.CacheKey("m", "hello world"))
	assert.NotEqual(t, rank.CacheKey("m1", "hello"), rank.CacheKey("m2", "hello"))
}

func TestLazyEmbedder(t *testing.T) {
	t.Parallel()

	t.Run("initializes once on first embed", func(t *testing.T) {
		t.Parallel()

		inits := 0
		l := rank.NewLazyEmbedder("model-x", func(context.Context) (docask.Embedder, error) {
			inits++
			return mock.VectorEmbedder(map[string][]float32{"a": {1}}), nil
		})

		assert.Equal(t, "model-x", l.Model())
		assert.Equal(t, 0, inits)

		_, err := l.Embed(context.Background(), []string{"a"})
		require.NoError(t, err)
		_, err = l.Embed(context.Background(), []string{"a"})
		require.NoError(t, err)

		assert.Equal(t, 1, inits)
	})

	t.Run("returns initialization error on every call", func(t *testing.T) {
		t.Parallel()

		l := rank.NewLazyEmbedder("model-x", func(context.Context) (docask.Embedder, error) {
			return nil, errors.New("no api key")
		})

		_, err := l.Embed(context.Background(), []string{"a"})
		require.ErrorContains(t, err, "no api key")
		_, err = l.Embed(context.Background(), []string{"a"})
		require.ErrorContains(t, err, "no api key")
	})
}
