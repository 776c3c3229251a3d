package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"math"
	"time"

	"github.com/fwojciec/docask"
)

var _ docask.EmbeddingCache = (*EmbeddingCache)(nil)

// EmbeddingCache persists embedding vectors as little-endian float32 blobs.
type EmbeddingCache struct {
	db *DB
}

// NewEmbeddingCache creates a new EmbeddingCache.
func NewEmbeddingCache(db *DB) *EmbeddingCache {
	return &EmbeddingCache{db: db}
}

// GetEmbedding returns the stored vector for key.
func (c *EmbeddingCache) GetEmbedding(ctx context.Context, key string) ([]float32, bool, error) {
	var dims int
	var blob []byte
	err := c.db.QueryRowContext(ctx, "SELECT dims, vector FROM embeddings WHERE key = ?", key).Scan(&dims, &blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if len(blob) != dims*4 {
		return nil, false, docask.Errorf(docask.EINTERNAL, "corrupt embedding for key %s", key)
	}
	return decodeVector(blob), true, nil
}

// PutEmbedding stores vec under key, replacing any previous vector.
func (c *EmbeddingCache) PutEmbedding(ctx context.Context, key string, vec []float32) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO embeddings (key, dims, vector, created_at)
		VALUES (?, ?, ?, ?)
	`, key, len(vec), encodeVector(vec), formatTime(time.Now()))
	return err
}

func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}

func decodeVector(buf []byte) []float32 {
	vec := make([]float32, len(buf)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return vec
}
