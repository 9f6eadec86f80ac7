package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"idvault/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const embedCachePrefix = "embed:"

// CachedEmbedder decorates an Embedder with a Redis cache keyed by model and
// text hash. Cache failures fall through to the inner embedder.
type CachedEmbedder struct {
	inner  Embedder
	client *redis.Client
	ttl    time.Duration
}

// NewCachedEmbedder wraps inner with a Redis cache.
func NewCachedEmbedder(inner Embedder, client *redis.Client, ttl time.Duration) *CachedEmbedder {
	return &CachedEmbedder{inner: inner, client: client, ttl: ttl}
}

func (e *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	key := e.cacheKey(text)

	data, err := e.client.Get(ctx, key).Result()
	if err == nil {
		var vec []float32
		if jsonErr := json.Unmarshal([]byte(data), &vec); jsonErr == nil {
			return vec, nil
		}
	} else if err != redis.Nil {
		utils.GetLogger().Warn("embedding cache read failed", zap.Error(err))
	}

	vec, err := e.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if b, jsonErr := json.Marshal(vec); jsonErr == nil {
		if setErr := e.client.Set(ctx, key, b, e.ttl).Err(); setErr != nil {
			utils.GetLogger().Warn("embedding cache write failed", zap.Error(setErr))
		}
	}
	return vec, nil
}

func (e *CachedEmbedder) Model() string {
	return e.inner.Model()
}

func (e *CachedEmbedder) Dim() int {
	return e.inner.Dim()
}

func (e *CachedEmbedder) cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return embedCachePrefix + e.inner.Model() + ":" + hex.EncodeToString(sum[:16])
}
