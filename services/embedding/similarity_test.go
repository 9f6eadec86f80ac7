package embedding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float32{1, 2, 3}, []float32{1, 2, 3}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)

	// Negative similarity is floored to 0.
	assert.Equal(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{-1, 0}))

	// Zero-norm and mismatched vectors score 0.
	assert.Equal(t, 0.0, CosineSimilarity([]float32{0, 0}, []float32{1, 1}))
	assert.Equal(t, 0.0, CosineSimilarity([]float32{1}, []float32{1, 2}))
	assert.Equal(t, 0.0, CosineSimilarity(nil, nil))
}

func TestHashEmbedderDeterministic(t *testing.T) {
	e := NewHashEmbedder(128)
	ctx := context.Background()

	a, err := e.Embed(ctx, "John Doe")
	require.NoError(t, err)
	b, err := e.Embed(ctx, "john doe")
	require.NoError(t, err)

	require.Len(t, a, 128)
	// Case and whitespace insensitive: identical after normalization.
	assert.InDelta(t, 1.0, CosineSimilarity(a, b), 1e-6)
}

func TestHashEmbedderEmptyText(t *testing.T) {
	e := NewHashEmbedder(64)
	vec, err := e.Embed(context.Background(), "   ")
	require.NoError(t, err)
	require.Len(t, vec, 64)
	for _, v := range vec {
		assert.Zero(t, v)
	}
}

func TestHashEmbedderDistinctTexts(t *testing.T) {
	e := NewHashEmbedder(384)
	ctx := context.Background()

	a, _ := e.Embed(ctx, "John Doe")
	b, _ := e.Embed(ctx, "Wolfgang Amadeus Mozart")
	sim := CosineSimilarity(a, b)
	assert.Less(t, sim, 0.5)
}
