package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
)

// HashEmbedder is a deterministic character-trigram embedder used when no
// embedding server is configured. It keeps the service fully functional
// offline: identical strings embed identically (similarity 1.0) and strings
// sharing trigrams land near each other.
type HashEmbedder struct {
	dim int
}

// NewHashEmbedder returns a trigram hash embedder with the given dimension.
func NewHashEmbedder(dim int) *HashEmbedder {
	if dim <= 0 {
		dim = 384
	}
	return &HashEmbedder{dim: dim}
}

func (e *HashEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vec := make([]float32, e.dim)

	text = strings.ToLower(strings.Join(strings.Fields(text), " "))
	if text == "" {
		return vec, nil
	}

	runes := []rune(" " + text + " ")
	for i := 0; i+3 <= len(runes); i++ {
		h := fnv.New32a()
		h.Write([]byte(string(runes[i : i+3])))
		vec[h.Sum32()%uint32(e.dim)]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}
	return vec, nil
}

func (e *HashEmbedder) Model() string {
	return "trigram-hash"
}

func (e *HashEmbedder) Dim() int {
	return e.dim
}
