package embedding

import "context"

// Embedder turns text into a fixed-length vector. Implementations must be
// stable: the same input always yields the same output within a deployment.
type Embedder interface {
	// Embed returns the vector for text. Empty text yields a zero vector.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Model identifies the embedding model. Vectors produced by different
	// models must not be compared.
	Model() string

	// Dim is the vector dimension.
	Dim() int
}
