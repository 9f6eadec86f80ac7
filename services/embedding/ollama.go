package embedding

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms/ollama"
)

// OllamaEmbedder produces embeddings through a local Ollama server.
type OllamaEmbedder struct {
	llm   *ollama.LLM
	model string
	dim   int
}

// NewOllamaEmbedder connects to the Ollama server at baseURL and embeds with
// the given model.
func NewOllamaEmbedder(model, baseURL string, dim int) (*OllamaEmbedder, error) {
	llm, err := ollama.New(
		ollama.WithModel(model),
		ollama.WithServerURL(baseURL),
	)
	if err != nil {
		return nil, fmt.Errorf("initialize ollama embedder: %w", err)
	}
	return &OllamaEmbedder{llm: llm, model: model, dim: dim}, nil
}

func (e *OllamaEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return make([]float32, e.dim), nil
	}

	vectors, err := e.llm.CreateEmbedding(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("create embedding: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("empty embedding response for model %q", e.model)
	}
	return vectors[0], nil
}

func (e *OllamaEmbedder) Model() string {
	return e.model
}

func (e *OllamaEmbedder) Dim() int {
	return e.dim
}
