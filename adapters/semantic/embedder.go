package semantic

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// OpenAIEmbedder produces text embeddings through the OpenAI API. It
// implements ports.Embedder.
type OpenAIEmbedder struct {
	client openai.Client
	model  openai.EmbeddingModel
}

// NewOpenAIEmbedder builds an embedder around the given API key.
func NewOpenAIEmbedder(apiKey string) *OpenAIEmbedder {
	return &OpenAIEmbedder{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  openai.EmbeddingModelTextEmbedding3Small,
	}
}

// Embed returns one vector per input text, in input order.
func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: e.model,
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: sent %d texts, got %d vectors", len(texts), len(resp.Data))
	}

	vectors := make([][]float64, len(resp.Data))
	for i, item := range resp.Data {
		vectors[i] = item.Embedding
	}
	return vectors, nil
}

// MockEmbedder serves canned vectors keyed by input text. Unknown texts get
// a zero vector so similarity against them is zero.
type MockEmbedder struct {
	Vectors map[string][]float64
	Dim     int
	Err     error
}

// Embed returns the canned vector for each text.
func (m *MockEmbedder) Embed(_ context.Context, texts []string) ([][]float64, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([][]float64, len(texts))
	for i, text := range texts {
		if v, ok := m.Vectors[text]; ok {
			out[i] = v
		} else {
			out[i] = make([]float64, m.Dim)
		}
	}
	return out, nil
}
