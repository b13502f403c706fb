package ports

import "context"

// Embedder turns texts into vectors for semantic similarity. Implementations
// are runtime-constructible capabilities: construction may fail (missing API
// key, unreachable model) and callers treat a missing embedder the same as a
// scorer that found nothing.
type Embedder interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}
