package port

import "context"

// Embedder generates vector embeddings for text.
type Embedder interface {
	// Embed generates an embedding for the given text. Empty input is
	// allowed and produces a valid vector.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimension returns the embedding vector dimension.
	Dimension() int

	// ModelName returns the name of the embedding model.
	ModelName() string
}
