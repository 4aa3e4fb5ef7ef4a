package similarity

import "context"

// Embedder generates vector embeddings for text.
//
// Implementations can use different providers (HTTP APIs, BM25) while
// maintaining a consistent interface. All providers support batch
// operations natively, following OpenAI API patterns.
type Embedder interface {
	// Generate creates embeddings for the given texts. For a single
	// text, pass a slice with one element.
	Generate(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the dimensionality of embeddings produced by
	// this embedder.
	Dimensions() int

	// Model returns the model identifier used by this embedder.
	Model() string

	// Close releases any resources held by the embedder.
	Close() error
}
