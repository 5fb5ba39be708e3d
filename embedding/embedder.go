package embedding

import "context"

// Embedder turns text into dense vectors.
// Queries and documents may be embedded differently by the backend.
type Embedder interface {
	// EmbedQuery embeds a search query
	EmbedQuery(ctx context.Context, text string) ([]float64, error)

	// EmbedDocuments embeds a batch of documents, one vector per input in order
	EmbedDocuments(ctx context.Context, texts []string) ([][]float64, error)

	// Dimension returns the length of produced vectors
	Dimension() int
}

// Preparer is implemented by embedders that must see the corpus before use
type Preparer interface {
	Prepare(corpus []string) error
}
