package retrieval

import (
	"context"
	"fmt"

	"busbooking-backend/embedding"
	"busbooking-backend/models"
)

// VectorSearcher runs a nearest-neighbour query over stored embeddings
type VectorSearcher interface {
	SearchByEmbedding(ctx context.Context, embedding []float64, provider string, limit int) ([]models.ScoredDocument, error)
}

// PgVectorRetriever embeds queries and searches the provider_documents table
type PgVectorRetriever struct {
	embedder embedding.Embedder
	searcher VectorSearcher
}

// NewPgVectorRetriever creates a retriever over a pgvector-backed searcher
func NewPgVectorRetriever(embedder embedding.Embedder, searcher VectorSearcher) *PgVectorRetriever {
	return &PgVectorRetriever{embedder: embedder, searcher: searcher}
}

// SemanticSearch returns up to k documents nearest to query
func (r *PgVectorRetriever) SemanticSearch(ctx context.Context, query, providerFilter string, k int) ([]models.ScoredDocument, error) {
	vector, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	docs, err := r.searcher.SearchByEmbedding(ctx, vector, providerFilter, k)
	if err != nil {
		return nil, err
	}
	return docs, nil
}
