package repository

import (
	"context"
	"fmt"
	"strings"

	"busbooking-backend/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ProviderDocumentRepository handles database operations for embedded provider documents
type ProviderDocumentRepository struct {
	db        *pgxpool.Pool
	dimension int
}

// NewProviderDocumentRepository creates a new provider document repository.
// dimension is the size of the embedding column.
func NewProviderDocumentRepository(db *pgxpool.Pool, dimension int) *ProviderDocumentRepository {
	return &ProviderDocumentRepository{db: db, dimension: dimension}
}

// formatVector formats an embedding vector as a string for pgx
func formatVector(embedding []float64) string {
	if len(embedding) == 0 {
		return "[]"
	}
	parts := make([]string, 0, len(embedding))
	for _, v := range embedding {
		parts = append(parts, fmt.Sprintf("%.6f", v))
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func (r *ProviderDocumentRepository) checkDimension(embedding []float64) error {
	if len(embedding) != r.dimension {
		return fmt.Errorf("embedding must be %d dimensions, got %d", r.dimension, len(embedding))
	}
	return nil
}

// Upsert stores a document and its embedding, replacing any row with the same source
func (r *ProviderDocumentRepository) Upsert(ctx context.Context, doc *models.StoredProviderDocument) error {
	if err := r.checkDimension(doc.Embedding); err != nil {
		return err
	}

	query := `
		INSERT INTO provider_documents (provider, source, content, embedding)
		VALUES ($1, $2, $3, $4::vector)
		ON CONFLICT (source) DO UPDATE SET
			provider = EXCLUDED.provider,
			content = EXCLUDED.content,
			embedding = EXCLUDED.embedding,
			updated_at = NOW()
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		doc.Provider,
		doc.Source,
		doc.Content,
		formatVector(doc.Embedding),
	).Scan(&doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert provider document %s: %w", doc.Source, err)
	}

	return nil
}

// ExistsBySource reports whether a document with the given source is already stored
func (r *ProviderDocumentRepository) ExistsBySource(ctx context.Context, source string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM provider_documents WHERE source = $1)",
		source,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check provider document: %w", err)
	}
	return exists, nil
}

// SearchByEmbedding performs a cosine vector search over provider documents
// embedding: Query embedding vector
// provider: Optional provider filter, empty means all providers
// limit: Maximum number of documents to return
func (r *ProviderDocumentRepository) SearchByEmbedding(
	ctx context.Context,
	embedding []float64,
	provider string,
	limit int,
) ([]models.ScoredDocument, error) {
	if err := r.checkDimension(embedding); err != nil {
		return nil, err
	}

	vectorStr := formatVector(embedding)

	var providerFilter string
	var args []interface{}
	if provider == "" {
		providerFilter = "TRUE"
		args = []interface{}{vectorStr, limit}
	} else {
		providerFilter = "LOWER(provider) = LOWER($2)"
		args = []interface{}{vectorStr, provider, limit}
	}

	query := fmt.Sprintf(`
		SELECT
			provider,
			source,
			content,
			embedding <=> $1::vector AS distance
		FROM provider_documents
		WHERE %s
		ORDER BY
			embedding <=> $1::vector
		LIMIT $%d`, providerFilter, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query provider documents: %w", err)
	}
	defer rows.Close()

	var docs []models.ScoredDocument
	for rows.Next() {
		var doc models.ScoredDocument
		err := rows.Scan(
			&doc.Provider,
			&doc.Source,
			&doc.Content,
			&doc.Distance,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan provider document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating provider documents: %w", err)
	}

	return docs, nil
}
