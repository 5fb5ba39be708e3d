package retrieval

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"busbooking-backend/embedding"
	"busbooking-backend/models"
)

// MemoryIndex is an in-process vector index over provider documents using
// brute-force cosine similarity. Distance is reported as 1 - cosine.
type MemoryIndex struct {
	embedder embedding.Embedder

	mu      sync.RWMutex
	docs    []models.ProviderDocument
	vectors [][]float64
}

// NewMemoryIndex embeds docs once and returns a ready index.
// Embedders that implement embedding.Preparer are prepared with the document corpus first.
func NewMemoryIndex(ctx context.Context, embedder embedding.Embedder, docs []models.ProviderDocument) (*MemoryIndex, error) {
	idx := &MemoryIndex{embedder: embedder}
	if err := idx.Index(ctx, docs); err != nil {
		return nil, err
	}
	return idx, nil
}

// Index replaces the indexed documents
func (m *MemoryIndex) Index(ctx context.Context, docs []models.ProviderDocument) error {
	if len(docs) == 0 {
		return errors.New("no provider documents to index")
	}

	corpus := make([]string, 0, len(docs))
	for _, d := range docs {
		corpus = append(corpus, d.Content)
	}

	if p, ok := m.embedder.(embedding.Preparer); ok {
		if err := p.Prepare(corpus); err != nil {
			return fmt.Errorf("failed to prepare embedder: %w", err)
		}
	}

	vectors, err := m.embedder.EmbedDocuments(ctx, corpus)
	if err != nil {
		return fmt.Errorf("failed to embed provider documents: %w", err)
	}
	if len(vectors) != len(docs) {
		return errors.New("documents and vectors length mismatch")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = append([]models.ProviderDocument(nil), docs...)
	m.vectors = vectors
	return nil
}

// Len returns the number of indexed documents
func (m *MemoryIndex) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}

// SemanticSearch returns up to k documents nearest to query, optionally
// restricted to one provider (case-insensitive). Results are ordered by
// increasing distance.
func (m *MemoryIndex) SemanticSearch(ctx context.Context, query, providerFilter string, k int) ([]models.ScoredDocument, error) {
	vector, err := m.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var hits []models.ScoredDocument
	for i, doc := range m.docs {
		if providerFilter != "" && !strings.EqualFold(doc.Provider, providerFilter) {
			continue
		}
		hits = append(hits, models.ScoredDocument{
			ProviderDocument: doc,
			Distance:         1 - cosine(m.vectors[i], vector),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	if k > 0 && len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

func cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
