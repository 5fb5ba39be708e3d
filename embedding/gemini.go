package embedding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	maxRetries     = 3
	initialBackoff = time.Second
)

// ErrEmptyEmbedding is returned when the API answers without vector values
var ErrEmptyEmbedding = errors.New("empty embedding returned")

// GeminiEmbedder embeds text with a Gemini embedding model
type GeminiEmbedder struct {
	client    *genai.Client
	query     *genai.EmbeddingModel
	document  *genai.EmbeddingModel
	dimension int
}

// NewGeminiEmbedder creates an embedder backed by its own Gemini client
func NewGeminiEmbedder(ctx context.Context, apiKey, model string, dimension int) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return NewGeminiEmbedderWithClient(client, model, dimension), nil
}

// NewGeminiEmbedderWithClient creates an embedder from an existing client
func NewGeminiEmbedderWithClient(client *genai.Client, model string, dimension int) *GeminiEmbedder {
	query := client.EmbeddingModel(model)
	query.TaskType = genai.TaskTypeRetrievalQuery

	document := client.EmbeddingModel(model)
	document.TaskType = genai.TaskTypeRetrievalDocument

	return &GeminiEmbedder{
		client:    client,
		query:     query,
		document:  document,
		dimension: dimension,
	}
}

// Dimension returns the configured vector length
func (e *GeminiEmbedder) Dimension() int { return e.dimension }

// EmbedQuery embeds a search query
func (e *GeminiEmbedder) EmbedQuery(ctx context.Context, text string) ([]float64, error) {
	var res *genai.EmbedContentResponse
	err := withRetry(ctx, func() error {
		var err error
		res, err = e.query.EmbedContent(ctx, genai.Text(text))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, ErrEmptyEmbedding
	}
	return toFloat64(res.Embedding.Values), nil
}

// EmbedDocuments embeds documents in a single batch request
func (e *GeminiEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	batch := e.document.NewBatch()
	for _, text := range texts {
		batch.AddContent(genai.Text(text))
	}

	var res *genai.BatchEmbedContentsResponse
	err := withRetry(ctx, func() error {
		var err error
		res, err = e.document.BatchEmbedContents(ctx, batch)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to embed documents: %w", err)
	}
	if len(res.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(res.Embeddings))
	}

	vectors := make([][]float64, 0, len(res.Embeddings))
	for _, emb := range res.Embeddings {
		if emb == nil || len(emb.Values) == 0 {
			return nil, ErrEmptyEmbedding
		}
		vectors = append(vectors, toFloat64(emb.Values))
	}
	return vectors, nil
}

// Close releases the underlying client
func (e *GeminiEmbedder) Close() error {
	return e.client.Close()
}

// withRetry retries transient API failures with exponential backoff
func withRetry(ctx context.Context, fn func() error) error {
	return retry.Do(fn,
		retry.Context(ctx),
		retry.Attempts(maxRetries),
		retry.Delay(initialBackoff),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
	)
}

// Don't retry on bad requests or auth failures
func isRetryable(err error) bool {
	switch status.Code(err) {
	case codes.InvalidArgument, codes.Unauthenticated, codes.PermissionDenied:
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func toFloat64(values []float32) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}
