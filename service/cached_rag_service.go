package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"busbooking-backend/cache"
	"busbooking-backend/metrics"
	"busbooking-backend/models"
)

// Querier answers free-text queries
type Querier interface {
	Query(ctx context.Context, text string) (*models.Answer, error)
}

// AnswerCache stores answers by query text. Get returns cache.ErrMiss when absent.
type AnswerCache interface {
	Get(ctx context.Context, query string) (*models.Answer, error)
	Set(ctx context.Context, query string, answer *models.Answer) error
}

// CachedRAGService serves repeated queries from an answer cache.
// Cache failures are logged and fall through to the wrapped querier.
type CachedRAGService struct {
	next   Querier
	cache  AnswerCache
	logger *zap.Logger
}

// NewCachedRAGService wraps next with cache
func NewCachedRAGService(next Querier, cache AnswerCache, logger *zap.Logger) *CachedRAGService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedRAGService{next: next, cache: cache, logger: logger}
}

// Query returns the cached answer for text or computes and caches it.
// Degraded "error" answers are never cached.
func (s *CachedRAGService) Query(ctx context.Context, text string) (*models.Answer, error) {
	answer, err := s.cache.Get(ctx, text)
	switch {
	case err == nil:
		metrics.AnswerCache.WithLabelValues("hit").Inc()
		return answer, nil
	case errors.Is(err, cache.ErrMiss):
		metrics.AnswerCache.WithLabelValues("miss").Inc()
	default:
		metrics.AnswerCache.WithLabelValues("error").Inc()
		s.logger.Warn("answer cache read failed", zap.Error(err))
	}

	answer, err = s.next.Query(ctx, text)
	if err != nil {
		return nil, err
	}

	if answer.QueryType != models.QueryTypeError {
		if err := s.cache.Set(ctx, text, answer); err != nil {
			s.logger.Warn("answer cache write failed", zap.Error(err))
		}
	}
	return answer, nil
}
