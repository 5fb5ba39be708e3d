package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"busbooking-backend/cache"
	"busbooking-backend/models"
)

type countingQuerier struct {
	calls  atomic.Int32
	answer *models.Answer
	err    error
}

func (q *countingQuerier) Query(ctx context.Context, text string) (*models.Answer, error) {
	q.calls.Add(1)
	return q.answer, q.err
}

func newRedisCache(t *testing.T) (*cache.RedisAnswerCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return cache.NewRedisAnswerCache(client, time.Minute), mr
}

func TestCachedRAGService_ServesRepeatsFromCache(t *testing.T) {
	answerCache, _ := newRedisCache(t)
	next := &countingQuerier{answer: &models.Answer{Answer: "help", QueryType: models.QueryTypeHelp}}
	svc := NewCachedRAGService(next, answerCache, zaptest.NewLogger(t))
	ctx := context.Background()

	first, err := svc.Query(ctx, "What can you do?")
	require.NoError(t, err)
	second, err := svc.Query(ctx, "what can you do?")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), next.calls.Load())
}

func TestCachedRAGService_SkipsErrorAnswers(t *testing.T) {
	answerCache, _ := newRedisCache(t)
	next := &countingQuerier{answer: retrievalErrorAnswer()}
	svc := NewCachedRAGService(next, answerCache, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		answer, err := svc.Query(ctx, "hanif phone")
		require.NoError(t, err)
		assert.Equal(t, models.QueryTypeError, answer.QueryType)
	}
	assert.Equal(t, int32(2), next.calls.Load())
}

func TestCachedRAGService_PropagatesQueryErrors(t *testing.T) {
	answerCache, _ := newRedisCache(t)
	next := &countingQuerier{err: ErrQueryTooShort}
	svc := NewCachedRAGService(next, answerCache, nil)

	_, err := svc.Query(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrQueryTooShort)
}

func TestCachedRAGService_CacheOutageFallsThrough(t *testing.T) {
	answerCache, mr := newRedisCache(t)
	mr.Close()

	next := &countingQuerier{answer: &models.Answer{Answer: "ok", QueryType: models.QueryTypeHelp}}
	svc := NewCachedRAGService(next, answerCache, zaptest.NewLogger(t))

	answer, err := svc.Query(context.Background(), "what can you do")
	require.NoError(t, err)
	assert.Equal(t, "ok", answer.Answer)
}

func TestCachedRAGService_WithRAGService(t *testing.T) {
	answerCache, _ := newRedisCache(t)
	searcher := &fakeSearcher{docs: []models.ScoredDocument{scored("Green Line", greenLineDoc, 0.2)}}
	svc := NewCachedRAGService(newTestRAGService(t, searcher), answerCache, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		answer, err := svc.Query(ctx, "green line phone")
		require.NoError(t, err)
		assert.Equal(t, models.QueryTypeProviderInfo, answer.QueryType)
	}
	assert.Equal(t, 1, searcher.callCount())
}

