package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"busbooking-backend/config"
	"busbooking-backend/models"
)

const keyPrefix = "rag:answer:"

// ErrMiss is returned by Get when no answer is cached for the query
var ErrMiss = errors.New("cache miss")

// RedisAnswerCache stores rendered answers in Redis keyed by normalized query text
type RedisAnswerCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient creates a Redis client from configuration
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
}

// NewRedisAnswerCache wraps an existing client
func NewRedisAnswerCache(client *redis.Client, ttl time.Duration) *RedisAnswerCache {
	return &RedisAnswerCache{client: client, ttl: ttl}
}

// Ping tests the Redis connection
func (c *RedisAnswerCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Get returns the cached answer for query or ErrMiss
func (c *RedisAnswerCache) Get(ctx context.Context, query string) (*models.Answer, error) {
	raw, err := c.client.Get(ctx, Key(query)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var answer models.Answer
	if err := json.Unmarshal(raw, &answer); err != nil {
		return nil, fmt.Errorf("failed to decode cached answer: %w", err)
	}
	return &answer, nil
}

// Set stores answer under query with the configured TTL
func (c *RedisAnswerCache) Set(ctx context.Context, query string, answer *models.Answer) error {
	raw, err := json.Marshal(answer)
	if err != nil {
		return fmt.Errorf("failed to encode answer: %w", err)
	}
	if err := c.client.Set(ctx, Key(query), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (c *RedisAnswerCache) Close() error {
	return c.client.Close()
}

// Key derives the cache key for a query. Queries differing only in case or
// surrounding whitespace share a key.
func Key(query string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(query))))
	return keyPrefix + hex.EncodeToString(sum[:])
}
