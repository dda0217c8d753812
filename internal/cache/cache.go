// Package cache is a thin TTL cache over Redis. Entries expire on their own;
// there is no invalidation path because artifacts are immutable.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrCacheMiss reports an absent or expired key.
var ErrCacheMiss = errors.New("cache miss")

type Cache struct {
	redis  *redis.Client
	logger *zap.Logger
}

func New(client *redis.Client, logger *zap.Logger) *Cache {
	return &Cache{redis: client, logger: logger}
}

// NewFromURL connects to Redis and verifies the connection.
func NewFromURL(ctx context.Context, redisURL string, logger *zap.Logger) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return New(client, logger), nil
}

// Redis exposes the underlying client so other components (the rate limiter)
// can share the connection pool.
func (c *Cache) Redis() *redis.Client {
	return c.redis
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.redis.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache get failed: %w", err)
	}
	return val, nil
}

func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.redis.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set failed: %w", err)
	}
	return nil
}

// GetOrFetch returns the cached value for key, or runs fetch and caches its
// result with the given TTL. A cache write failure is logged but does not fail
// the call; the fetched value is still returned.
func (c *Cache) GetOrFetch(ctx context.Context, key string, ttl time.Duration, fetch func() ([]byte, error)) ([]byte, error) {
	val, err := c.Get(ctx, key)
	if err == nil {
		return val, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		c.logger.Warn("cache read failed, falling through to fetch", zap.String("key", key), zap.Error(err))
	}

	val, err = fetch()
	if err != nil {
		return nil, err
	}

	if err := c.Set(ctx, key, val, ttl); err != nil {
		c.logger.Warn("cache populate failed", zap.String("key", key), zap.Error(err))
	}

	return val, nil
}
