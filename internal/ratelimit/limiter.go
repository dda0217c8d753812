// Package ratelimit bounds request admission per client identity with fixed
// window counters kept in Redis, so the limit holds across server replicas.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Window is the fixed admission window. Counters reset on window rollover,
// not on a sliding horizon.
const Window = time.Minute

type Limiter struct {
	redis *redis.Client
	now   func() time.Time
}

func NewLimiter(client *redis.Client) *Limiter {
	return NewLimiterWithClock(client, time.Now)
}

// NewLimiterWithClock fixes the limiter's clock; tests use it to step across
// window boundaries without sleeping.
func NewLimiterWithClock(client *redis.Client, now func() time.Time) *Limiter {
	return &Limiter{redis: client, now: now}
}

// Allow reports whether the identity may admit another request under the
// given per-window limit. The counter increment and its expiry run in one
// pipeline, so concurrent requests observe atomic counts.
//
// Admission control runs before any paid downstream call; a denied request
// never reaches the text or image models.
func (l *Limiter) Allow(ctx context.Context, identity string, limit int) (bool, error) {
	window := l.now().Unix() / int64(Window.Seconds())
	key := fmt.Sprintf("ratelimit:%s:%d", identity, window)

	pipe := l.redis.TxPipeline()
	incr := pipe.Incr(ctx, key)
	// Expire a little past the window so a rolled-over counter lingers for
	// inspection instead of vanishing at the boundary.
	pipe.Expire(ctx, key, Window+time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit check failed: %w", err)
	}

	return incr.Val() <= int64(limit), nil
}
