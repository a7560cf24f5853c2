package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RateLimiter decides whether a request identified by key may proceed.
// Allow returns the decision, the remaining budget in the current window,
// and the time at which the window resets.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, int, time.Time, error)
}

// RedisRateLimiter is a fixed-window counter backed by Redis, shared across
// API instances.
type RedisRateLimiter struct {
	client      *redis.Client
	window      time.Duration
	maxAttempts int64
}

const rateLimitKeyPrefix = "printercare:ratelimit:"

// NewRedisRateLimiter creates a limiter allowing maxAttempts per window.
func NewRedisRateLimiter(client *redis.Client, window time.Duration, maxAttempts int64) *RedisRateLimiter {
	return &RedisRateLimiter{
		client:      client,
		window:      window,
		maxAttempts: maxAttempts,
	}
}

// Allow increments the counter for key and reports whether the request fits
// inside the current window.
func (rl *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, int, time.Time, error) {
	redisKey := rateLimitKeyPrefix + key
	windowStart := time.Now().Truncate(rl.window)
	resetTime := windowStart.Add(rl.window)

	pipe := rl.client.Pipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireAt(ctx, redisKey, resetTime)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, fmt.Errorf("rate limiter error: %w", err)
	}

	count := incr.Val()
	remaining := rl.maxAttempts - count
	if remaining < 0 {
		remaining = 0
	}

	return count <= rl.maxAttempts, int(remaining), resetTime, nil
}
