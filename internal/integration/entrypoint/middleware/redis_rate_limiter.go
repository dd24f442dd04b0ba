package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "pesawise:ratelimit:"

// RedisRateLimiter is a fixed-window limiter shared across API instances.
type RedisRateLimiter struct {
	client         redis.UniversalClient
	maxAttempts    int64
	windowDuration time.Duration
}

// NewRedisRateLimiter creates a limiter backed by the given Redis client.
func NewRedisRateLimiter(client redis.UniversalClient, maxAttempts int, windowDuration time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		client:         client,
		maxAttempts:    int64(maxAttempts),
		windowDuration: windowDuration,
	}
}

// Allow counts the request and reports whether it fits the window.
// The window starts on the first request for the key.
func (rl *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := redisKeyPrefix + key

	count, err := rl.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit counter: %w", err)
	}

	if count == 1 {
		if err := rl.client.Expire(ctx, redisKey, rl.windowDuration).Err(); err != nil {
			return false, fmt.Errorf("rate limit window: %w", err)
		}
	}

	return count <= rl.maxAttempts, nil
}

// NewRedisClient parses a redis:// URL into a client.
func NewRedisClient(url, password string, db int) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	if db != 0 {
		opts.DB = db
	}
	return redis.NewClient(opts), nil
}
