package storage

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var _ RateLimiter = (*RedisRateLimiter)(nil)

const rateLimitKeyPrefix = "wellness:ratelimit:"

//go:embed ratelimit.lua
var slidingWindowLua string

var slidingWindow = redis.NewScript(slidingWindowLua)

type RedisConfig struct {
	Client *redis.Client
}

// RedisRateLimiter allows limit requests per key within a sliding window,
// shared by every server instance using the same Redis.
type RedisRateLimiter struct {
	client redis.Scripter
	limit  int
	window time.Duration
}

func NewRedisRateLimiter(cfg RedisConfig, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: cfg.Client,
		limit:  limit,
		window: window,
	}
}

func (r *RedisRateLimiter) Allow(ctx context.Context, key string) (RateLimitResult, error) {
	// keys outlive the window by a second so the oldest entry is still there
	// to compute Retry-After from
	ttl := r.window + time.Second

	reply, err := slidingWindow.Run(ctx, r.client,
		[]string{rateLimitKeyPrefix + key},
		r.window.Milliseconds(), r.limit, int(ttl.Seconds()),
	).Int64Slice()
	if err != nil {
		return RateLimitResult{}, fmt.Errorf("failed to run rate limit script: %w", err)
	}
	if len(reply) != 3 {
		return RateLimitResult{}, fmt.Errorf("unexpected rate limit script reply: %v", reply)
	}

	result := RateLimitResult{
		Allowed:   reply[0] == 1,
		Limit:     r.limit,
		Remaining: int(max(reply[2], 0)),
	}
	if !result.Allowed {
		result.RetryAfter = time.Duration(reply[1]) * time.Millisecond
		if result.RetryAfter <= 0 {
			result.RetryAfter = r.window
		}
	}
	return result, nil
}
