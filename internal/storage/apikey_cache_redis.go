package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

var _ APIKeyCache = (*RedisAPIKeyCache)(nil)

const apiKeyCacheKeyPrefix = "wellness:apikey:"

type RedisAPIKeyCache struct {
	client *redis.Client
}

func NewRedisAPIKeyCache(cfg RedisConfig) *RedisAPIKeyCache {
	return &RedisAPIKeyCache{client: cfg.Client}
}

func (c *RedisAPIKeyCache) Get(ctx context.Context, keyHash string) (CachedAPIKey, error) {
	data, err := c.client.Get(ctx, apiKeyCacheKeyPrefix+keyHash).Bytes()
	if errors.Is(err, redis.Nil) {
		return CachedAPIKey{}, ErrNotFound
	}
	if err != nil {
		return CachedAPIKey{}, fmt.Errorf("failed to get cached api key: %w", err)
	}

	var key CachedAPIKey
	if err := go_json.Unmarshal(data, &key); err != nil {
		return CachedAPIKey{}, fmt.Errorf("failed to unmarshal cached api key: %w", err)
	}
	return key, nil
}

func (c *RedisAPIKeyCache) Set(ctx context.Context, keyHash string, key CachedAPIKey, ttl time.Duration) error {
	data, err := go_json.Marshal(key)
	if err != nil {
		return fmt.Errorf("failed to marshal cached api key: %w", err)
	}
	if err := c.client.Set(ctx, apiKeyCacheKeyPrefix+keyHash, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache api key: %w", err)
	}
	return nil
}

func (c *RedisAPIKeyCache) Delete(ctx context.Context, keyHash string) error {
	return c.client.Del(ctx, apiKeyCacheKeyPrefix+keyHash).Err()
}
