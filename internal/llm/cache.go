// Copyright (c) 2026 Halunder Corpus Project. All rights reserved.

package llm

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/halunder/corpus/internal/platform/constants"
)

// cacheTTL keeps completions around long enough to cover a re-submitted page
// without letting the cache grow unbounded.
const cacheTTL = 24 * time.Hour

// RedisCache implements [Cache] on top of a shared Redis client.
//
// # Failure Policy
//
// Cache errors are swallowed: a broken cache must never make a completion
// call fail, it only makes it slower.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a Redis-backed completion cache.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get returns the cached completion for key, if present.
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	value, err := c.client.Get(ctx, constants.RedisPrefixLLMResponse+key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			// Connectivity problems are not worth failing a pipeline over.
			return "", false
		}
		return "", false
	}
	return value, true
}

// Set stores a completion under key with the standard TTL.
func (c *RedisCache) Set(ctx context.Context, key, value string) {
	_ = c.client.Set(ctx, constants.RedisPrefixLLMResponse+key, value, cacheTTL).Err()
}
