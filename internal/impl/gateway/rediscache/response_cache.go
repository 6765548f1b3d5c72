package gateway_rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	port_cache "github.com/PedroCamargo-dev/core-ledger-service/internal/ports/gateway/cache"
)

const keyPrefix = "idempotency:"

// ResponseCache stores replayable HTTP responses under idempotency
// keys. It sits in front of the transfers table's own deduplication, so
// a Redis outage only costs the fast path, never correctness.
type ResponseCache struct {
	client *redis.Client
}

func NewResponseCache(client *redis.Client) *ResponseCache {
	return &ResponseCache{client: client}
}

func (c *ResponseCache) Get(ctx context.Context, key string) (*port_cache.CachedResponse, error) {
	val, err := c.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cached response: %w", err)
	}

	var resp port_cache.CachedResponse
	if err := json.Unmarshal([]byte(val), &resp); err != nil {
		return nil, fmt.Errorf("unmarshal cached response: %w", err)
	}

	return &resp, nil
}

func (c *ResponseCache) Save(ctx context.Context, key string, response port_cache.CachedResponse, ttl time.Duration) error {
	raw, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("marshal cached response: %w", err)
	}

	return c.client.Set(ctx, keyPrefix+key, raw, ttl).Err()
}
