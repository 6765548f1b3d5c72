package port_cache

import (
	"context"
	"time"
)

// CachedResponse is a replayable HTTP outcome stored under an
// idempotency key.
type CachedResponse struct {
	StatusCode int
	Body       []byte
}

type ResponseCache interface {
	// Get returns the cached response, or nil on a miss.
	Get(ctx context.Context, key string) (*CachedResponse, error)
	Save(ctx context.Context, key string, response CachedResponse, ttl time.Duration) error
}
