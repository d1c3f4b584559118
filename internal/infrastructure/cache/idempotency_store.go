package cache

import (
	"context"
	"time"
)

// IdempotencyStore remembers request keys so a retried mutation is
// answered once. Reserve returns true only for the first caller of a
// key inside the TTL window.
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Seen(ctx context.Context, key string) (bool, error)
	Close() error
}
