package session

import (
	"context"
	"time"
)

// Store is the key-value cache sessions live in. Get returns nil without an
// error when the key is missing or expired. pkg/redis.Storage satisfies it.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
