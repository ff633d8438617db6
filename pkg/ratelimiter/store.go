package ratelimiter

import (
	"context"
	"time"
)

// Store keeps bucket state. A negative remaining count means the take was
// refused; the tokens are still deducted so a client that keeps hammering
// stays locked out.
type Store interface {
	ConsumeTokens(ctx context.Context, key string, tokens int, config Config) (remaining int, resetAt time.Time, err error)
	Reset(ctx context.Context, key string) error
}
