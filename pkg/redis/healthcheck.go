package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// probeTimeout bounds a single liveness ping.
const probeTimeout = 2 * time.Second

// Healthcheck returns the cache liveness probe reported by GET /status.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, probeTimeout)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrNotAlive, err)
		}
		return nil
	}
}
