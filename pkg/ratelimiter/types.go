package ratelimiter

import "time"

// Result is the outcome of a single take from a bucket.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Allowed reports whether the take fit in the bucket.
func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter is zero for allowed results.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(time.Until(r.ResetAt), 0)
}

// Config sizes a bucket: Capacity is the burst, RefillRate tokens come back
// every RefillInterval.
type Config struct {
	Enabled        bool          `env:"LOGIN_RATE_LIMIT_ENABLED" envDefault:"true"`
	Capacity       int           `env:"LOGIN_RATE_LIMIT_BURST" envDefault:"10" validate:"min=1"`
	RefillRate     int           `env:"LOGIN_RATE_LIMIT_REFILL" envDefault:"1" validate:"min=1"`
	RefillInterval time.Duration `env:"LOGIN_RATE_LIMIT_INTERVAL" envDefault:"6s"`
}
