// Package ratelimiter throttles requests with a token bucket per key.
//
// The API server uses it to slow down credential guessing on the login
// route, keyed by client IP:
//
//	b, _ := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), cfg)
//	r.With(ratelimiter.Middleware(b, ratelimiter.ByClientIP, reject)).Get("/connect", h)
//
// A denied request gets Retry-After and the X-RateLimit-* headers before the
// reject handler runs.
package ratelimiter
