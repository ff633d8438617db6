// Package redis wraps github.com/redis/go-redis/v9 connection setup, health
// probing and a minimal byte-oriented Storage used for session tokens.
package redis
