package session

import "time"

// Config holds session settings.
type Config struct {
	// TTL is fixed at issue time and never refreshed by use.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"24h" validate:"gt=0"`

	// KeyPrefix namespaces tokens in the store: <prefix><token>.
	KeyPrefix string `env:"SESSION_KEY_PREFIX" envDefault:"auth_"`

	// HeaderName carries the raw token on authenticated requests.
	HeaderName string `env:"SESSION_HEADER" envDefault:"X-Token" validate:"required"`
}

func DefaultConfig() Config {
	return Config{
		TTL:        24 * time.Hour,
		KeyPrefix:  "auth_",
		HeaderName: "X-Token",
	}
}
