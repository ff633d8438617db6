package session

import "log/slog"

type Option func(*Manager)

// WithConfig replaces the configuration. Zero fields keep their defaults.
func WithConfig(cfg Config) Option {
	return func(m *Manager) {
		def := DefaultConfig()
		if cfg.TTL <= 0 {
			cfg.TTL = def.TTL
		}
		if cfg.HeaderName == "" {
			cfg.HeaderName = def.HeaderName
		}
		m.config = cfg
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithTokenGenerator replaces the UUIDv4 token source.
func WithTokenGenerator(fn func() (string, error)) Option {
	return func(m *Manager) {
		if fn != nil {
			m.newToken = fn
		}
	}
}
