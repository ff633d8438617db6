package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/filesmanager/pkg/clientip"
	"github.com/dmitrymomot/filesmanager/pkg/config"
	"github.com/dmitrymomot/filesmanager/pkg/email"
	"github.com/dmitrymomot/filesmanager/pkg/file"
	"github.com/dmitrymomot/filesmanager/pkg/httpserver"
	"github.com/dmitrymomot/filesmanager/pkg/logger"
	"github.com/dmitrymomot/filesmanager/pkg/mongo"
	"github.com/dmitrymomot/filesmanager/pkg/queue"
	"github.com/dmitrymomot/filesmanager/pkg/ratelimiter"
	"github.com/dmitrymomot/filesmanager/pkg/redis"
	"github.com/dmitrymomot/filesmanager/pkg/requestid"
	"github.com/dmitrymomot/filesmanager/pkg/session"
)

// Config aggregates every package configuration. Nested structs read their
// own variables without a prefix.
type Config struct {
	Env          string `env:"APP_ENV" envDefault:"development" validate:"oneof=development staging production"`
	ServiceName  string `env:"APP_NAME" envDefault:"files-manager" validate:"required"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	WorkerInline bool   `env:"WORKER_INLINE" envDefault:"false"`
	BcryptCost   int    `env:"BCRYPT_COST" envDefault:"10" validate:"min=4,max=31"`

	// TrustedProxies lists the CIDRs or addresses whose forwarding headers
	// are believed. Empty means clients connect directly.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	HTTP       httpserver.Config
	Mongo      mongo.Config
	Redis      redis.Config
	Queue      queue.Config
	Session    session.Config
	Storage    file.Config
	Email      email.Config
	LoginLimit ratelimiter.Config
}

// LoadConfig reads and validates Config from the environment and the
// optional .env file.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// NewLogger builds the process logger: JSON outside development, with the
// request id and client address pulled from the context of every record.
func NewLogger(cfg Config, component string) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	return logger.New(
		logger.WithEnvironment(cfg.Env, cfg.ServiceName),
		logger.WithLevel(level),
		logger.WithAttr(logger.Component(component)),
		logger.WithContextExtractors(requestid.LogExtractor, clientip.LogExtractor),
	)
}
