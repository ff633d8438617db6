package mongo

import (
	"fmt"
	"time"
)

// Config describes how to reach the document store.
// ConnectionURL, when set, takes precedence over Host and Port.
type Config struct {
	Host            string        `env:"DB_HOST" envDefault:"localhost"`
	Port            int           `env:"DB_PORT" envDefault:"27017" validate:"min=1,max=65535"`
	Database        string        `env:"DB_DATABASE" envDefault:"files_manager" validate:"required"`
	ConnectionURL   string        `env:"MONGODB_URL"`
	ConnectTimeout  time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`
	MaxPoolSize     uint64        `env:"MONGODB_MAX_POOL_SIZE" envDefault:"100"`
	MinPoolSize     uint64        `env:"MONGODB_MIN_POOL_SIZE" envDefault:"1"`
	MaxConnIdleTime time.Duration `env:"MONGODB_MAX_CONN_IDLE_TIME" envDefault:"300s"`
	RetryAttempts   int           `env:"MONGODB_RETRY_ATTEMPTS" envDefault:"3" validate:"min=1"`
	RetryInterval   time.Duration `env:"MONGODB_RETRY_INTERVAL" envDefault:"5s"`
}

// URI returns the connection string used by New.
func (c Config) URI() string {
	if c.ConnectionURL != "" {
		return c.ConnectionURL
	}
	return fmt.Sprintf("mongodb://%s:%d", c.Host, c.Port)
}
