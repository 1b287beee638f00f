package redis

import "time"

// Config describes how to reach Redis. An empty ConnectionURL disables
// Redis-backed components.
type Config struct {
	// ConnectionURL has the form "redis://:password@localhost:6379/0".
	ConnectionURL  string        `env:"REDIS_URL"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"15s"`
	// KeyPrefix namespaces every key written by the app.
	KeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"formkit:"`
}

// Enabled reports whether a connection URL was configured.
func (c Config) Enabled() bool { return c.ConnectionURL != "" }
