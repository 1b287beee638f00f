package config

import (
	"errors"
	"fmt"
	"time"

	pkgconfig "github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/cookie"
	"github.com/dmitrymomot/formkit/pkg/httpserver"
	"github.com/dmitrymomot/formkit/pkg/redis"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Environment names accepted in APP_ENV.
const (
	Development = "development"
	Staging     = "staging"
	Production  = "production"
)

// Config is the demo server configuration.
type Config struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Name     string `env:"APP_NAME" envDefault:"formkit"`
	LogLevel string `env:"LOG_LEVEL"`

	HTTP   httpserver.Config
	Redis  redis.Config
	Cookie cookie.Config

	UsernameCheckDelay   time.Duration `env:"USERNAME_CHECK_DELAY" envDefault:"1s"`
	SubmitDelay          time.Duration `env:"SUBMIT_DELAY" envDefault:"1s"`
	FormStateSubmitDelay time.Duration `env:"FORM_STATE_SUBMIT_DELAY" envDefault:"2s"`
	CheckTimeout         time.Duration `env:"FORM_CHECK_TIMEOUT" envDefault:"10s"`

	VisitorStoreCapacity int    `env:"VISITOR_STORE_CAPACITY" envDefault:"1024"`
	VisitorCookie        string `env:"VISITOR_COOKIE" envDefault:"formkit_visitor"`
	SubmissionCapacity   int    `env:"SUBMISSION_CAPACITY" envDefault:"50"`

	// ProxyHeaders lists the headers trusted for the client address.
	ProxyHeaders []string `env:"PROXY_HEADERS" envSeparator:","`
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := pkgconfig.Load(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Env {
	case Development, Staging, Production:
	default:
		return fmt.Errorf("%w: APP_ENV must be %s, %s or %s, got %q", ErrInvalidConfig, Development, Staging, Production, c.Env)
	}
	for name, d := range map[string]time.Duration{
		"USERNAME_CHECK_DELAY":    c.UsernameCheckDelay,
		"SUBMIT_DELAY":            c.SubmitDelay,
		"FORM_STATE_SUBMIT_DELAY": c.FormStateSubmitDelay,
	} {
		if d < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidConfig, name)
		}
	}
	if c.CheckTimeout <= 0 {
		return fmt.Errorf("%w: FORM_CHECK_TIMEOUT must be positive", ErrInvalidConfig)
	}
	if c.VisitorStoreCapacity <= 0 {
		return fmt.Errorf("%w: VISITOR_STORE_CAPACITY must be positive", ErrInvalidConfig)
	}
	if c.VisitorCookie == "" {
		return fmt.Errorf("%w: VISITOR_COOKIE must not be empty", ErrInvalidConfig)
	}
	if c.IsProduction() && len(c.Cookie.SecretList()) == 0 {
		return fmt.Errorf("%w: COOKIE_SECRETS is required in production", ErrInvalidConfig)
	}
	return nil
}

func (c Config) IsProduction() bool { return c.Env == Production }
