package cookie

import (
	"net/http"
	"strings"
)

type Config struct {
	// Secrets is a comma separated list; the first signs, all verify.
	Secrets string `env:"COOKIE_SECRETS"`
	Path    string `env:"COOKIE_PATH" envDefault:"/"`
	Domain  string `env:"COOKIE_DOMAIN"`
	MaxAge  int    `env:"COOKIE_MAX_AGE" envDefault:"2592000"`
	Secure  bool   `env:"COOKIE_SECURE" envDefault:"false"`
}

// SecretList splits Secrets on commas, dropping blanks.
func (c Config) SecretList() []string {
	var out []string
	for s := range strings.SplitSeq(c.Secrets, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// NewFromConfig builds a Manager from cfg using secrets when cfg has none.
func NewFromConfig(cfg Config, fallback ...string) (*Manager, error) {
	secrets := cfg.SecretList()
	if len(secrets) == 0 {
		secrets = fallback
	}
	return New(secrets,
		WithPath(cfg.Path),
		WithDomain(cfg.Domain),
		WithMaxAge(cfg.MaxAge),
		WithSecure(cfg.Secure),
		WithSameSite(http.SameSiteLaxMode),
	)
}
