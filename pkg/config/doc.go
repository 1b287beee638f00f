// Package config loads typed configuration from environment variables.
//
// Structs declare their variables with github.com/caarlos0/env tags. Load
// parses a struct type once and caches it, so any package can ask for its
// configuration without threading it through constructors. A .env file in
// the working directory is read on first use via github.com/joho/godotenv;
// LoadEnv loads explicit files.
//
//	type Config struct {
//		Addr  string        `env:"HTTP_ADDR" envDefault:":8080"`
//		Delay time.Duration `env:"SUBMIT_DELAY" envDefault:"1s"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
package config
