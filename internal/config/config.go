// Package config loads typed application configuration from environment
// variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the complete runtime configuration. Every field has a default, so
// a bare `go run ./cmd/server` works out of the box.
type Config struct {
	Port          int    `env:"PORT"           envDefault:"3000"`
	DBPath        string `env:"DB_PATH"        envDefault:"data/gocamp.db"`
	SessionSecret string `env:"SESSION_SECRET" envDefault:""`
	TemplateDir   string `env:"TEMPLATE_DIR"   envDefault:"web/templates"`
	StaticDir     string `env:"STATIC_DIR"     envDefault:"web/static"`
	LogLevel      string `env:"LOG_LEVEL"      envDefault:"info"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing environment: %w", err)
	}
	return cfg, nil
}
