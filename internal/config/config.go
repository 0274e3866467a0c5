// Package config loads service configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything the service needs to run.
type Config struct {
	Port          int           `env:"PORT" envDefault:"8080"`
	DatabaseURL   string        `env:"DATABASE_URL" envDefault:"file:w4sforms.db?_pragma=foreign_keys(1)"`
	SystemService string        `env:"SYSTEM_SERVICE_URL" envDefault:"http://localhost:9090"`
	CallTimeout   time.Duration `env:"SYSTEM_SERVICE_TIMEOUT" envDefault:"30s"`
	CORSOrigins   []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	DefaultLocale string        `env:"DEFAULT_LOCALE" envDefault:"en"`
	SeedDemo      bool          `env:"SEED_DEMO" envDefault:"false"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat     string        `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads the environment into a Config. A .env file is applied first
// when present; a missing file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
