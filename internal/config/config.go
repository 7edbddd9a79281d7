// Package config loads client settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration loaded from environment variables
type Config struct {
	BaseURL     string        `env:"ZKPARSER_BASE_URL" envDefault:"https://www.10kdrop.com"`
	Timeout     time.Duration `env:"ZKPARSER_TIMEOUT" envDefault:"20s"`
	MaxAttempts int           `env:"ZKPARSER_MAX_ATTEMPTS" envDefault:"5"`
	RetryWait   time.Duration `env:"ZKPARSER_RETRY_WAIT" envDefault:"0s"`
	UserAgent   string        `env:"ZKPARSER_USER_AGENT" envDefault:"zkparser/1.0"`
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string        `env:"LOG_FORMAT" envDefault:"json"`
}

var (
	ErrInvalidTimeout     = errors.New("invalid timeout: must be positive")
	ErrInvalidMaxAttempts = errors.New("invalid max attempts: must be at least 1")
	ErrInvalidRetryWait   = errors.New("invalid retry wait: must be non-negative")
)

// Load reads an optional .env file from the working directory and then parses
// the environment. Variables already set in the environment win over .env.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}
	return Parse()
}

// Parse reads the environment only
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would make every fetch fail
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}
	if c.RetryWait < 0 {
		return ErrInvalidRetryWait
	}
	return nil
}
