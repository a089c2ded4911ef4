package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the BookCourier client.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Backend API
	APIBaseURL     string        `env:"BOOKCOURIER_API_URL" envDefault:"http://localhost:5000"`
	RequestTimeout time.Duration `env:"BOOKCOURIER_REQUEST_TIMEOUT" envDefault:"30s"`
	MaxRetries     int           `env:"BOOKCOURIER_MAX_RETRIES" envDefault:"3"`
	RequestsPerSec float64       `env:"BOOKCOURIER_REQUESTS_PER_SECOND" envDefault:"0"`

	// Local state. Empty paths resolve under the user config dir.
	CachePath string `env:"BOOKCOURIER_CACHE_PATH"`
	TokenPath string `env:"BOOKCOURIER_TOKEN_PATH"`
}

// Load reads configuration from a .env file (when present) and the
// environment, then validates invariants and resolves defaults for the
// local state paths.
func Load() (*Config, error) {
	// A missing .env file is not an error; explicit environment always wins.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := cfg.resolvePaths(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API base URL: %q", c.APIBaseURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries must not be negative, got %d", c.MaxRetries)
	}
	if c.RequestsPerSec < 0 {
		return fmt.Errorf("requests per second must not be negative, got %f", c.RequestsPerSec)
	}
	return nil
}

// resolvePaths fills in default locations for the wishlist cache and the
// session token under the user config dir.
func (c *Config) resolvePaths() error {
	if c.CachePath != "" && c.TokenPath != "" {
		return nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return fmt.Errorf("resolve user config dir: %w", err)
	}
	dir := filepath.Join(base, "bookcourier")

	if c.CachePath == "" {
		c.CachePath = filepath.Join(dir, "wishlist.db")
	}
	if c.TokenPath == "" {
		c.TokenPath = filepath.Join(dir, "token")
	}
	return nil
}
