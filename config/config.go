package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	HTTP          HTTPConfig          `yaml:"http"`
	Observability ObservabilityConfig `yaml:"observability"`
	Queue         QueueConfig         `yaml:"queue"`
	Rounds        RoundsConfig        `yaml:"rounds"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn" env:"DATABASE_URL"`
}

// NATSConfig holds NATS configuration. An empty URL publishes to an in-process channel.
type NATSConfig struct {
	URL       string `yaml:"url" env:"NATS_URL"`
	JetStream bool   `yaml:"jetstream" env:"NATS_JETSTREAM"`
}

// HTTPConfig holds the API listener, its rate limit and CORS origins.
type HTTPConfig struct {
	Address        string   `yaml:"address" env:"HTTP_ADDRESS"`
	RateLimit      float64  `yaml:"rate_limit" env:"HTTP_RATE_LIMIT"`
	RateBurst      int      `yaml:"rate_burst" env:"HTTP_RATE_BURST"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"HTTP_ALLOWED_ORIGINS" envSeparator:","`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	MetricsAddress string `yaml:"metrics_address" env:"METRICS_ADDRESS"`
	Environment    string `yaml:"environment" env:"ENVIRONMENT"`
	LogLevel       string `yaml:"log_level" env:"LOG_LEVEL"`
}

// QueueConfig toggles the River scheduler for automatic round starts.
type QueueConfig struct {
	Enabled bool `yaml:"enabled" env:"QUEUE_ENABLED"`
}

// RoundsConfig holds round scheduling settings.
type RoundsConfig struct {
	// Timezone is the IANA zone used to read round dates and times.
	Timezone string `yaml:"timezone" env:"ROUNDS_TIMEZONE"`
}

// Location resolves the configured timezone.
func (c RoundsConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid rounds.timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// LoadConfig reads the YAML file if it exists, then applies a .env file and
// environment variable overrides, then fills defaults.
func LoadConfig(filename string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// Environment only.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.HTTP.RateLimit <= 0 {
		c.HTTP.RateLimit = 10
	}
	if c.HTTP.RateBurst <= 0 {
		c.HTTP.RateBurst = 20
	}
	if c.Observability.MetricsAddress == "" {
		c.Observability.MetricsAddress = ":9090"
	}
	if c.Observability.Environment == "" {
		c.Observability.Environment = "development"
	}
	if c.Rounds.Timezone == "" {
		c.Rounds.Timezone = "UTC"
	}
}

func (c *Config) validate() error {
	if c.Postgres.DSN == "" {
		return errors.New("postgres.dsn is required")
	}
	if _, err := c.Rounds.Location(); err != nil {
		return err
	}
	return nil
}
