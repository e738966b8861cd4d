// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variable names. Env values override the config file, which
// keeps Docker deployments workable without a mounted file.
const (
	EnvServerHost   = "KILLFEED_SERVER_HOST"
	EnvServerPort   = "KILLFEED_SERVER_PORT"
	EnvDatabaseDSN  = "KILLFEED_DATABASE_DSN"
	EnvLogLevel     = "KILLFEED_LOG_LEVEL"
	EnvLogFormat    = "KILLFEED_LOG_FORMAT"
	EnvMetricsOn    = "KILLFEED_METRICS_ENABLED"
	EnvCronInterval = "KILLFEED_CRON_INTERVAL"
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Stream   StreamConfig   `yaml:"stream"`
	Cron     CronConfig     `yaml:"cron"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig configures the database.
type DatabaseConfig struct {
	Driver string `yaml:"driver"` // only "sqlite" for now
	DSN    string `yaml:"dsn"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "console"
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// StreamConfig configures the diagnostic event stream.
type StreamConfig struct {
	// TestLifetime bounds how long /api/stream/test stays open before
	// the scheduled close fires.
	TestLifetime time.Duration `yaml:"test_lifetime"`
}

// CronConfig configures the interval import runner.
type CronConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// Default returns the configuration defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 0, // streaming endpoints need an unbounded write window
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "killfeed.db",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Stream: StreamConfig{
			TestLifetime: 10 * time.Second,
		},
		Cron: CronConfig{
			Interval: time.Hour,
		},
	}
}

// Load reads configuration from a YAML file, applies environment
// overrides, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWithFallback loads the config file if present, otherwise falls
// back to defaults plus environment variables.
func LoadWithFallback(path string) (*Config, error) {
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	cfg := Default()
	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Database.Driver != "sqlite" {
		return fmt.Errorf("database.driver must be sqlite, got %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	if c.Stream.TestLifetime <= 0 {
		return fmt.Errorf("stream.test_lifetime must be positive")
	}
	if c.Cron.Interval <= 0 {
		return fmt.Errorf("cron.interval must be positive")
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvServerHost); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv(EnvServerPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv(EnvDatabaseDSN); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv(EnvMetricsOn); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = on
		}
	}
	if v := os.Getenv(EnvCronInterval); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Cron.Interval = d
		}
	}
}
