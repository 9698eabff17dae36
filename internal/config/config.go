// Package config loads the forecast service configuration from an optional
// YAML file, an optional .env file and FORECAST_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvHost             = "FORECAST_HOST"
	EnvPort             = "FORECAST_PORT"
	EnvReadTimeout      = "FORECAST_READ_TIMEOUT"
	EnvWriteTimeout     = "FORECAST_WRITE_TIMEOUT"
	EnvShutdownDeadline = "FORECAST_SHUTDOWN_DEADLINE"
	EnvRequestTimeout   = "FORECAST_REQUEST_TIMEOUT"
	EnvLogLevel         = "FORECAST_LOG_LEVEL"
	EnvLogFormat        = "FORECAST_LOG_FORMAT"
	EnvServiceName      = "FORECAST_SERVICE_NAME"
	EnvTracingEnabled   = "FORECAST_TRACING_ENABLED"
	EnvTimezone         = "FORECAST_TIMEZONE"
)

// Config is the full service configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Tracing  TracingConfig  `yaml:"tracing"`
	Forecast ForecastConfig `yaml:"forecast"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host             string        `yaml:"host"`
	Port             int           `yaml:"port"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	ShutdownDeadline time.Duration `yaml:"shutdown_deadline"`
	RequestTimeout   time.Duration `yaml:"request_timeout"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"` // json or console
	ServiceName string `yaml:"service_name"`
}

// TracingConfig controls the in-process OpenTelemetry tracer.
type TracingConfig struct {
	Enabled bool `yaml:"enabled"`
}

// ForecastConfig holds forecast generation settings.
type ForecastConfig struct {
	// Timezone is an IANA zone name; forecast dates start from "today" there.
	Timezone string `yaml:"timezone"`
}

// ListenAddress returns host:port.
func (c ServerConfig) ListenAddress() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// Location resolves the configured timezone.
func (c ForecastConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

// DefaultConfig returns defaults suitable for local development.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:             8080,
			ReadTimeout:      5 * time.Second,
			WriteTimeout:     5 * time.Second,
			ShutdownDeadline: 10 * time.Second,
			RequestTimeout:   2 * time.Second,
		},
		Log: LogConfig{
			Level:       "info",
			Format:      "json",
			ServiceName: "forecast-api",
		},
		Tracing: TracingConfig{
			Enabled: true,
		},
		Forecast: ForecastConfig{
			Timezone: "UTC",
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (optional), the
// .env file at envFile (ignored when missing) and environment overrides.
func Load(path, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	for _, d := range []struct {
		name  string
		value time.Duration
	}{
		{"read_timeout", c.Server.ReadTimeout},
		{"write_timeout", c.Server.WriteTimeout},
		{"shutdown_deadline", c.Server.ShutdownDeadline},
		{"request_timeout", c.Server.RequestTimeout},
	} {
		if d.value <= 0 {
			return fmt.Errorf("%s must be > 0", d.name)
		}
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format: %s", c.Log.Format)
	}

	if _, err := c.Forecast.Location(); err != nil {
		return fmt.Errorf("invalid forecast timezone %q: %w", c.Forecast.Timezone, err)
	}
	return nil
}

// applyEnvOverrides applies FORECAST_* environment variables to cfg.
func applyEnvOverrides(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(EnvHost)); v != "" {
		cfg.Server.Host = v
	}

	port, err := parsePortEnv(EnvPort, cfg.Server.Port)
	if err != nil {
		return err
	}
	cfg.Server.Port = port

	for _, d := range []struct {
		key    string
		target *time.Duration
	}{
		{EnvReadTimeout, &cfg.Server.ReadTimeout},
		{EnvWriteTimeout, &cfg.Server.WriteTimeout},
		{EnvShutdownDeadline, &cfg.Server.ShutdownDeadline},
		{EnvRequestTimeout, &cfg.Server.RequestTimeout},
	} {
		value, err := parseDurationEnv(d.key, *d.target)
		if err != nil {
			return err
		}
		*d.target = value
	}

	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Log.Format = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvServiceName)); v != "" {
		cfg.Log.ServiceName = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTimezone)); v != "" {
		cfg.Forecast.Timezone = v
	}

	if raw := strings.TrimSpace(os.Getenv(EnvTracingEnabled)); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%s: invalid boolean %q", EnvTracingEnabled, raw)
		}
		cfg.Tracing.Enabled = enabled
	}
	return nil
}

// parseDurationEnv reads a duration env var with fallback default.
func parseDurationEnv(envKey string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(envKey))
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", envKey, raw, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s: duration must be > 0", envKey)
	}
	return value, nil
}

// parsePortEnv reads and validates a TCP port env var.
func parsePortEnv(envKey string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(envKey))
	if raw == "" {
		return fallback, nil
	}

	raw = strings.TrimPrefix(raw, ":")
	port, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid port %q", envKey, raw)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("%s: port must be between 1 and 65535", envKey)
	}
	return port, nil
}
