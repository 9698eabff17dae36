package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allEnvKeys = []string{
	EnvHost, EnvPort, EnvReadTimeout, EnvWriteTimeout, EnvShutdownDeadline, EnvRequestTimeout,
	EnvLogLevel, EnvLogFormat, EnvServiceName, EnvTracingEnabled, EnvTimezone,
}

// clearEnv blanks every override so the test sees file and default values only.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allEnvKeys {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestLoad_Defaults verifies defaults when no file or env vars are given.
func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("", "")

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.ListenAddress())
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 2*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Tracing.Enabled)
	loc, err := cfg.Forecast.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

// TestLoad_YAMLFile verifies file values replace defaults.
func TestLoad_YAMLFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", `
server:
  host: 127.0.0.1
  port: 9000
  request_timeout: 750ms
log:
  level: debug
  format: console
tracing:
  enabled: false
`)

	cfg, err := Load(path, "")

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.ListenAddress())
	assert.Equal(t, 750*time.Millisecond, cfg.Server.RequestTimeout)
	assert.Equal(t, 5*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.False(t, cfg.Tracing.Enabled)
}

// TestLoad_EnvOverrides verifies valid env overrides are parsed over file values.
func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", "server:\n  port: 9000\n")
	t.Setenv(EnvPort, ":9090")
	t.Setenv(EnvReadTimeout, "7s")
	t.Setenv(EnvWriteTimeout, "8s")
	t.Setenv(EnvShutdownDeadline, "12s")
	t.Setenv(EnvRequestTimeout, "3s")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvTracingEnabled, "false")

	cfg, err := Load(path, "")

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 7*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 8*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 12*time.Second, cfg.Server.ShutdownDeadline)
	assert.Equal(t, 3*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.False(t, cfg.Tracing.Enabled)
}

// TestLoad_DotEnvFile verifies .env values are applied and a missing file is ignored.
func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.Unsetenv(EnvServiceName))
	envFile := writeFile(t, ".env", EnvServiceName+"=forecast-from-dotenv\n")

	cfg, err := Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, "forecast-from-dotenv", cfg.Log.ServiceName)

	_, err = Load("", filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}

// TestLoad_InvalidValues verifies invalid values fail fast.
func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		value  string
		expect string
	}{
		{name: "invalid port", key: EnvPort, value: "abc", expect: "invalid port"},
		{name: "port out of range", key: EnvPort, value: "70000", expect: "between 1 and 65535"},
		{name: "invalid duration", key: EnvReadTimeout, value: "bad", expect: "invalid duration"},
		{name: "non-positive duration", key: EnvRequestTimeout, value: "0s", expect: "must be > 0"},
		{name: "invalid boolean", key: EnvTracingEnabled, value: "maybe", expect: "invalid boolean"},
		{name: "unknown log format", key: EnvLogFormat, value: "xml", expect: "invalid log format"},
		{name: "unknown timezone", key: EnvTimezone, value: "Mars/Olympus", expect: "invalid forecast timezone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load("", "")

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expect)
		})
	}
}

// TestLoad_BadFile verifies read and parse failures are reported.
func TestLoad_BadFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), "")
	assert.ErrorContains(t, err, "read config file")

	_, err = Load(writeFile(t, "bad.yaml", "server: [unterminated"), "")
	assert.ErrorContains(t, err, "parse config file")
}

// TestValidate_ZeroDuration verifies file-supplied durations are checked too.
func TestValidate_ZeroDuration(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.ShutdownDeadline = 0

	assert.ErrorContains(t, cfg.Validate(), "shutdown_deadline must be > 0")
}

// TestValidate_ReportsFirstInvalidDurationInOrder verifies the reported duration is stable.
func TestValidate_ReportsFirstInvalidDurationInOrder(t *testing.T) {
	for i := 0; i < 20; i++ {
		cfg := DefaultConfig()
		cfg.Server.WriteTimeout = 0
		cfg.Server.RequestTimeout = -time.Second

		assert.EqualError(t, cfg.Validate(), "write_timeout must be > 0")
	}
}
