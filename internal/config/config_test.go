package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) }) //nolint:errcheck
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Empty(t, cfg.Server.TLSCert)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout())
	assert.Equal(t, "json", cfg.Catalog.Source)
	assert.Equal(t, "data/location_engineering_data.json", cfg.Catalog.Path)
	assert.Equal(t, "postgres", cfg.Catalog.Driver)
	assert.InDelta(t, 1.0, cfg.RateLimit.RPS, 1e-9)
	assert.Equal(t, 3, cfg.RateLimit.Burst)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
server:
  addr: ":9090"
catalog:
  source: xlsx
  path: data/locations.xlsx
  extra_paths:
    - data/islands.json
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "xlsx", cfg.Catalog.Source)
	assert.Equal(t, "data/locations.xlsx", cfg.Catalog.Path)
	assert.Equal(t, []string{"data/islands.json"}, cfg.Catalog.ExtraPaths)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BRIDGE_RATE_LIMIT_BURST=10\n"), 0o644))
	t.Setenv("BRIDGE_CATALOG_SOURCE", "sql")
	t.Setenv("DATABASE_URL", "postgres://bridge@db/bridge")
	t.Setenv("BRIDGE_SERVER_ADDR", ":7000")
	t.Cleanup(func() { os.Unsetenv("BRIDGE_RATE_LIMIT_BURST") }) //nolint:errcheck

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sql", cfg.Catalog.Source)
	assert.Equal(t, "postgres://bridge@db/bridge", cfg.Catalog.DSN)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, 10, cfg.RateLimit.Burst)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:    ServerConfig{Addr: ":8080", ShutdownTimeoutSecs: 5},
			Catalog:   CatalogConfig{Source: "json", Path: "data/x.json"},
			RateLimit: RateLimitConfig{RPS: 1, Burst: 3},
			Log:       LogConfig{Level: "info", Format: "json"},
		}
	}
	base := valid()
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown source", func(c *Config) { c.Catalog.Source = "csv" }},
		{"sql without dsn", func(c *Config) { c.Catalog.Source = "sql" }},
		{"missing path", func(c *Config) { c.Catalog.Path = "" }},
		{"half tls", func(c *Config) { c.Server.TLSCert = "server.crt" }},
		{"zero shutdown", func(c *Config) { c.Server.ShutdownTimeoutSecs = 0 }},
		{"zero burst", func(c *Config) { c.RateLimit.Burst = 0 }},
		{"unknown log format", func(c *Config) { c.Log.Format = "logfmt" }},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestInitLogger(t *testing.T) {
	defer zap.ReplaceGlobals(zap.NewNop())

	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.True(t, zap.L().Core().Enabled(zap.DebugLevel))

	require.NoError(t, InitLogger(LogConfig{Level: "warn", Format: "json"}))
	assert.False(t, zap.L().Core().Enabled(zap.InfoLevel))

	assert.ErrorIs(t, InitLogger(LogConfig{Level: "loud"}), ErrInvalidConfig)
}

func TestLoggerConfig(t *testing.T) {
	zc, err := loggerConfig(LogConfig{Level: "warn", Format: "json"})
	require.NoError(t, err)

	assert.Equal(t, "json", zc.Encoding)
	assert.Equal(t, zapcore.WarnLevel, zc.Level.Level())
	assert.Equal(t, "ts", zc.EncoderConfig.TimeKey)
	assert.Equal(t, map[string]any{"service": "bridge"}, zc.InitialFields)

	zc, err = loggerConfig(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.Equal(t, "console", zc.Encoding)
	assert.Equal(t, "ts", zc.EncoderConfig.TimeKey)
}

func TestLoadRejectsUnknownLogFormat(t *testing.T) {
	chdirTemp(t)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("BRIDGE_LOG_FORMAT", "logfmt")

	_, err := Load()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
