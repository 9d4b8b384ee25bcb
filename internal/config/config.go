package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var ErrInvalidConfig = eris.New("config: invalid")

// Config holds the full application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Catalog   CatalogConfig   `yaml:"catalog" mapstructure:"catalog"`
	RateLimit RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

type ServerConfig struct {
	Addr                string `yaml:"addr" mapstructure:"addr"`
	TLSCert             string `yaml:"tls_cert" mapstructure:"tls_cert"`
	TLSKey              string `yaml:"tls_key" mapstructure:"tls_key"`
	ShutdownTimeoutSecs int    `yaml:"shutdown_timeout_secs" mapstructure:"shutdown_timeout_secs"`
}

func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSecs) * time.Second
}

// CatalogConfig selects where location snapshots come from.
// Source is one of json, xlsx or sql.
type CatalogConfig struct {
	Source     string   `yaml:"source" mapstructure:"source"`
	Path       string   `yaml:"path" mapstructure:"path"`
	ExtraPaths []string `yaml:"extra_paths" mapstructure:"extra_paths"`
	Driver     string   `yaml:"driver" mapstructure:"driver"`
	DSN        string   `yaml:"dsn" mapstructure:"dsn"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps" mapstructure:"rps"`
	Burst int     `yaml:"burst" mapstructure:"burst"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads .env, config.yaml and BRIDGE_* environment variables, in
// increasing order of precedence.
func Load() (*Config, error) {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("catalog.dsn", "BRIDGE_CATALOG_DSN", "DATABASE_URL"); err != nil {
		return nil, eris.Wrap(err, "config: bind env")
	}

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.tls_cert", "")
	v.SetDefault("server.tls_key", "")
	v.SetDefault("server.shutdown_timeout_secs", 5)
	v.SetDefault("catalog.source", "json")
	v.SetDefault("catalog.path", "data/location_engineering_data.json")
	v.SetDefault("catalog.extra_paths", []string{})
	v.SetDefault("catalog.driver", "postgres")
	v.SetDefault("rate_limit.rps", 1)
	v.SetDefault("rate_limit.burst", 3)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Catalog.Source {
	case "json", "xlsx":
		if c.Catalog.Path == "" {
			return eris.Wrapf(ErrInvalidConfig, "catalog.path required for source %q", c.Catalog.Source)
		}
	case "sql":
		if c.Catalog.DSN == "" {
			return eris.Wrap(ErrInvalidConfig, "catalog.dsn required for source \"sql\"")
		}
	default:
		return eris.Wrapf(ErrInvalidConfig, "catalog.source %q", c.Catalog.Source)
	}
	if (c.Server.TLSCert == "") != (c.Server.TLSKey == "") {
		return eris.Wrap(ErrInvalidConfig, "server.tls_cert and server.tls_key must be set together")
	}
	if c.Server.ShutdownTimeoutSecs <= 0 {
		return eris.Wrapf(ErrInvalidConfig, "server.shutdown_timeout_secs %d", c.Server.ShutdownTimeoutSecs)
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst < 1 {
		return eris.Wrapf(ErrInvalidConfig, "rate_limit %.2f/%d", c.RateLimit.RPS, c.RateLimit.Burst)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return eris.Wrapf(ErrInvalidConfig, "log.format %q", c.Log.Format)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return eris.Wrapf(ErrInvalidConfig, "log.level %q", c.Log.Level)
	}
	return nil
}

// InitLogger installs the global logger. Entries carry an ISO 8601 "ts" and
// the service name.
func InitLogger(cfg LogConfig) error {
	zc, err := loggerConfig(cfg)
	if err != nil {
		return err
	}
	logger, err := zc.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)
	return nil
}

func loggerConfig(cfg LogConfig) (zap.Config, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return zap.Config{}, eris.Wrapf(ErrInvalidConfig, "log.level %q", cfg.Level)
	}

	zc := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.Level = level
	zc.EncoderConfig.TimeKey = "ts"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.InitialFields = map[string]any{"service": "bridge"}
	return zc, nil
}
