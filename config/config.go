package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"haisou/internal/logger"

	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

type Config struct {
	Environment          string        `mapstructure:"ENVIRONMENT"`
	LogLevel             string        `mapstructure:"LOG_LEVEL"`
	DatabaseDriver       string        `mapstructure:"DATABASE_DRIVER"`
	DatabaseDSN          string        `mapstructure:"DATABASE_DSN"`
	DatabaseDbPath       string        `mapstructure:"DATABASE_DB_PATH"`
	DatabaseCacheAddress string        `mapstructure:"DATABASE_CACHE_ADDRESS"`
	DatabaseCachePort    int           `mapstructure:"DATABASE_CACHE_PORT"`
	NameCacheTTL         time.Duration `mapstructure:"NAME_CACHE_TTL"`
	SeedOnMigrate        bool          `mapstructure:"SEED_ON_MIGRATE"`
}

var keys = []string{
	"ENVIRONMENT",
	"LOG_LEVEL",
	"DATABASE_DRIVER",
	"DATABASE_DSN",
	"DATABASE_DB_PATH",
	"DATABASE_CACHE_ADDRESS",
	"DATABASE_CACHE_PORT",
	"NAME_CACHE_TTL",
	"SEED_ON_MIGRATE",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DB_PATH", "data/haisou.db")
	v.SetDefault("DATABASE_CACHE_PORT", 6379)
	v.SetDefault("NAME_CACHE_TTL", 24*time.Hour)
	v.SetDefault("SEED_ON_MIGRATE", false)
}

// InitConfig reads .env from the working directory when present, then lets
// HAISOU_-prefixed environment variables override it.
func InitConfig() (Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	return load(v)
}

// InitConfigFile is InitConfig for an explicit file (env, yaml, toml...).
func InitConfigFile(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (Config, error) {
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("HAISOU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabaseDbPath == "" {
			return errors.New("DATABASE_DB_PATH is required for sqlite")
		}
	case DriverMySQL, DriverPostgres:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("DATABASE_DSN is required for %s", c.DatabaseDriver)
		}
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.LogLevel != "" {
		if _, err := logger.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
		}
	}
	if c.DatabaseCachePort < 0 {
		return errors.New("DATABASE_CACHE_PORT must not be negative")
	}
	return nil
}

// SlogLevel is the configured log level; empty means info.
func (c Config) SlogLevel() slog.Level {
	l, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

func (c Config) CacheEnabled() bool {
	return c.DatabaseCacheAddress != ""
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}
