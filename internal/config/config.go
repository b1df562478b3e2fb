// Package config loads engine configuration from the environment and
// the world manifest from the content directory.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Save backends.
const (
	SaveBackendFile  = "file"
	SaveBackendRedis = "redis"
)

// Config is the process configuration.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// DataDir holds world.yaml and the locations/ content tree.
	DataDir string `env:"DATA_DIR" envDefault:"./data"`

	SaveBackend string `env:"SAVE_BACKEND" envDefault:"file"`
	SaveFile    string `env:"SAVE_FILE" envDefault:"./saves/slot1.json"`
	RedisAddr   string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	switch cfg.SaveBackend {
	case SaveBackendFile, SaveBackendRedis:
	default:
		return nil, fmt.Errorf("unknown save backend %q", cfg.SaveBackend)
	}
	return cfg, nil
}

// SlogLevel maps the configured level name onto slog.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
