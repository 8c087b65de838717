package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/CTAG07/nwnltr/pkg/ltr"
)

// Config holds the settings that can come from the environment. Command line
// flags take precedence over every field.
type Config struct {
	Seed         int64  `json:"seed" env:"NWNLTR_SEED"`
	DefaultCount int    `json:"default_count" env:"NWNLTR_DEFAULT_COUNT"`
	LogLevel     string `json:"log_level" env:"NWNLTR_LOG_LEVEL"`
	Alphabet     string `json:"alphabet" env:"NWNLTR_ALPHABET"`
	LibraryPath  string `json:"library_path" env:"NWNLTR_LIBRARY"`
	ModelName    string `json:"model_name" env:"NWNLTR_MODEL_NAME"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Seed:         0,
		DefaultCount: 100,
		LogLevel:     "warn",
		Alphabet:     ltr.DefaultSymbols,
		LibraryPath:  "",
		ModelName:    "",
	}
}

// LoadConfig starts from the defaults and applies any environment overrides.
func LoadConfig() (*Config, error) {
	config := DefaultConfig()
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if config.DefaultCount <= 0 {
		return nil, fmt.Errorf("default count must be positive, got %d", config.DefaultCount)
	}
	return config, nil
}

// Level maps the configured log level to a slog.Level, defaulting to warn.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
