// Package config loads executor configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all executor configuration.
type Config struct {
	Executor ExecutorConfig
	Logging  LogConfig
}

// ExecutorConfig holds execution limits.
type ExecutorConfig struct {
	MaxTimeout     time.Duration `envconfig:"MAX_TIMEOUT" default:"30s"`
	DefaultTimeout time.Duration `envconfig:"DEFAULT_TIMEOUT" default:"5s"`
	MaxConcurrent  int           `envconfig:"MAX_CONCURRENT" default:"16"`
	MaxStackDepth  int           `envconfig:"MAX_STACK_DEPTH" default:"1024"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("scriptbox", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns defaults.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Executor: ExecutorConfig{
			MaxTimeout:     30 * time.Second,
			DefaultTimeout: 5 * time.Second,
			MaxConcurrent:  16,
			MaxStackDepth:  1024,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}
