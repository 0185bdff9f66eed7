// Package config loads the application-level YAML configuration file
// (app metadata, logging level, and the physics config record) via
// spf13/viper, populating a pkg/nbconfig.Config for the engine.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/nbody2d/core/pkg/nbconfig"
)

// App holds identifying metadata for the running program.
type App struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// Logging holds the engine-level logger settings.
type Logging struct {
	Level string `mapstructure:"level"`
}

// Config is the top-level application configuration: app/logging
// metadata plus the physics tunables record.
type Config struct {
	App     App             `mapstructure:"app"`
	Logging Logging         `mapstructure:"logging"`
	Physics nbconfig.Config `mapstructure:"physics"`
}

var cfg *Config

// GetConfig reads config.yaml from the working directory, unmarshals
// it and validates both the app metadata and the embedded physics
// config. It re-reads the file on every call; cfg is retained only so
// a failed read/validate can clear a previously loaded value.
func GetConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		cfg = nil
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		cfg = nil
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		cfg = nil
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}

	if cfg == nil {
		return nil, errors.New("failed to load configuration")
	}

	return cfg, nil
}

// Reset clears the last loaded configuration; tests only.
func Reset() {
	cfg = nil
}

// Validate checks the app/logging metadata and delegates the physics
// fields to nbconfig.Config.Validate.
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}
	if c.App.Version == "" {
		return fmt.Errorf("app.version is required")
	}
	if c.Logging.Level == "" {
		return fmt.Errorf("logging.level is required")
	}
	if err := c.Physics.Validate(); err != nil {
		return fmt.Errorf("physics: %w", err)
	}
	return nil
}
