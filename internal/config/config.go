// Package config loads orderload settings from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults used when no config file sets a value.
const (
	DefaultInput       = "orders.json"
	DefaultDatabase    = "orders_database.db"
	DefaultSampleLimit = 5
)

// Config holds file locations and report settings.
type Config struct {
	Input       string   `yaml:"input"`        // JSON event file
	Database    string   `yaml:"database"`     // SQLite output file
	SampleLimit int      `yaml:"sample_limit"` // rows shown per table in the report
	Tables      []string `yaml:"tables"`       // tables to report; empty means the default set
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Input:       DefaultInput,
		Database:    DefaultDatabase,
		SampleLimit: DefaultSampleLimit,
	}
}

// Load reads the YAML file at path over the defaults.
// An empty path returns Default(). Keys absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that required paths are set and the sample limit is usable.
func (c *Config) Validate() error {
	var errs []error
	if c.Input == "" {
		errs = append(errs, errors.New("input must not be empty"))
	}
	if c.Database == "" {
		errs = append(errs, errors.New("database must not be empty"))
	}
	if c.SampleLimit < 1 {
		errs = append(errs, fmt.Errorf("sample_limit must be positive, got %d", c.SampleLimit))
	}
	return errors.Join(errs...)
}
