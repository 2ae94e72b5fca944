// Copyright 2026 The Wanderhome Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for Wanderhome
// clients.
//
// Configuration is loaded from a single YAML file specified by:
//   - WANDERHOME_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery beyond the built-in
// defaults. The config file may contain environment-specific sections
// (development, staging, production) that override base values when
// the environment matches.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production talks to the live booking service.
	Production Environment = "production"
)

// Config is the master configuration for a Wanderhome client.
type Config struct {
	// Environment identifies the deployment type.
	Environment Environment `yaml:"environment"`

	// Service configures the booking-service connection.
	Service ServiceConfig `yaml:"service"`

	// Storage configures local durable state.
	Storage StorageConfig `yaml:"storage"`

	// Per-environment overrides, applied after the base config loads.
	Development *Overrides `yaml:"development,omitempty"`
	Staging     *Overrides `yaml:"staging,omitempty"`
	Production  *Overrides `yaml:"production,omitempty"`
}

// Overrides contains the fields that can be overridden per
// environment.
type Overrides struct {
	Service *ServiceConfig `yaml:"service,omitempty"`
	Storage *StorageConfig `yaml:"storage,omitempty"`
}

// ServiceConfig configures the booking-service connection.
type ServiceConfig struct {
	// BaseURL is the booking-service API root.
	BaseURL string `yaml:"base_url"`

	// RequestTimeout bounds each non-polling HTTP request, in
	// time.ParseDuration syntax. Default: 15s. Long polls carry their
	// own server-side hold and are not subject to this timeout.
	RequestTimeout string `yaml:"request_timeout"`
}

// Timeout returns the parsed request timeout. Call after Validate.
func (s ServiceConfig) Timeout() time.Duration {
	d, err := time.ParseDuration(s.RequestTimeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

// StorageConfig configures local durable state.
type StorageConfig struct {
	// StatePath is the SQLite database file holding the persisted
	// state snapshot. The parent directory is created on demand.
	StatePath string `yaml:"state_path"`
}

// Default returns the default configuration. These defaults make the
// client usable with no config file at all, pointed at the production
// service with state under the user cache directory.
func Default() *Config {
	cacheDir, _ := os.UserCacheDir()
	return &Config{
		Environment: Production,
		Service: ServiceConfig{
			BaseURL:        "https://api.wanderhome.example",
			RequestTimeout: "15s",
		},
		Storage: StorageConfig{
			StatePath: filepath.Join(cacheDir, "wanderhome", "state.db"),
		},
	}
}

// Load loads configuration from the WANDERHOME_CONFIG environment
// variable, falling back to built-in defaults when it is unset.
func Load() (*Config, error) {
	configPath := os.Getenv("WANDERHOME_CONFIG")
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, merging it
// over the defaults. The only expansion performed is ${VAR} and
// ${VAR:-default} in paths and URLs, for portability across machines.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// applyEnvironmentOverrides applies the section matching
// c.Environment.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *Overrides
	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
	}
	if overrides == nil {
		return
	}

	if overrides.Service != nil {
		if overrides.Service.BaseURL != "" {
			c.Service.BaseURL = overrides.Service.BaseURL
		}
		if overrides.Service.RequestTimeout != "" {
			c.Service.RequestTimeout = overrides.Service.RequestTimeout
		}
	}
	if overrides.Storage != nil {
		if overrides.Storage.StatePath != "" {
			c.Storage.StatePath = overrides.Storage.StatePath
		}
	}
}

// expandVariables expands ${VAR} patterns in paths and URLs.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Service.BaseURL = expandVars(c.Service.BaseURL, vars)
	c.Storage.StatePath = expandVars(c.Storage.StatePath, vars)
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}
	if c.Service.BaseURL == "" {
		errs = append(errs, fmt.Errorf("service.base_url is required"))
	}
	if c.Service.RequestTimeout != "" {
		if d, err := time.ParseDuration(c.Service.RequestTimeout); err != nil {
			errs = append(errs, fmt.Errorf("service.request_timeout: %w", err))
		} else if d < 0 {
			errs = append(errs, fmt.Errorf("service.request_timeout must not be negative"))
		}
	}
	if c.Storage.StatePath == "" {
		errs = append(errs, fmt.Errorf("storage.state_path is required"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// EnsurePaths creates the state directory if it does not exist.
func (c *Config) EnsurePaths() error {
	dir := filepath.Dir(c.Storage.StatePath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("config: creating %s: %w", dir, err)
	}
	return nil
}
