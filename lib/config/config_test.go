// Copyright 2026 The Wanderhome Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wanderhome.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Environment != Production {
		t.Errorf("environment = %q", cfg.Environment)
	}
	if cfg.Service.BaseURL == "" || cfg.Storage.StatePath == "" {
		t.Errorf("defaults incomplete: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfigFile(t, `
environment: development
service:
  base_url: http://localhost:8080
  request_timeout: 5s
storage:
  state_path: /tmp/wanderhome-test/state.db
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Environment != Development {
		t.Errorf("environment = %q", cfg.Environment)
	}
	if cfg.Service.BaseURL != "http://localhost:8080" {
		t.Errorf("base_url = %q", cfg.Service.BaseURL)
	}
	if cfg.Service.Timeout() != 5*time.Second {
		t.Errorf("request_timeout = %v", cfg.Service.Timeout())
	}
	if cfg.Storage.StatePath != "/tmp/wanderhome-test/state.db" {
		t.Errorf("state_path = %q", cfg.Storage.StatePath)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	path := writeConfigFile(t, `
environment: staging
service:
  base_url: https://api.wanderhome.example
staging:
  service:
    base_url: https://staging.wanderhome.example
production:
  service:
    base_url: https://should-not-apply.example
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Service.BaseURL != "https://staging.wanderhome.example" {
		t.Errorf("base_url = %q, want staging override", cfg.Service.BaseURL)
	}
	// Unoverridden fields keep their defaults.
	if cfg.Service.Timeout() != 15*time.Second {
		t.Errorf("request_timeout = %v", cfg.Service.Timeout())
	}
}

func TestVariableExpansion(t *testing.T) {
	t.Setenv("HOME", "/home/mira")
	path := writeConfigFile(t, `
environment: development
storage:
  state_path: ${HOME}/.wanderhome/state.db
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Storage.StatePath != "/home/mira/.wanderhome/state.db" {
		t.Errorf("state_path = %q", cfg.Storage.StatePath)
	}
}

func TestVariableDefaultValue(t *testing.T) {
	t.Setenv("WANDERHOME_API", "")
	path := writeConfigFile(t, `
environment: development
service:
  base_url: ${WANDERHOME_API:-http://localhost:9999}
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Service.BaseURL != "http://localhost:9999" {
		t.Errorf("base_url = %q", cfg.Service.BaseURL)
	}
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	path := writeConfigFile(t, `
environment: sandbox
`)
	if _, err := LoadFile(path); err == nil || !strings.Contains(err.Error(), "invalid environment") {
		t.Errorf("LoadFile error = %v, want invalid environment", err)
	}
}

func TestLoadWithoutEnvVarUsesDefaults(t *testing.T) {
	t.Setenv("WANDERHOME_CONFIG", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Service.BaseURL != Default().Service.BaseURL {
		t.Errorf("base_url = %q", cfg.Service.BaseURL)
	}
}
