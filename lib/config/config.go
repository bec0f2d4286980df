// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the help desk
// client.
//
// Configuration is loaded from a single YAML file specified by:
//   - HELPDESK_CONFIG environment variable, or
//   - --config flag passed to the command.
//
// When neither is set, built-in defaults apply, with the backend base
// URL overridable via HELPDESK_API_URL. There is no multi-file merge
// or automatic discovery; one file, plus explicit environment
// overrides, keeps the effective configuration auditable.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full client configuration.
type Config struct {
	// API configures the backend connection.
	API APIConfig `yaml:"api"`

	// Paths configures local state locations.
	Paths PathsConfig `yaml:"paths"`
}

// APIConfig configures the backend REST connection.
type APIConfig struct {
	// BaseURL is the backend base address, e.g. "http://localhost:8000".
	// Overridable via the HELPDESK_API_URL environment variable.
	BaseURL string `yaml:"base_url"`

	// Timeout is the whole-request transport timeout.
	// Default: 30s. There are no retries; a failed call surfaces to
	// the view that issued it.
	Timeout time.Duration `yaml:"timeout"`
}

// PathsConfig configures where local state lives.
type PathsConfig struct {
	// State is the directory holding the persisted chat transcript
	// and conversation context.
	// Default: ~/.local/state/helpdesk
	State string `yaml:"state"`

	// SessionFile is the path of the signed-in session file.
	// Default: ~/.config/helpdesk/session.json
	SessionFile string `yaml:"session_file"`
}

// Default returns the built-in configuration. These are usable values,
// not merely zero-value placeholders: a fresh checkout runs against a
// local backend with no config file at all.
func Default() *Config {
	homeDirectory, _ := os.UserHomeDir()
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 30 * time.Second,
		},
		Paths: PathsConfig{
			State:       filepath.Join(homeDirectory, ".local", "state", "helpdesk"),
			SessionFile: filepath.Join(homeDirectory, ".config", "helpdesk", "session.json"),
		},
	}
}

// Load resolves the configuration: defaults, then the file named by
// HELPDESK_CONFIG (if set), then environment overrides.
func Load() (*Config, error) {
	return LoadFile(os.Getenv("HELPDESK_CONFIG"))
}

// LoadFile resolves the configuration from a specific file path. An
// empty path skips the file and applies defaults plus environment
// overrides only.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if apiURL := os.Getenv("HELPDESK_API_URL"); apiURL != "" {
		cfg.API.BaseURL = apiURL
	}

	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in path
// fields so config files stay portable across machines.
func (c *Config) expandVariables() {
	vars := map[string]string{"HOME": os.Getenv("HOME")}
	c.Paths.State = expandVars(c.Paths.State, vars)
	c.Paths.SessionFile = expandVars(c.Paths.SessionFile, vars)
}

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

	if c.API.BaseURL == "" {
		errs = append(errs, fmt.Errorf("api.base_url is required"))
	} else if _, err := url.Parse(c.API.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("api.base_url: %w", err))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("api.timeout must be positive"))
	}
	if c.Paths.State == "" {
		errs = append(errs, fmt.Errorf("paths.state is required"))
	}
	if c.Paths.SessionFile == "" {
		errs = append(errs, fmt.Errorf("paths.session_file is required"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// EnsurePaths creates the state directory if it doesn't exist. The
// session file's parent is created on first save instead, with a
// tighter mode.
func (c *Config) EnsurePaths() error {
	if err := os.MkdirAll(c.Paths.State, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", c.Paths.State, err)
	}
	return nil
}
