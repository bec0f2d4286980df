// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "helpdesk.yaml")
	content := `
api:
  base_url: https://helpdesk.example.mil
  timeout: 10s
paths:
  state: /var/lib/helpdesk
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.API.BaseURL != "https://helpdesk.example.mil" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.API.Timeout)
	}
	if cfg.Paths.State != "/var/lib/helpdesk" {
		t.Errorf("State = %q", cfg.Paths.State)
	}
	// Unset fields keep their defaults.
	if cfg.Paths.SessionFile == "" {
		t.Error("SessionFile default was lost")
	}
}

func TestEnvironmentOverridesBaseURL(t *testing.T) {
	t.Setenv("HELPDESK_API_URL", "http://desk.invalid:9999")
	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.API.BaseURL != "http://desk.invalid:9999" {
		t.Errorf("BaseURL = %q, want env override", cfg.API.BaseURL)
	}
}

func TestExpandVariables(t *testing.T) {
	t.Setenv("HOME", "/home/analyst")
	path := filepath.Join(t.TempDir(), "helpdesk.yaml")
	content := `
paths:
  state: ${HOME}/helpdesk-state
  session_file: ${UNSET_VAR:-/tmp/session.json}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Paths.State != "/home/analyst/helpdesk-state" {
		t.Errorf("State = %q", cfg.Paths.State)
	}
	if cfg.Paths.SessionFile != "/tmp/session.json" {
		t.Errorf("SessionFile = %q", cfg.Paths.SessionFile)
	}
}

func TestValidateRejectsMissingFields(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil for empty config")
	}
}

func TestLoadFileMissingFile(t *testing.T) {
	if _, err := LoadFile("/nonexistent/helpdesk.yaml"); err == nil {
		t.Fatal("LoadFile on missing file = nil error")
	}
}
