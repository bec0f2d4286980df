// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

// Package localstore persists small JSON documents under the state
// directory. The chat panel uses it to carry the transcript and
// conversation context across restarts.
//
// Persistence here is intentionally non-fatal: a missing or corrupt
// file loads as empty, and write failures are logged at debug level
// and swallowed. Losing a cached transcript is an inconvenience;
// refusing to start over it would not be.
package localstore

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
)

// File names for the chat panel's persisted state.
const (
	// MessagesFile holds the chat transcript.
	MessagesFile = "messages.json"

	// ContextFile holds the conversation context (active script,
	// pending ticket state, escalation flags).
	ContextFile = "context.json"
)

// Store reads and writes JSON documents as files in one directory.
type Store struct {
	dir    string
	logger *slog.Logger
}

// New creates a Store rooted at dir. The directory is created on the
// first Save, not here. A nil logger falls back to slog.Default.
func New(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{dir: dir, logger: logger}
}

// Dir returns the directory this store writes under.
func (s *Store) Dir() string {
	return s.dir
}

// Load reads the named document into v. Returns false when the file is
// missing or unparseable, leaving v untouched; callers treat false as
// "start empty".
func (s *Store) Load(name string, v any) bool {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Debug("local state unreadable, starting empty", "path", path, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Debug("local state corrupt, starting empty", "path", path, "error", err)
		return false
	}
	return true
}

// Save writes v as the named document. Best-effort: failures are
// logged at debug level and swallowed.
func (s *Store) Save(name string, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		s.logger.Debug("local state not saved", "name", name, "error", err)
		return
	}
	data = append(data, '\n')

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		s.logger.Debug("local state dir not created", "dir", s.dir, "error", err)
		return
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		s.logger.Debug("local state not saved", "path", path, "error", err)
	}
}

// Remove deletes the named document. Removing an absent file is not an
// error; other failures are logged at debug level and swallowed.
func (s *Store) Remove(name string) {
	path := filepath.Join(s.dir, name)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Debug("local state not removed", "path", path, "error", err)
	}
}
