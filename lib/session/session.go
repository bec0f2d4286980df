// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Session holds the signed-in user's authentication state. Stored at
// the configured session file path and loaded on startup by every
// command that talks to the backend. Analogous to SSH keys — set up
// once via "helpdesk login", then transparent.
type Session struct {
	// Username is the login name the session was created with.
	Username string `json:"username"`

	// Name is the display name shown in the UI header.
	Name string `json:"name,omitempty"`

	// Role is the display role driving permission checks
	// (e.g. "Administrator", "Help Desk Analyst").
	Role string `json:"role"`

	// AccessToken is the bearer token attached to every API request.
	AccessToken string `json:"access_token"`

	// SessionID identifies the backend chat session tickets and chat
	// turns are attributed to.
	SessionID string `json:"session_id"`
}

// Store owns the session file and the in-memory copy of the session.
// It is constructed once in main and passed by reference to every
// consumer (API client, panels) — there is no package-global session.
//
// Store is safe for concurrent use: the API client reads the token
// from request goroutines while the UI thread may be logging out.
type Store struct {
	mu      sync.RWMutex
	path    string
	current *Session
}

// NewStore creates a Store bound to the given session file path. The
// file is not touched until Load or Save.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load hydrates the store from disk. A missing file is not an error —
// it means signed out, and Current returns nil. A present-but-invalid
// file is an error: silently discarding a corrupt token would turn
// every subsequent API call into a confusing 401.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading session file %s: %w", s.path, err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return fmt.Errorf("parsing session file %s: %w", s.path, err)
	}
	if sess.AccessToken == "" {
		return fmt.Errorf("session file %s has no access_token — run \"helpdesk login\" again", s.path)
	}

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()
	return nil
}

// Save stores the session in memory and writes it to disk. The parent
// directory is created with mode 0700 and the file with 0600 — it
// contains a bearer token.
func (s *Store) Save(sess *Session) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	data = append(data, '\n')

	directory := filepath.Dir(s.path)
	if err := os.MkdirAll(directory, 0700); err != nil {
		return fmt.Errorf("creating session directory %s: %w", directory, err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("writing session file %s: %w", s.path, err)
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
	return nil
}

// Clear signs out: drops the in-memory session and removes the session
// file. Removing an already-absent file is not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file %s: %w", s.path, err)
	}
	return nil
}

// Current returns the signed-in session, or nil when signed out. The
// returned value is a copy; mutating it does not affect the store.
func (s *Store) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	copied := *s.current
	return &copied
}

// Token returns the current bearer token, or "" when signed out. This
// is the API client's TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.AccessToken
}
