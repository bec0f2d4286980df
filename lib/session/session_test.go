// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "session.json")
	store := NewStore(path)

	sess := &Session{
		Username:    "analyst1",
		Name:        "Jordan Fields",
		Role:        RoleHelpDeskAnalyst,
		AccessToken: "tok-abc123",
		SessionID:   "sess-789",
	}
	if err := store.Save(sess); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// A fresh store reading the same file sees the same session.
	reloaded := NewStore(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := reloaded.Current()
	if got == nil {
		t.Fatal("Current = nil after Load")
	}
	if got.Username != "analyst1" || got.Role != RoleHelpDeskAnalyst {
		t.Errorf("Current = %+v", got)
	}
	if reloaded.Token() != "tok-abc123" {
		t.Errorf("Token = %q", reloaded.Token())
	}
}

func TestStoreFilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "session.json")
	store := NewStore(path)
	if err := store.Save(&Session{AccessToken: "tok"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("session file mode = %o, want 0600", perm)
	}
	dirInfo, err := os.Stat(filepath.Dir(path))
	if err != nil {
		t.Fatalf("Stat dir: %v", err)
	}
	if perm := dirInfo.Mode().Perm(); perm != 0700 {
		t.Errorf("session directory mode = %o, want 0700", perm)
	}
}

func TestLoadMissingFileMeansSignedOut(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent.json"))
	if err := store.Load(); err != nil {
		t.Fatalf("Load of absent file: %v", err)
	}
	if store.Current() != nil {
		t.Error("Current != nil for absent session file")
	}
	if store.Token() != "" {
		t.Errorf("Token = %q for absent session file", store.Token())
	}
}

func TestLoadCorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := NewStore(path).Load(); err == nil {
		t.Fatal("Load of corrupt file = nil error")
	}
}

func TestLoadTokenlessFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte(`{"role":"Trainee"}`), 0600); err != nil {
		t.Fatal(err)
	}
	if err := NewStore(path).Load(); err == nil {
		t.Fatal("Load of tokenless file = nil error")
	}
}

func TestClearRemovesFileAndMemory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(path)
	if err := store.Save(&Session{AccessToken: "tok"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if store.Current() != nil {
		t.Error("Current != nil after Clear")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("session file still present after Clear: %v", err)
	}

	// Clearing twice is fine.
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}

func TestCurrentReturnsCopy(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session.json"))
	if err := store.Save(&Session{AccessToken: "tok", Role: RoleTrainee}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	first := store.Current()
	first.Role = RoleAdministrator
	if store.Current().Role != RoleTrainee {
		t.Error("mutating Current() result changed the stored session")
	}
}
