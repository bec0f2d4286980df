// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/pcte/helpdesk/lib/api"
	"github.com/pcte/helpdesk/lib/httpx"
	"github.com/pcte/helpdesk/lib/session"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sessions := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	if err := sessions.Save(&session.Session{
		Username:    "admin1",
		Role:        session.RoleAdministrator,
		AccessToken: "tok",
		SessionID:   "sess-t",
	}); err != nil {
		t.Fatal(err)
	}
	client := api.NewForTesting(server.URL, http.DefaultTransport, sessions)
	return NewService(client, sessions, nil)
}

func TestList(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/tickets" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`[
			{"id": "t1", "status": "OPEN", "severity": "HIGH", "tier": "TIER_1",
			 "ai_results": {"subject": "Range VM frozen", "tags": ["vm"]}},
			{"id": "t2", "status": "RESOLVED", "severity": "LOW", "tier": "TIER_0"}
		]`))
	})

	tickets, err := service.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tickets) != 2 {
		t.Fatalf("tickets = %d", len(tickets))
	}
	if tickets[0].AIResults == nil || tickets[0].AIResults.Subject != "Range VM frozen" {
		t.Errorf("ticket 0 = %+v", tickets[0])
	}
}

func TestUpdateSendsOnlySetFields(t *testing.T) {
	var body map[string]any
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/tickets/t1" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		if err := httpx.DecodeBody(r.Body, &body); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		w.Write([]byte(`{"id": "t1", "status": "RESOLVED", "severity": "HIGH", "tier": "TIER_1"}`))
	})

	_, err := service.ApplyUpdate(context.Background(), "t1", Update{Status: "RESOLVED"})
	if err != nil {
		t.Fatalf("ApplyUpdate: %v", err)
	}
	if len(body) != 1 {
		t.Errorf("body = %v, want only status", body)
	}
	if body["status"] != "RESOLVED" {
		t.Errorf("status = %v", body["status"])
	}
}

func TestUpdateRejectedSurfacesDetail(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"detail":"Cyber Operator cannot change tier"}`))
	})

	_, err := service.ApplyUpdate(context.Background(), "t1", Update{Tier: "TIER_2"})
	if err == nil {
		t.Fatal("rejected update = nil error")
	}
	want := "updating ticket t1: HTTP 403: Cyber Operator cannot change tier"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err, want)
	}
}

func TestCreateAttachesSessionIdentity(t *testing.T) {
	var body map[string]any
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if err := httpx.DecodeBody(r.Body, &body); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": "t9"}`))
	})

	ticket, err := service.Create(context.Background(), CreateRequest{Description: "console dead"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ticket.ID != "t9" {
		t.Errorf("id = %q", ticket.ID)
	}
	if body["session_id"] != "sess-t" || body["user_role"] != session.RoleAdministrator {
		t.Errorf("identity = %v / %v", body["session_id"], body["user_role"])
	}
}

func TestDelete(t *testing.T) {
	var method, path string
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	if err := service.Delete(context.Background(), "t3"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if method != http.MethodDelete || path != "/api/tickets/t3" {
		t.Errorf("request = %s %s", method, path)
	}
}
