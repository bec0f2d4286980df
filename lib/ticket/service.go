// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pcte/helpdesk/lib/api"
	"github.com/pcte/helpdesk/lib/httpx"
	"github.com/pcte/helpdesk/lib/session"
)

// Service wraps the backend ticket endpoints. Mutations do not update
// anything locally; callers re-fetch the list afterwards so the
// dashboard always shows the backend's view.
type Service struct {
	client   *api.Client
	sessions *session.Store
	logger   *slog.Logger
}

// NewService creates a Service over the given API client and session
// store. A nil logger falls back to slog.Default.
func NewService(client *api.Client, sessions *session.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{client: client, sessions: sessions, logger: logger}
}

// List fetches all tickets visible to the signed-in user.
func (s *Service) List(ctx context.Context) ([]Ticket, error) {
	response, err := s.client.Get(ctx, "/api/tickets")
	if err != nil {
		return nil, fmt.Errorf("listing tickets: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing tickets: %w", api.StatusError(response))
	}

	var tickets []Ticket
	if err := httpx.DecodeBody(response.Body, &tickets); err != nil {
		return nil, fmt.Errorf("listing tickets: %w", err)
	}
	return tickets, nil
}

// Get fetches one ticket by ID.
func (s *Service) Get(ctx context.Context, id string) (*Ticket, error) {
	response, err := s.client.Get(ctx, "/api/tickets/"+id)
	if err != nil {
		return nil, fmt.Errorf("fetching ticket %s: %w", id, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching ticket %s: %w", id, api.StatusError(response))
	}

	var ticket Ticket
	if err := httpx.DecodeBody(response.Body, &ticket); err != nil {
		return nil, fmt.Errorf("fetching ticket %s: %w", id, err)
	}
	return &ticket, nil
}

// Create files a new ticket, attaching the signed-in session's
// identity the way the chat panel does.
func (s *Service) Create(ctx context.Context, request CreateRequest) (*Ticket, error) {
	if current := s.sessions.Current(); current != nil {
		request.SessionID = current.SessionID
		request.UserRole = current.Role
	}

	response, err := s.client.Post(ctx, "/api/tickets", request)
	if err != nil {
		return nil, fmt.Errorf("creating ticket: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK && response.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("creating ticket: %w", api.StatusError(response))
	}

	var ticket Ticket
	if err := httpx.DecodeBody(response.Body, &ticket); err != nil {
		return nil, fmt.Errorf("creating ticket: %w", err)
	}
	return &ticket, nil
}

// ApplyUpdate sends a partial edit. Fields left empty in the update
// are not sent, so the backend keeps their current values.
func (s *Service) ApplyUpdate(ctx context.Context, id string, update Update) (*Ticket, error) {
	response, err := s.client.Put(ctx, "/api/tickets/"+id, update)
	if err != nil {
		return nil, fmt.Errorf("updating ticket %s: %w", id, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("updating ticket %s: %w", id, api.StatusError(response))
	}

	var ticket Ticket
	if err := httpx.DecodeBody(response.Body, &ticket); err != nil {
		return nil, fmt.Errorf("updating ticket %s: %w", id, err)
	}
	return &ticket, nil
}

// Delete removes a ticket. Administrator only; the backend enforces
// this and the dashboard hides the control from everyone else.
func (s *Service) Delete(ctx context.Context, id string) error {
	response, err := s.client.Delete(ctx, "/api/tickets/"+id)
	if err != nil {
		return fmt.Errorf("deleting ticket %s: %w", id, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK && response.StatusCode != http.StatusNoContent {
		return fmt.Errorf("deleting ticket %s: %w", id, api.StatusError(response))
	}
	return nil
}
