// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pcte/helpdesk/lib/api"
	"github.com/pcte/helpdesk/lib/httpx"
	"github.com/pcte/helpdesk/lib/session"
)

// ErrorAnswer is the assistant body substituted when the backend is
// unreachable or rejects the turn.
const ErrorAnswer = "I'm having trouble connecting right now. Please try again shortly."

// TurnKind classifies a backend chat response. The raw wire shape is
// decoded exactly once, here; everything downstream switches on the
// kind instead of re-inspecting loose fields.
type TurnKind int

const (
	// TurnAnswer is a plain assistant answer.
	TurnAnswer TurnKind = iota

	// TurnEscalation means the backend decided a live agent is needed.
	TurnEscalation

	// TurnTicketDetailsRequest means the backend wants the user's next
	// message to be treated as ticket details.
	TurnTicketDetailsRequest

	// TurnError is a transport or server failure, carrying the fixed
	// apology answer.
	TurnError
)

// ContextPatch is the partial context update a backend response may
// carry. Pointer fields distinguish "absent" from zero.
type ContextPatch struct {
	ActiveScriptID     *string `json:"activeScriptId"`
	CurrentStepIndex   *int    `json:"currentStepIndex"`
	UnresolvedAttempts *int    `json:"unresolvedAttempts"`
	LastTicketID       string  `json:"lastTicketId"`
}

// TurnResult is one backend chat response, classified.
type TurnResult struct {
	Kind TurnKind

	Body       string
	Confidence float64
	Sentiment  Sentiment
	Tier       string
	Severity   string
	TicketID   string
	Guardrail  *Guardrail
	Source     string
	Options    []string
	Context    *ContextPatch
}

// Turner produces one classified backend response per user message.
// The conversation engine depends on this rather than the HTTP client
// so tests can script responses.
type Turner interface {
	Turn(ctx context.Context, message string) TurnResult
}

// Backend is the production Turner: POST /api/chat with the signed-in
// session's identity attached.
type Backend struct {
	client   *api.Client
	sessions *session.Store
	logger   *slog.Logger
}

// NewBackend creates a Backend over the given API client and session
// store. A nil logger falls back to slog.Default.
func NewBackend(client *api.Client, sessions *session.Store, logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{client: client, sessions: sessions, logger: logger}
}

// turnRequest is the JSON body for POST /api/chat.
type turnRequest struct {
	SessionID string      `json:"session_id"`
	Message   string      `json:"message"`
	UserRole  string      `json:"user_role"`
	UserID    string      `json:"user_id"`
	Context   turnContext `json:"context"`
}

type turnContext struct {
	Module  string `json:"module"`
	Channel string `json:"channel"`
}

// turnResponse is the wire shape of a backend chat response.
type turnResponse struct {
	Answer         string        `json:"answer"`
	KBReferences   []KBReference `json:"kb_references"`
	Confidence     *float64      `json:"confidence"`
	Tier           string        `json:"tier"`
	Severity       string        `json:"severity"`
	NeedEscalation bool          `json:"needEscalation"`
	Guardrail      *Guardrail    `json:"guardrail"`
	TicketID       string        `json:"ticketId"`
	Type           string        `json:"type"`
	Options        []string      `json:"options"`
	Context        *ContextPatch `json:"context"`
}

// Turn sends one user message to the backend and classifies the
// response. Failures never surface as errors: the panel shows the
// apology answer and the conversation continues, so a TurnError result
// carries everything the caller needs.
func (b *Backend) Turn(ctx context.Context, message string) TurnResult {
	request := turnRequest{Message: message}
	if current := b.sessions.Current(); current != nil {
		request.SessionID = current.SessionID
		request.UserRole = current.Role
		request.UserID = current.Username
	}

	response, err := b.client.Post(ctx, "/api/chat", request)
	if err != nil {
		b.logger.Warn("chat turn failed", "error", err)
		return errorResult()
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		b.logger.Warn("chat turn rejected", "error", api.StatusError(response))
		return errorResult()
	}

	var wire turnResponse
	if err := httpx.DecodeBody(response.Body, &wire); err != nil {
		b.logger.Warn("chat turn undecodable", "error", fmt.Errorf("decoding chat response: %w", err))
		return errorResult()
	}
	return classify(wire)
}

func errorResult() TurnResult {
	return TurnResult{
		Kind:       TurnError,
		Body:       ErrorAnswer,
		Confidence: 0,
		Sentiment:  Sentiment{Label: "negative", Score: 0.5},
		Guardrail:  &Guardrail{Blocked: false},
	}
}

func classify(wire turnResponse) TurnResult {
	result := TurnResult{
		Kind:      TurnAnswer,
		Body:      wire.Answer,
		Sentiment: Sentiment{Label: "neutral", Score: 0},
		Tier:      wire.Tier,
		Severity:  wire.Severity,
		TicketID:  wire.TicketID,
		Guardrail: wire.Guardrail,
		Options:   wire.Options,
		Context:   wire.Context,
	}
	if result.Guardrail == nil {
		result.Guardrail = &Guardrail{Blocked: false}
	}
	if wire.Confidence != nil {
		result.Confidence = *wire.Confidence
	} else {
		result.Confidence = 0.95
	}
	if len(wire.KBReferences) > 0 {
		result.Source = wire.KBReferences[0].Title
	}

	switch {
	case wire.NeedEscalation:
		result.Kind = TurnEscalation
	case wire.Type == "ticket_details_request":
		result.Kind = TurnTicketDetailsRequest
	}
	return result
}
