// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import "time"

// Author identifies who produced a message.
type Author string

const (
	// AuthorUser is the signed-in person typing into the panel.
	AuthorUser Author = "user"

	// AuthorAssistant is the AI assistant.
	AuthorAssistant Author = "assistant"

	// AuthorAgent is a (simulated) live human agent joining after an
	// escalation.
	AuthorAgent Author = "agent"
)

// Sentiment is the assistant's read of a message's tone.
type Sentiment struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Guardrail reports whether the backend's content guardrail blocked a
// response, and why.
type Guardrail struct {
	Blocked bool   `json:"blocked"`
	Reason  string `json:"reason,omitempty"`
}

// KBReference points at a knowledge-base article the answer drew on.
type KBReference struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Message is one entry in the chat transcript. Messages are persisted
// across restarts; the transient presentation flags are not.
type Message struct {
	ID        string    `json:"id"`
	Author    Author    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`

	Confidence float64    `json:"confidence,omitempty"`
	Sentiment  *Sentiment `json:"sentiment,omitempty"`
	Tier       string     `json:"tier,omitempty"`
	Severity   string     `json:"severity,omitempty"`
	Guardrail  *Guardrail `json:"guardrail,omitempty"`
	TicketID   string     `json:"ticket_id,omitempty"`
	Source     string     `json:"source,omitempty"`

	// AgentName and AgentTier are set on agent messages only.
	AgentName string `json:"agent_name,omitempty"`
	AgentTier string `json:"agent_tier,omitempty"`

	// Typing marks a message still being "typed out" by the panel.
	// Analyzing and Processing mark the short-lived placeholder
	// messages shown while a turn is in flight. None of these survive
	// a restart.
	Typing     bool `json:"-"`
	Analyzing  bool `json:"-"`
	Processing bool `json:"-"`
}

// Context is the conversation state carried between turns and
// persisted alongside the transcript.
type Context struct {
	ActiveScriptID          string `json:"active_script_id,omitempty"`
	CurrentStepIndex        int    `json:"current_step_index,omitempty"`
	UnresolvedAttempts      int    `json:"unresolved_attempts,omitempty"`
	LastTicketID            string `json:"last_ticket_id,omitempty"`
	WaitingForTicketDetails bool   `json:"waiting_for_ticket_details,omitempty"`
	TicketCreated           bool   `json:"ticket_created,omitempty"`
	AgentActive             bool   `json:"agent_active,omitempty"`
}

// EscalationPhase names a stage of the live-agent handoff.
type EscalationPhase string

const (
	PhaseSearching  EscalationPhase = "searching"
	PhaseConnecting EscalationPhase = "connecting"
	PhasePending    EscalationPhase = "pending"
	PhaseEscalating EscalationPhase = "escalating"
	PhaseConnected  EscalationPhase = "connected"
	PhaseActive     EscalationPhase = "active"
)

// EscalationStatus drives the banner above the input while a handoff
// is in progress. Transient: never persisted.
type EscalationStatus struct {
	Phase  EscalationPhase
	Banner string
}

// CreatedTicket describes a ticket synthesized by the scripted
// creation and escalation flows. Delivered through the ticket-created
// callback so the dashboard can refresh.
type CreatedTicket struct {
	ID          string
	Priority    string
	Status      string
	Subject     string
	Description string
	Escalated   bool
}
