// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"encoding/json"
	"time"
)

// Raw field values used by the backend. The dashboard edits tickets in
// these terms; display normalization is separate.
const (
	StatusOpen       = "OPEN"
	StatusInProgress = "IN_PROGRESS"
	StatusResolved   = "RESOLVED"
	StatusClosed     = "CLOSED"

	SeverityLow      = "LOW"
	SeverityMedium   = "MEDIUM"
	SeverityHigh     = "HIGH"
	SeverityCritical = "CRITICAL"

	Tier0 = "TIER_0"
	Tier1 = "TIER_1"
	Tier2 = "TIER_2"
)

// Tag is an AI-assigned label with a confidence percentage. The
// backend sends either a bare string or an object; a bare string gets
// a default confidence of 90.
type Tag struct {
	Label      string `json:"label"`
	Confidence int    `json:"confidence"`
}

// UnmarshalJSON accepts both the string and the object form.
func (t *Tag) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		t.Label = label
		t.Confidence = 90
		return nil
	}
	type wireTag Tag
	return json.Unmarshal(data, (*wireTag)(t))
}

// AIResults is the backend's AI enrichment attached to a ticket.
type AIResults struct {
	Subject   string `json:"subject,omitempty"`
	Title     string `json:"title,omitempty"`
	Tags      []Tag  `json:"tags,omitempty"`
	Sentiment string `json:"sentiment,omitempty"`
	KBMatch   string `json:"kb_match,omitempty"`
}

// Ticket is the backend's wire representation of a support ticket.
type Ticket struct {
	ID        string     `json:"id"`
	SessionID string     `json:"session_id,omitempty"`
	Tier      string     `json:"tier"`
	Severity  string     `json:"severity"`
	Status    string     `json:"status"`
	UserRole  string     `json:"user_role,omitempty"`
	AIResults *AIResults `json:"ai_results,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Update is a partial ticket edit for PUT /api/tickets/{id}. Empty
// fields are omitted from the request so the backend leaves them
// unchanged.
type Update struct {
	Status   string `json:"status,omitempty"`
	Tier     string `json:"tier,omitempty"`
	Severity string `json:"severity,omitempty"`
}

// CreateRequest is the JSON body for POST /api/tickets. The service
// fills in the session identity.
type CreateRequest struct {
	Subject     string `json:"subject,omitempty"`
	Description string `json:"description,omitempty"`
	Severity    string `json:"severity,omitempty"`
	Tier        string `json:"tier,omitempty"`
	SessionID   string `json:"session_id"`
	UserRole    string `json:"user_role"`
}
