// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"strings"
	"time"
)

// NormalizeStatus maps a raw backend status to its display form.
// CLOSED collapses into Resolved; unknown values pass through and an
// empty value defaults to Open.
func NormalizeStatus(raw string) string {
	switch strings.ToUpper(raw) {
	case StatusOpen:
		return "Open"
	case StatusInProgress:
		return "In Progress"
	case StatusResolved, StatusClosed:
		return "Resolved"
	}
	if raw == "" {
		return "Open"
	}
	return raw
}

// NormalizePriority maps a raw backend severity to its display form.
// Empty defaults to Medium.
func NormalizePriority(raw string) string {
	switch strings.ToUpper(raw) {
	case SeverityLow:
		return "Low"
	case SeverityMedium:
		return "Medium"
	case SeverityHigh:
		return "High"
	case SeverityCritical:
		return "Critical"
	}
	if raw == "" {
		return "Medium"
	}
	return raw
}

// NormalizeTier maps a raw backend tier to its display form. Empty
// defaults to Tier 0.
func NormalizeTier(raw string) string {
	switch strings.ToUpper(raw) {
	case Tier0:
		return "Tier 0"
	case Tier1:
		return "Tier 1"
	case Tier2:
		return "Tier 2"
	}
	if raw == "" {
		return "Tier 0"
	}
	return raw
}

// AtRisk reports whether a severity puts the ticket's SLA at risk.
func AtRisk(severity string) bool {
	upper := strings.ToUpper(severity)
	return upper == SeverityHigh || upper == SeverityCritical
}

// Entry is a ticket prepared for the dashboard: display strings for
// the table plus the raw values the edit dropdowns need.
type Entry struct {
	ID    string
	Title string

	Status      string
	RawStatus   string
	Priority    string
	RawSeverity string
	Tier        string
	RawTier     string

	Tags      []Tag
	Sentiment string
	KBMatch   string
	AtRisk    bool
	CreatedAt time.Time
	UserRole  string
	SessionID string
}

// Display converts a wire ticket into a dashboard entry, filling
// defaults for absent fields.
func Display(t Ticket) Entry {
	entry := Entry{
		ID:          t.ID,
		Title:       "Support Request",
		Status:      NormalizeStatus(t.Status),
		RawStatus:   defaulted(t.Status, StatusOpen),
		Priority:    NormalizePriority(t.Severity),
		RawSeverity: defaulted(t.Severity, SeverityMedium),
		Tier:        NormalizeTier(t.Tier),
		RawTier:     defaulted(t.Tier, Tier0),
		Sentiment:   "Neutral",
		KBMatch:     "—",
		AtRisk:      AtRisk(t.Severity),
		CreatedAt:   t.CreatedAt,
		UserRole:    t.UserRole,
		SessionID:   t.SessionID,
	}
	if results := t.AIResults; results != nil {
		if results.Subject != "" {
			entry.Title = results.Subject
		} else if results.Title != "" {
			entry.Title = results.Title
		}
		entry.Tags = results.Tags
		if results.Sentiment != "" {
			entry.Sentiment = results.Sentiment
		}
		if results.KBMatch != "" {
			entry.KBMatch = results.KBMatch
		}
	}
	return entry
}

// DisplayAll converts a fetched ticket list.
func DisplayAll(tickets []Ticket) []Entry {
	entries := make([]Entry, len(tickets))
	for i, t := range tickets {
		entries[i] = Display(t)
	}
	return entries
}

func defaulted(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
