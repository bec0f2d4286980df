// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

// Package metrics wraps the backend metrics endpoints and reshapes the
// trend payload for the analytics view: per-date category maps are
// aggregated into ranked totals, query topics get a trend flag, and
// conversation volumes are flattened into one series.
package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"github.com/pcte/helpdesk/lib/api"
	"github.com/pcte/helpdesk/lib/httpx"
)

// Service wraps the backend metrics endpoints.
type Service struct {
	client *api.Client
	logger *slog.Logger
}

// NewService creates a Service over the given API client. A nil logger
// falls back to slog.Default.
func NewService(client *api.Client, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{client: client, logger: logger}
}

// ConversationTotals are the lifetime conversation counters in the
// summary.
type ConversationTotals struct {
	Sessions int `json:"sessions"`
	Messages int `json:"messages"`
}

// Summary is the headline metrics snapshot. ResolvedTickets carries
// the backend's closedTickets counter under the name the UI uses.
type Summary struct {
	TotalTickets         int                `json:"totalTickets"`
	OpenTickets          int                `json:"openTickets"`
	ResolvedTickets      int                `json:"closedTickets"`
	TicketsBySeverity    map[string]int     `json:"ticketsBySeverity"`
	TicketsByTier        map[string]int     `json:"ticketsByTier"`
	GuardrailActivations int                `json:"guardrailActivations"`
	Escalations          int                `json:"escalations"`
	Conversations        ConversationTotals `json:"conversationVolumes"`
	DeflectionRate       float64            `json:"deflectionRate"`
}

// FetchSummary retrieves the headline metrics.
func (s *Service) FetchSummary(ctx context.Context) (*Summary, error) {
	response, err := s.client.Get(ctx, "/api/metrics/summary")
	if err != nil {
		return nil, fmt.Errorf("fetching metrics summary: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching metrics summary: %w", api.StatusError(response))
	}

	var summary Summary
	if err := httpx.DecodeBody(response.Body, &summary); err != nil {
		return nil, fmt.Errorf("fetching metrics summary: %w", err)
	}
	return &summary, nil
}

// SeriesPoint is one day of a count series.
type SeriesPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// CategoryCount is a category's total across the reporting window.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// QueryTopic is a ranked category with a coarse trend flag.
type QueryTopic struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Trend    string `json:"trend"`
}

// VolumePoint is one day of conversation volume. Resolved and
// escalated splits are zero until the backend reports them.
type VolumePoint struct {
	Date      string `json:"date"`
	Total     int    `json:"total"`
	Resolved  int    `json:"resolved"`
	Escalated int    `json:"escalated"`
}

// Trends is the reshaped trend payload the analytics view renders.
type Trends struct {
	DailyVolumes        []SeriesPoint
	GuardrailTrend      []SeriesPoint
	EscalationTrend     []SeriesPoint
	TopCategories       []CategoryCount
	QueryTopics         []QueryTopic
	ConversationVolumes []VolumePoint
}

// trendsWire is the backend's trend payload before reshaping.
type trendsWire struct {
	Tickets         []SeriesPoint `json:"tickets"`
	Guardrails      []SeriesPoint `json:"guardrails"`
	Escalations     []SeriesPoint `json:"escalations"`
	IssueCategories []struct {
		Date       string         `json:"date"`
		Categories map[string]int `json:"categories"`
	} `json:"issueCategories"`
	ConversationVolumes struct {
		Sessions []SeriesPoint `json:"sessions"`
		Messages []SeriesPoint `json:"messages"`
	} `json:"conversationVolumes"`
}

// FetchTrends retrieves and reshapes the trend series.
func (s *Service) FetchTrends(ctx context.Context) (*Trends, error) {
	response, err := s.client.Get(ctx, "/api/metrics/trends")
	if err != nil {
		return nil, fmt.Errorf("fetching metrics trends: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching metrics trends: %w", api.StatusError(response))
	}

	var wire trendsWire
	if err := httpx.DecodeBody(response.Body, &wire); err != nil {
		return nil, fmt.Errorf("fetching metrics trends: %w", err)
	}
	return reshapeTrends(wire), nil
}

func reshapeTrends(wire trendsWire) *Trends {
	perDate := make([]map[string]int, len(wire.IssueCategories))
	for i, day := range wire.IssueCategories {
		perDate[i] = day.Categories
	}
	top := AggregateCategories(perDate)

	volumes := make([]VolumePoint, len(wire.ConversationVolumes.Sessions))
	for i, point := range wire.ConversationVolumes.Sessions {
		volumes[i] = VolumePoint{Date: point.Date, Total: point.Count}
	}

	return &Trends{
		DailyVolumes:        wire.Tickets,
		GuardrailTrend:      wire.Guardrails,
		EscalationTrend:     wire.Escalations,
		TopCategories:       top,
		QueryTopics:         TopicsFromCategories(top),
		ConversationVolumes: volumes,
	}
}

// AggregateCategories sums per-date category maps into one ranked
// list, descending by count. Ties order alphabetically so the ranking
// is deterministic.
func AggregateCategories(perDate []map[string]int) []CategoryCount {
	totals := make(map[string]int)
	for _, categories := range perDate {
		for category, count := range categories {
			totals[category] += count
		}
	}

	ranked := make([]CategoryCount, 0, len(totals))
	for category, count := range totals {
		ranked = append(ranked, CategoryCount{Category: category, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Category < ranked[j].Category
	})
	return ranked
}

// TopicsFromCategories derives query topics from the ranked
// categories: the top half trends "up", the rest "flat".
func TopicsFromCategories(ranked []CategoryCount) []QueryTopic {
	topics := make([]QueryTopic, len(ranked))
	for i, item := range ranked {
		trend := "flat"
		if float64(i) < float64(len(ranked))/2 {
			trend = "up"
		}
		topics[i] = QueryTopic{Category: item.Category, Count: item.Count, Trend: trend}
	}
	return topics
}
