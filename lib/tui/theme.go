// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the help-desk terminal UI. All
// colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility.
//
// The fields cover universal chrome (text, selection, borders) and the
// semantic categories the panels share: ticket severity, ticket
// status, and user sentiment.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Accent is the brand gold used for headers, the chat assistant,
	// and focused controls.
	Accent lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Severity colors by display name.
	SeverityCritical lipgloss.Color
	SeverityHigh     lipgloss.Color
	SeverityMedium   lipgloss.Color
	SeverityLow      lipgloss.Color

	// Status colors by display name.
	StatusOpen       lipgloss.Color
	StatusInProgress lipgloss.Color
	StatusResolved   lipgloss.Color

	// Sentiment colors by display name.
	SentimentFrustrated lipgloss.Color
	SentimentNeutral    lipgloss.Color
	SentimentSatisfied  lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Banner colors for escalation and insight alerts.
	BannerWarning lipgloss.Color
	BannerError   lipgloss.Color
	BannerSuccess lipgloss.Color
	BannerInfo    lipgloss.Color

	// Agent messages in the chat transcript.
	AgentForeground lipgloss.Color

	// Overlay (dropdown, modal) backgrounds.
	OverlayBackground lipgloss.Color
}

// SeverityColor returns the color for a display priority (Critical,
// High, Medium, Low). Unknown values return FaintText.
func (theme Theme) SeverityColor(priority string) lipgloss.Color {
	switch priority {
	case "Critical":
		return theme.SeverityCritical
	case "High":
		return theme.SeverityHigh
	case "Medium":
		return theme.SeverityMedium
	case "Low":
		return theme.SeverityLow
	default:
		return theme.FaintText
	}
}

// StatusColor returns the color for a display status (Open,
// In Progress, Resolved). Unknown values return FaintText.
func (theme Theme) StatusColor(status string) lipgloss.Color {
	switch status {
	case "Open":
		return theme.StatusOpen
	case "In Progress":
		return theme.StatusInProgress
	case "Resolved":
		return theme.StatusResolved
	default:
		return theme.FaintText
	}
}

// SentimentColor returns the color for a sentiment label. Unknown
// values return FaintText.
func (theme Theme) SentimentColor(sentiment string) lipgloss.Color {
	switch sentiment {
	case "Frustrated":
		return theme.SentimentFrustrated
	case "Neutral":
		return theme.SentimentNeutral
	case "Satisfied":
		return theme.SentimentSatisfied
	default:
		return theme.FaintText
	}
}

// DefaultTheme is the built-in dark-terminal scheme: gold accents over
// a dark background, matching the help-desk brand.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	Accent: lipgloss.Color("178"), // brand gold

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	SeverityCritical: lipgloss.Color("196"), // bright red
	SeverityHigh:     lipgloss.Color("208"), // orange
	SeverityMedium:   lipgloss.Color("220"), // amber
	SeverityLow:      lipgloss.Color("71"),  // green

	StatusOpen:       lipgloss.Color("208"), // orange
	StatusInProgress: lipgloss.Color("75"),  // blue
	StatusResolved:   lipgloss.Color("71"),  // green

	SentimentFrustrated: lipgloss.Color("196"),
	SentimentNeutral:    lipgloss.Color("208"),
	SentimentSatisfied:  lipgloss.Color("71"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	BannerWarning: lipgloss.Color("208"),
	BannerError:   lipgloss.Color("196"),
	BannerSuccess: lipgloss.Color("71"),
	BannerInfo:    lipgloss.Color("75"),

	AgentForeground: lipgloss.Color("114"), // green, distinct from the gold assistant

	OverlayBackground: lipgloss.Color("237"),
}
