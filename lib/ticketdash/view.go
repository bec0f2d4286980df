// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package ticketdash

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/pcte/helpdesk/lib/session"
	"github.com/pcte/helpdesk/lib/ticket"
	"github.com/pcte/helpdesk/lib/tui"
)

// Fixed row positions within the panel.
const (
	statsBarY   = 0
	filterBarY  = 1
	tableHeadY  = 2
	firstRowY   = 3
	footerLines = 1
)

// detailFieldY maps an editable field to its row in the detail view,
// used to anchor the editor dropdown.
func detailFieldY(field string) int {
	switch field {
	case "status":
		return 2
	case "priority":
		return 3
	case "tier":
		return 4
	}
	return 2
}

func (model Model) tableHeight() int {
	height := model.height - firstRowY - footerLines
	if height < 1 {
		height = 1
	}
	return height
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return ""
	}

	var view string
	if model.detail != nil {
		view = model.viewDetail()
	} else {
		view = model.viewTable()
	}

	if model.dropdown != nil {
		view = tui.SpliceOverlay(view, model.dropdown.Render(model.theme),
			model.dropdown.AnchorX, model.dropdown.AnchorY)
	}
	return view
}

// ── Table view ──

func (model Model) viewTable() string {
	lines := []string{model.viewStats(), model.viewFilterBar(), model.viewTableHeader()}

	switch {
	case model.loading:
		lines = append(lines, model.faint("Loading tickets..."))
	case model.loadError != "":
		lines = append(lines, lipgloss.NewStyle().Foreground(model.theme.BannerError).
			Render("Error: "+model.loadError)+"  "+model.faint("(r to retry)"))
	case len(model.entries) == 0:
		lines = append(lines, model.faint("No tickets match the current filters."))
	default:
		visible := model.tableHeight()
		end := model.scrollOffset + visible
		if end > len(model.entries) {
			end = len(model.entries)
		}
		for i := model.scrollOffset; i < end; i++ {
			lines = append(lines, model.viewRow(model.entries[i], i == model.cursor))
		}
	}

	for len(lines) < model.height-footerLines {
		lines = append(lines, "")
	}
	lines = append(lines, model.helpLine("Enter detail · t/s/p filter · r refresh"))
	return strings.Join(lines, "\n")
}

func (model Model) viewStats() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(model.theme.Accent).Render("Ticket Dashboard")
	stats := fmt.Sprintf("  Total %d · At Risk %d · Tier 0 %d%% · Tier 1 %d%% · Tier 2 %d%%",
		model.stats.Total, model.stats.AtRisk,
		model.stats.Tier0Pct, model.stats.Tier1Pct, model.stats.Tier2Pct)
	atRiskStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	if model.stats.AtRisk > 0 {
		atRiskStyle = atRiskStyle.Foreground(model.theme.SeverityHigh)
	}
	return title + atRiskStyle.Render(stats)
}

func (model Model) viewFilterBar() string {
	segment := func(label, value string) string {
		if value == "" {
			value = ticket.FilterAll
		}
		style := lipgloss.NewStyle().Foreground(model.theme.FaintText)
		if value != ticket.FilterAll {
			style = lipgloss.NewStyle().Foreground(model.theme.Accent)
		}
		return label + " " + style.Render(value)
	}
	return "  " + segment("Tier:", model.filter.Tier) +
		"   " + segment("Status:", model.filter.Status) +
		"   " + segment("Priority:", model.filter.Priority)
}

// Column widths for the ticket table. Title flexes with the terminal.
const (
	colID        = 10
	colStatus    = 12
	colPriority  = 9
	colTier      = 7
	colSentiment = 11
)

func (model Model) titleWidth() int {
	width := model.width - colID - colStatus - colPriority - colTier - colSentiment - 12
	if width < 12 {
		width = 12
	}
	return width
}

func (model Model) viewTableHeader() string {
	header := fmt.Sprintf("  %-*s  %-*s  %-*s  %-*s  %-*s  %s",
		colID, "ID", model.titleWidth(), "TITLE", colStatus, "STATUS",
		colPriority, "PRIORITY", colTier, "TIER", "SENTIMENT")
	return lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground).Render(header)
}

func (model Model) viewRow(entry ticket.Entry, selected bool) string {
	marker := "  "
	if entry.AtRisk {
		marker = lipgloss.NewStyle().Foreground(model.theme.SeverityCritical).Render("⚠ ")
	}

	title := ansi.Truncate(entry.Title, model.titleWidth(), "…")
	status := lipgloss.NewStyle().Foreground(model.theme.StatusColor(entry.Status)).
		Render(fmt.Sprintf("%-*s", colStatus, entry.Status))
	priority := lipgloss.NewStyle().Foreground(model.theme.SeverityColor(entry.Priority)).
		Render(fmt.Sprintf("%-*s", colPriority, entry.Priority))
	sentiment := lipgloss.NewStyle().Foreground(model.theme.SentimentColor(entry.Sentiment)).
		Render(entry.Sentiment)

	row := fmt.Sprintf("%s%-*s  %-*s  %s  %s  %-*s  %s",
		marker, colID, entry.ID, model.titleWidth(), title,
		status, priority, colTier, entry.Tier, sentiment)

	if selected {
		return lipgloss.NewStyle().
			Background(model.theme.SelectedBackground).
			Foreground(model.theme.SelectedForeground).
			Render(ansi.Strip(row))
	}
	return row
}

// ── Detail view ──

func (model Model) viewDetail() string {
	detail := model.detail
	entry := detail.entry

	field := func(label, value string, color lipgloss.Color) string {
		labelStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText).Width(12)
		return "  " + labelStyle.Render(label) +
			lipgloss.NewStyle().Foreground(color).Render(value)
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(model.theme.Accent).
		Render(entry.ID) + "  " +
		lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground).
			Render(ansi.Truncate(entry.Title, model.width-14, "…"))

	lines := []string{
		title,
		"",
		field("Status", entry.Status, model.theme.StatusColor(entry.Status)),
		field("Priority", entry.Priority, model.theme.SeverityColor(entry.Priority)),
		field("Tier", entry.Tier, model.theme.NormalText),
		field("Sentiment", entry.Sentiment, model.theme.SentimentColor(entry.Sentiment)),
		field("KB Match", entry.KBMatch, model.theme.NormalText),
	}
	if len(entry.Tags) > 0 {
		labels := make([]string, len(entry.Tags))
		for i, tag := range entry.Tags {
			labels[i] = fmt.Sprintf("%s (%d%%)", tag.Label, tag.Confidence)
		}
		lines = append(lines, field("Tags", strings.Join(labels, ", "), model.theme.NormalText))
	}
	if !entry.CreatedAt.IsZero() {
		lines = append(lines, field("Created", entry.CreatedAt.Format("2006-01-02 15:04"), model.theme.FaintText))
	}
	if entry.AtRisk {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(model.theme.SeverityCritical).
			Render("  ⚠ SLA at risk"))
	}

	switch {
	case detail.confirmDelete:
		lines = append(lines, "", lipgloss.NewStyle().Bold(true).Foreground(model.theme.BannerError).
			Render(fmt.Sprintf("  Delete ticket %s? (y/n)", entry.ID)))
	case detail.saving:
		lines = append(lines, "", model.faint("  Saving..."))
	case detail.errorText != "":
		lines = append(lines, "", lipgloss.NewStyle().Foreground(model.theme.BannerError).
			Render("  "+detail.errorText))
	}

	for len(lines) < model.height-footerLines {
		lines = append(lines, "")
	}
	lines = append(lines, model.helpLine(model.detailHelp()))
	return strings.Join(lines, "\n")
}

// detailHelp lists only the actions the signed-in role may take.
func (model Model) detailHelp() string {
	parts := []string{"Esc back"}
	if session.CanUpdateTickets(model.role) {
		parts = append(parts, "s status", "p priority")
		if session.CanChangeTier(model.role) {
			parts = append(parts, "t tier")
		}
	}
	if session.CanDeleteTickets(model.role) {
		parts = append(parts, "x delete")
	}
	return strings.Join(parts, " · ")
}

func (model Model) helpLine(text string) string {
	return lipgloss.NewStyle().Foreground(model.theme.HelpText).Render("  " + text)
}

func (model Model) faint(text string) string {
	return lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(text)
}
