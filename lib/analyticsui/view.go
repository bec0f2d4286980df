// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package analyticsui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pcte/helpdesk/lib/metrics"
	"github.com/pcte/helpdesk/lib/tui"
)

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return ""
	}
	header := lipgloss.NewStyle().Bold(true).Foreground(model.theme.Accent).Render("Analytics")
	help := lipgloss.NewStyle().Foreground(model.theme.HelpText).
		Render("  r refresh · PgUp/PgDn scroll")
	return header + "\n" + model.viewport.View() + "\n" + help
}

// renderReport builds the full scrollable report.
func (model Model) renderReport() string {
	var sections []string
	sections = append(sections, model.renderSummarySection())
	sections = append(sections, model.renderTrendsSection())
	if insights := metrics.Insights(model.summary, model.trends); len(insights) > 0 {
		sections = append(sections, model.renderInsights(insights))
	}
	return strings.Join(sections, "\n\n")
}

// ── Summary ──

func (model Model) renderSummarySection() string {
	switch {
	case model.summaryLoading:
		return model.faint("Loading summary...")
	case model.summaryError != "":
		return lipgloss.NewStyle().Foreground(model.theme.BannerError).
			Render("Summary unavailable: " + model.summaryError)
	case model.summary == nil:
		return model.faint("No summary data.")
	}
	summary := model.summary

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		model.card("Total Tickets", fmt.Sprint(summary.TotalTickets)),
		model.card("Open", fmt.Sprint(summary.OpenTickets)),
		model.card("Resolved", fmt.Sprint(summary.ResolvedTickets)),
		model.card("Deflection", fmt.Sprintf("%d%%", int(summary.DeflectionRate*100))),
		model.card("Guardrails", fmt.Sprint(summary.GuardrailActivations)),
		model.card("Escalations", fmt.Sprint(summary.Escalations)),
	)

	conversations := model.faint(fmt.Sprintf("%d sessions · %d messages",
		summary.Conversations.Sessions, summary.Conversations.Messages))

	sections := []string{cards, conversations}
	if len(summary.TicketsBySeverity) > 0 {
		sections = append(sections,
			model.sectionTitle("Tickets by Severity"),
			tui.RenderBars(model.theme, model.severityRows(), model.chartWidth()))
	}
	return strings.Join(sections, "\n")
}

// severityRows orders the severity chart hottest-first, skipping
// severities the backend reported no tickets for.
func (model Model) severityRows() []tui.BarRow {
	var rows []tui.BarRow
	for _, severity := range []string{"CRITICAL", "HIGH", "MEDIUM", "LOW"} {
		count, ok := model.summary.TicketsBySeverity[severity]
		if !ok {
			continue
		}
		display := severity[:1] + strings.ToLower(severity[1:])
		rows = append(rows, tui.BarRow{
			Label: display,
			Value: count,
			Color: model.theme.SeverityColor(display),
		})
	}
	return rows
}

// ── Trends ──

func (model Model) renderTrendsSection() string {
	switch {
	case model.trendsLoading:
		return model.faint("Loading trends...")
	case model.trendsError != "":
		return lipgloss.NewStyle().Foreground(model.theme.BannerError).
			Render("Trends unavailable: " + model.trendsError)
	case model.trends == nil:
		return model.faint("No trend data.")
	}
	trends := model.trends
	width := model.chartWidth()

	var sections []string
	if len(trends.DailyVolumes) > 0 {
		sections = append(sections,
			model.sectionTitle("Ticket Volume")+"  "+
				tui.RenderSparkline(model.theme, counts(trends.DailyVolumes), width, model.theme.Accent))
	}
	if len(trends.GuardrailTrend) > 0 {
		sections = append(sections,
			model.sectionTitle("Guardrail Activations")+"  "+
				tui.RenderSparkline(model.theme, counts(trends.GuardrailTrend), width, model.theme.BannerWarning))
	}
	if len(trends.EscalationTrend) > 0 {
		sections = append(sections,
			model.sectionTitle("Escalations")+"  "+
				tui.RenderSparkline(model.theme, counts(trends.EscalationTrend), width, model.theme.BannerError))
	}
	if len(trends.ConversationVolumes) > 0 {
		totals := make([]int, len(trends.ConversationVolumes))
		for i, point := range trends.ConversationVolumes {
			totals[i] = point.Total
		}
		sections = append(sections,
			model.sectionTitle("Conversation Volume")+"  "+
				tui.RenderSparkline(model.theme, totals, width, model.theme.BannerInfo))
	}
	if len(trends.TopCategories) > 0 {
		sections = append(sections,
			model.sectionTitle("Top Issue Categories"),
			tui.RenderBars(model.theme, model.categoryRows(), width))
	}
	if len(trends.QueryTopics) > 0 {
		sections = append(sections, model.sectionTitle("Query Topics"), model.renderTopics())
	}
	return strings.Join(sections, "\n")
}

// categoryRows shades each category by its share of the leader.
func (model Model) categoryRows() []tui.BarRow {
	categories := model.trends.TopCategories
	maxCount := 0
	for _, category := range categories {
		if category.Count > maxCount {
			maxCount = category.Count
		}
	}
	rows := make([]tui.BarRow, len(categories))
	for i, category := range categories {
		rows[i] = tui.BarRow{
			Label: category.Category,
			Value: category.Count,
			Color: model.theme.HeatColor(category.Count, maxCount),
		}
	}
	return rows
}

func (model Model) renderTopics() string {
	var lines []string
	for _, topic := range model.trends.QueryTopics {
		arrow := lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("→")
		if topic.Trend == "up" {
			arrow = lipgloss.NewStyle().Foreground(model.theme.SeverityHigh).Render("↑")
		}
		lines = append(lines, fmt.Sprintf("  %s %s %s", arrow,
			lipgloss.NewStyle().Foreground(model.theme.NormalText).Render(topic.Category),
			model.faint(fmt.Sprintf("(%d)", topic.Count))))
	}
	return strings.Join(lines, "\n")
}

// ── Insights ──

func (model Model) renderInsights(insights []metrics.Insight) string {
	lines := []string{model.sectionTitle("Insights")}
	for _, insight := range insights {
		color := model.theme.BannerInfo
		switch insight.Severity {
		case metrics.InsightSuccess:
			color = model.theme.BannerSuccess
		case metrics.InsightWarning:
			color = model.theme.BannerWarning
		case metrics.InsightError:
			color = model.theme.BannerError
		}
		lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(color).Render("  ▍"+insight.Title))
		if insight.Detail != "" {
			lines = append(lines, model.faint("   "+insight.Detail))
		}
		lines = append(lines, model.faint("   → "+insight.Action))
	}
	return strings.Join(lines, "\n")
}

// ── Shared bits ──

func (model Model) card(label, value string) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(model.theme.BorderColor).
		Padding(0, 1).
		Align(lipgloss.Center)
	content := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground).Render(value) +
		"\n" + model.faint(label)
	return style.Render(content)
}

func (model Model) sectionTitle(text string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground).Render(text)
}

func (model Model) chartWidth() int {
	width := model.width - 4
	if width > 60 {
		width = 60
	}
	if width < 20 {
		width = 20
	}
	return width
}

func (model Model) faint(text string) string {
	return lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(text)
}

func counts(points []metrics.SeriesPoint) []int {
	values := make([]int, len(points))
	for i, point := range points {
		values[i] = point.Count
	}
	return values
}
