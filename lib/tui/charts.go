// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// BarRow is one labeled value in a horizontal bar chart.
type BarRow struct {
	Label string
	Value int
	Color lipgloss.Color
}

// RenderBars draws a horizontal bar chart. Labels are right-aligned in
// their own column, bars scale to the widest value, and each row shows
// its count after the bar. Zero-value rows render an empty track so
// the category still appears.
func RenderBars(theme Theme, rows []BarRow, width int) string {
	if len(rows) == 0 {
		return lipgloss.NewStyle().Foreground(theme.FaintText).Render("no data")
	}

	labelWidth := 0
	maxValue := 0
	for _, row := range rows {
		if w := ansi.StringWidth(row.Label); w > labelWidth {
			labelWidth = w
		}
		if row.Value > maxValue {
			maxValue = row.Value
		}
	}

	// Label, space, bar, space, count.
	barWidth := width - labelWidth - len(fmt.Sprint(maxValue)) - 2
	if barWidth < 4 {
		barWidth = 4
	}

	labelStyle := lipgloss.NewStyle().Foreground(theme.NormalText).Width(labelWidth).Align(lipgloss.Right)
	countStyle := lipgloss.NewStyle().Foreground(theme.FaintText)

	var lines []string
	for _, row := range rows {
		filled := 0
		if maxValue > 0 {
			filled = row.Value * barWidth / maxValue
		}
		if row.Value > 0 && filled == 0 {
			filled = 1
		}
		color := row.Color
		if color == "" {
			color = theme.Accent
		}
		bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
			lipgloss.NewStyle().Foreground(theme.BorderColor).Render(strings.Repeat("░", barWidth-filled))
		lines = append(lines, labelStyle.Render(row.Label)+" "+bar+" "+countStyle.Render(fmt.Sprint(row.Value)))
	}
	return strings.Join(lines, "\n")
}

// sparkRunes are the eight block heights of a sparkline cell.
var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// RenderSparkline draws a count series as one line of block glyphs,
// scaled to the series maximum. The series is truncated from the left
// when longer than width, keeping the most recent points.
func RenderSparkline(theme Theme, points []int, width int, color lipgloss.Color) string {
	if len(points) == 0 {
		return lipgloss.NewStyle().Foreground(theme.FaintText).Render("no data")
	}
	if width > 0 && len(points) > width {
		points = points[len(points)-width:]
	}

	maxValue := 0
	for _, point := range points {
		if point > maxValue {
			maxValue = point
		}
	}

	var line strings.Builder
	for _, point := range points {
		if maxValue == 0 {
			line.WriteRune(sparkRunes[0])
			continue
		}
		index := point * (len(sparkRunes) - 1) / maxValue
		line.WriteRune(sparkRunes[index])
	}
	if color == "" {
		color = theme.Accent
	}
	return lipgloss.NewStyle().Foreground(color).Render(line.String())
}

// HeatColor shades a value within [0, max]: hotter values step from
// green through amber to red. Used for category volume bars.
func (theme Theme) HeatColor(value, max int) lipgloss.Color {
	if max <= 0 {
		return theme.FaintText
	}
	switch {
	case value*4 >= max*3:
		return theme.SeverityCritical
	case value*2 >= max:
		return theme.SeverityHigh
	case value*4 >= max:
		return theme.SeverityMedium
	default:
		return theme.SeverityLow
	}
}
