// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DropdownOption is a single selectable item in a dropdown overlay.
type DropdownOption struct {
	Label string // Display text shown in the dropdown.
	Value string // Wire value sent to the service on selection.
}

// DropdownOverlay is a floating menu anchored at a screen position.
// The ticket dashboard uses it for filter pickers and for the
// status/priority/tier editors in the detail modal. While one is
// open it captures keyboard input: up/down to navigate, enter to
// select, escape to dismiss.
type DropdownOverlay struct {
	Options []DropdownOption
	Cursor  int
	AnchorX int    // Screen X of the top-left corner.
	AnchorY int    // Screen Y of the top-left corner.
	Field   string // Which field this dropdown mutates ("status", "priority", "tier").
	ItemID  string // The ticket being mutated; empty for filter dropdowns.
}

// MoveUp moves the cursor up by one, wrapping to the bottom.
func (dropdown *DropdownOverlay) MoveUp() {
	dropdown.Cursor--
	if dropdown.Cursor < 0 {
		dropdown.Cursor = len(dropdown.Options) - 1
	}
}

// MoveDown moves the cursor down by one, wrapping to the top.
func (dropdown *DropdownOverlay) MoveDown() {
	dropdown.Cursor++
	if dropdown.Cursor >= len(dropdown.Options) {
		dropdown.Cursor = 0
	}
}

// Selected returns the currently highlighted option.
func (dropdown *DropdownOverlay) Selected() DropdownOption {
	return dropdown.Options[dropdown.Cursor]
}

// Width returns the visible width of the rendered dropdown in columns,
// matching Render. Needed for mouse hit-testing.
func (dropdown *DropdownOverlay) Width() int {
	maxLabelWidth := 0
	for _, option := range dropdown.Options {
		if labelWidth := ansi.StringWidth(option.Label); labelWidth > maxLabelWidth {
			maxLabelWidth = labelWidth
		}
	}
	// " > LABEL  ": padding, marker, space, label, padding.
	return 3 + maxLabelWidth + 2
}

// Contains reports whether the screen coordinate (x, y) falls within
// the dropdown's bounding rectangle.
func (dropdown *DropdownOverlay) Contains(x, y int) bool {
	if y < dropdown.AnchorY || y >= dropdown.AnchorY+len(dropdown.Options) {
		return false
	}
	return x >= dropdown.AnchorX && x < dropdown.AnchorX+dropdown.Width()
}

// OptionAtY returns the option index at the given screen Y coordinate,
// or -1 when Y is outside the dropdown's vertical range.
func (dropdown *DropdownOverlay) OptionAtY(y int) int {
	index := y - dropdown.AnchorY
	if index < 0 || index >= len(dropdown.Options) {
		return -1
	}
	return index
}

// Render produces the dropdown lines for overlay splicing. Every line
// has the same visible width and a solid background so the menu reads
// as a block over the underlying content; the highlighted option uses
// the selection colors.
func (dropdown *DropdownOverlay) Render(theme Theme) []string {
	totalWidth := dropdown.Width()
	innerWidth := totalWidth - 2

	normal := lipgloss.NewStyle().
		Background(theme.OverlayBackground).
		Foreground(theme.NormalText)
	selected := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)

	lines := make([]string, 0, len(dropdown.Options))
	for index, option := range dropdown.Options {
		style := normal
		marker := " "
		if index == dropdown.Cursor {
			style = selected
			marker = ">"
		}

		content := marker + " " + option.Label
		rightPad := innerWidth - ansi.StringWidth(content)
		if rightPad < 0 {
			rightPad = 0
		}
		lines = append(lines, style.Render(" "+content+strings.Repeat(" ", rightPad)+" "))
	}
	return lines
}
