// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package ticketdash

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the dashboard. The s/p/t keys
// are context-sensitive: filters in the table view, field editors in
// the detail view.
type KeyMap struct {
	Up   key.Binding
	Down key.Binding
	Home key.Binding
	End  key.Binding

	Open    key.Binding // Open the selected ticket's detail view.
	Back    key.Binding // Dismiss detail, dropdown, or confirm prompt.
	Refresh key.Binding

	Status   key.Binding // Filter by status / edit status.
	Priority key.Binding // Filter by priority / edit priority.
	Tier     key.Binding // Filter by tier / edit tier.
	Delete   key.Binding // Delete the open ticket (Administrator).
}

// DefaultKeyMap is the built-in binding set, vim-style navigation
// alongside arrows.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "detail"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "back"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Status: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "status"),
	),
	Priority: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "priority"),
	),
	Tier: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "tier"),
	),
	Delete: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "delete"),
	),
}
