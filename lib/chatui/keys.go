// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the chat panel. Everything not
// matched here falls through to the input textarea.
type KeyMap struct {
	Send     key.Binding
	Collapse key.Binding // Hide the panel without clearing the transcript.
	Close    key.Binding // End the conversation and clear all state.
	PageUp   key.Binding
	PageDown key.Binding
}

// DefaultKeyMap is the built-in binding set.
var DefaultKeyMap = KeyMap{
	Send: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "send"),
	),
	Collapse: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "collapse"),
	),
	Close: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("C-x", "end chat"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("PgUp", "scroll up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("PgDn", "scroll down"),
	),
}
