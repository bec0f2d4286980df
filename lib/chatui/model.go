// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pcte/helpdesk/lib/chat"
	"github.com/pcte/helpdesk/lib/tui"
)

// typingFrames rotate in the indicator line while a turn is in flight.
var typingFrames = []string{
	"Understanding request...",
	"Analyzing...",
	"Processing...",
	"Generating response...",
}

const typingFrameInterval = 1500 * time.Millisecond

// conversationChangedMsg reports that the Conversation mutated and the
// panel should re-read its snapshot.
type conversationChangedMsg struct{}

// typingFrameMsg advances the rotating typing indicator.
type typingFrameMsg struct{}

// Model is the bubbletea model for the chat panel. It renders
// snapshots of a chat.Conversation and forwards input to it; change
// notifications arrive over the events channel.
type Model struct {
	conversation *chat.Conversation
	events       <-chan struct{}
	theme        tui.Theme
	keys         KeyMap

	width  int
	height int
	ready  bool

	viewport viewport.Model
	input    textarea.Model

	snapshot    chat.Snapshot
	typingFrame int
	tickRunning bool

	// followBottom keeps the viewport pinned to the newest message
	// until the user scrolls up.
	followBottom bool
}

// NewModel creates a chat panel over the conversation. The events
// channel carries the conversation's change notifications into the
// bubbletea loop; wire Conversation.OnChange to a non-blocking send on
// it.
func NewModel(conversation *chat.Conversation, events <-chan struct{}) Model {
	input := textarea.New()
	input.Placeholder = "Type your message..."
	input.ShowLineNumbers = false
	input.CharLimit = 2000
	input.SetHeight(1)
	input.KeyMap.InsertNewline.SetEnabled(false)
	input.Focus()

	return Model{
		conversation: conversation,
		events:       events,
		theme:        tui.DefaultTheme,
		keys:         DefaultKeyMap,
		input:        input,
		snapshot:     conversation.Snapshot(),
		followBottom: true,
	}
}

// listenForChange blocks until the conversation notifies, then
// delivers a conversationChangedMsg.
func listenForChange(events <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return conversationChangedMsg{}
	}
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	commands := []tea.Cmd{textarea.Blink}
	if model.events != nil {
		commands = append(commands, listenForChange(model.events))
	}
	return tea.Batch(commands...)
}

// SetSize lays the panel out within the given area. The root model
// calls this with the space left after its own chrome.
func (model *Model) SetSize(width, height int) {
	model.width = width
	model.height = height
	model.ready = true

	viewportHeight := height - model.chromeLines()
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	if model.viewport.Width == 0 {
		model.viewport = viewport.New(width, viewportHeight)
	} else {
		model.viewport.Width = width
		model.viewport.Height = viewportHeight
	}
	model.input.SetWidth(width - 2)

	model.refreshTranscript()
}

// chromeLines counts the fixed rows around the transcript viewport:
// header, optional banner, optional typing line, input, help.
func (model Model) chromeLines() int {
	lines := 4
	if model.snapshot.Escalation != nil {
		lines++
	}
	if model.snapshot.Typing {
		lines++
	}
	return lines
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.SetSize(message.Width, message.Height)

	case conversationChangedMsg:
		model.snapshot = model.conversation.Snapshot()
		if model.ready {
			model.SetSize(model.width, model.height)
		}
		if model.followBottom {
			model.viewport.GotoBottom()
		}
		commands := []tea.Cmd{listenForChange(model.events)}
		if model.snapshot.Typing && !model.tickRunning {
			model.tickRunning = true
			commands = append(commands, typingTick())
		}
		return model, tea.Batch(commands...)

	case typingFrameMsg:
		if !model.snapshot.Typing {
			model.tickRunning = false
			return model, nil
		}
		model.typingFrame = (model.typingFrame + 1) % len(typingFrames)
		return model, typingTick()

	case tea.KeyMsg:
		if model.snapshot.Collapsed {
			// Any key expands the collapsed panel.
			model.conversation.SetCollapsed(false)
			return model, nil
		}

		switch {
		case key.Matches(message, model.keys.Send):
			text := strings.TrimSpace(model.input.Value())
			if text == "" {
				return model, nil
			}
			model.input.Reset()
			model.followBottom = true
			model.conversation.Send(text)
			return model, nil

		case key.Matches(message, model.keys.Collapse):
			model.conversation.SetCollapsed(true)
			return model, nil

		case key.Matches(message, model.keys.Close):
			model.conversation.Close()
			return model, nil

		case key.Matches(message, model.keys.PageUp):
			model.followBottom = false
			model.viewport.HalfViewUp()
			return model, nil

		case key.Matches(message, model.keys.PageDown):
			model.viewport.HalfViewDown()
			if model.viewport.AtBottom() {
				model.followBottom = true
			}
			return model, nil
		}

		var command tea.Cmd
		model.input, command = model.input.Update(message)
		return model, command

	case tea.MouseMsg:
		var command tea.Cmd
		model.viewport, command = model.viewport.Update(message)
		if !model.viewport.AtBottom() {
			model.followBottom = false
		}
		return model, command
	}

	var command tea.Cmd
	model.input, command = model.input.Update(message)
	return model, command
}

func typingTick() tea.Cmd {
	return tea.Tick(typingFrameInterval, func(time.Time) tea.Msg {
		return typingFrameMsg{}
	})
}

// refreshTranscript rebuilds the viewport content from the snapshot.
func (model *Model) refreshTranscript() {
	if model.viewport.Width == 0 {
		return
	}
	model.viewport.SetContent(renderTranscript(model.snapshot.Messages, model.theme, model.viewport.Width))
	if model.followBottom {
		model.viewport.GotoBottom()
	}
}
