// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package analyticsui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pcte/helpdesk/lib/metrics"
	"github.com/pcte/helpdesk/lib/tui"
)

// Source is the metrics data dependency. *metrics.Service satisfies
// it; tests substitute a scripted implementation.
type Source interface {
	FetchSummary(ctx context.Context) (*metrics.Summary, error)
	FetchTrends(ctx context.Context) (*metrics.Trends, error)
}

// summaryLoadedMsg delivers the summary fetch result.
type summaryLoadedMsg struct {
	summary *metrics.Summary
	err     error
}

// trendsLoadedMsg delivers the trends fetch result.
type trendsLoadedMsg struct {
	trends *metrics.Trends
	err    error
}

// KeyMap defines the key bindings for the analytics view.
type KeyMap struct {
	Refresh  key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

// DefaultKeyMap is the built-in binding set.
var DefaultKeyMap = KeyMap{
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u", "k", "up"),
		key.WithHelp("PgUp", "scroll up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d", "j", "down"),
		key.WithHelp("PgDn", "scroll down"),
	),
}

// Model is the bubbletea model for the analytics view. The rendered
// report lives in a viewport since it usually exceeds one screen.
type Model struct {
	source Source
	theme  tui.Theme
	keys   KeyMap

	width  int
	height int
	ready  bool

	viewport viewport.Model

	summary        *metrics.Summary
	summaryLoading bool
	summaryError   string

	trends        *metrics.Trends
	trendsLoading bool
	trendsError   string
}

// NewModel creates an analytics view over the metrics source.
func NewModel(source Source) Model {
	return Model{
		source:         source,
		theme:          tui.DefaultTheme,
		keys:           DefaultKeyMap,
		summaryLoading: true,
		trendsLoading:  true,
	}
}

// Init implements tea.Model: both endpoints load concurrently.
func (model Model) Init() tea.Cmd {
	return tea.Batch(loadSummary(model.source), loadTrends(model.source))
}

func loadSummary(source Source) tea.Cmd {
	return func() tea.Msg {
		summary, err := source.FetchSummary(context.Background())
		return summaryLoadedMsg{summary: summary, err: err}
	}
}

func loadTrends(source Source) tea.Cmd {
	return func() tea.Msg {
		trends, err := source.FetchTrends(context.Background())
		return trendsLoadedMsg{trends: trends, err: err}
	}
}

// SetSize lays the view out within the given area.
func (model *Model) SetSize(width, height int) {
	model.width = width
	model.height = height
	model.ready = true

	viewportHeight := height - 2 // Header and help line.
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	if model.viewport.Width == 0 {
		model.viewport = viewport.New(width, viewportHeight)
	} else {
		model.viewport.Width = width
		model.viewport.Height = viewportHeight
	}
	model.refreshReport()
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.SetSize(message.Width, message.Height)

	case summaryLoadedMsg:
		model.summaryLoading = false
		if message.err != nil {
			model.summaryError = message.err.Error()
		} else {
			model.summaryError = ""
			model.summary = message.summary
		}
		model.refreshReport()

	case trendsLoadedMsg:
		model.trendsLoading = false
		if message.err != nil {
			model.trendsError = message.err.Error()
		} else {
			model.trendsError = ""
			model.trends = message.trends
		}
		model.refreshReport()

	case tea.KeyMsg:
		switch {
		case key.Matches(message, model.keys.Refresh):
			model.summaryLoading = true
			model.trendsLoading = true
			model.refreshReport()
			return model, tea.Batch(loadSummary(model.source), loadTrends(model.source))

		case key.Matches(message, model.keys.PageUp):
			model.viewport.HalfViewUp()

		case key.Matches(message, model.keys.PageDown):
			model.viewport.HalfViewDown()
		}

	case tea.MouseMsg:
		var command tea.Cmd
		model.viewport, command = model.viewport.Update(message)
		return model, command
	}
	return model, nil
}

func (model *Model) refreshReport() {
	if model.viewport.Width == 0 {
		return
	}
	model.viewport.SetContent(model.renderReport())
}
