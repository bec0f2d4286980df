// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pcte/helpdesk/lib/analyticsui"
	"github.com/pcte/helpdesk/lib/api"
	"github.com/pcte/helpdesk/lib/chat"
	"github.com/pcte/helpdesk/lib/chatui"
	"github.com/pcte/helpdesk/lib/config"
	"github.com/pcte/helpdesk/lib/localstore"
	"github.com/pcte/helpdesk/lib/metrics"
	"github.com/pcte/helpdesk/lib/session"
	"github.com/pcte/helpdesk/lib/ticket"
	"github.com/pcte/helpdesk/lib/ticketdash"
	"github.com/pcte/helpdesk/lib/tui"
)

// tab identifies the active panel.
type tab int

const (
	tabChat tab = iota
	tabTickets
	tabAnalytics
)

var tabLabels = []string{"Chat", "Tickets", "Analytics"}

// ticketCreatedMsg reports that the chat's scripted flows filed a
// ticket; the dashboard re-fetches in response.
type ticketCreatedMsg struct{}

// appModel is the root bubbletea model: a tab bar over the three
// panels and a status line.
type appModel struct {
	activeTab tab
	theme     tui.Theme

	chatPanel     chatui.Model
	ticketsPanel  ticketdash.Model
	analyticsView analyticsui.Model

	conversation *chat.Conversation
	ticketEvents <-chan struct{}
	sessions     *session.Store

	width  int
	height int
}

// runApp wires the services together and runs the TUI until exit.
func runApp(cfg *config.Config, client *api.Client, sessions *session.Store, logger *slog.Logger, ask string) error {
	current := sessions.Current()
	if current == nil {
		return fmt.Errorf("not signed in; run \"helpdesk login\" first")
	}

	chatEvents := make(chan struct{}, 64)
	ticketEvents := make(chan struct{}, 8)
	conversation := chat.New(chat.Params{
		Store:   localstore.New(cfg.Paths.State, logger),
		Backend: chat.NewBackend(client, sessions, logger),
		Logger:  logger,
		OnChange: func() {
			select {
			case chatEvents <- struct{}{}:
			default:
			}
		},
		OnTicketCreated: func(chat.CreatedTicket) {
			select {
			case ticketEvents <- struct{}{}:
			default:
			}
		},
	})
	conversation.Open()
	if ask != "" {
		conversation.QueueInitial(ask)
	}

	app := appModel{
		theme:         tui.DefaultTheme,
		chatPanel:     chatui.NewModel(conversation, chatEvents),
		ticketsPanel:  ticketdash.NewModel(ticket.NewService(client, sessions, logger), current.Role),
		analyticsView: analyticsui.NewModel(metrics.NewService(client, logger)),
		conversation:  conversation,
		ticketEvents:  ticketEvents,
		sessions:      sessions,
	}

	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := program.Run()
	return err
}

// Init implements tea.Model: every panel starts loading immediately so
// switching tabs never shows a cold view.
func (app appModel) Init() tea.Cmd {
	return tea.Batch(
		app.chatPanel.Init(),
		app.ticketsPanel.Init(),
		app.analyticsView.Init(),
		listenTicketCreated(app.ticketEvents),
	)
}

func listenTicketCreated(events <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return ticketCreatedMsg{}
	}
}

// Update implements tea.Model. Key and mouse input go to the active
// panel only; everything else fans out to all panels so background
// fetches complete regardless of which tab is visible.
func (app appModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		app.width = message.Width
		app.height = message.Height
		app.layoutPanels()
		return app, nil

	case ticketCreatedMsg:
		tickets, cmd := app.ticketsPanel.Reload()
		app.ticketsPanel = tickets
		return app, tea.Batch(cmd, listenTicketCreated(app.ticketEvents))

	case tea.KeyMsg:
		switch message.String() {
		case "ctrl+c":
			return app, tea.Quit
		case "tab":
			app.activeTab = (app.activeTab + 1) % 3
			return app, nil
		case "shift+tab":
			app.activeTab = (app.activeTab + 2) % 3
			return app, nil
		}
		return app.updateActive(message)

	case tea.MouseMsg:
		return app.updateActive(message)
	}
	return app.updateAll(message)
}

func (app appModel) updateActive(message tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch app.activeTab {
	case tabChat:
		var updated tea.Model
		updated, cmd = app.chatPanel.Update(message)
		app.chatPanel = updated.(chatui.Model)
	case tabTickets:
		var updated tea.Model
		updated, cmd = app.ticketsPanel.Update(message)
		app.ticketsPanel = updated.(ticketdash.Model)
	case tabAnalytics:
		var updated tea.Model
		updated, cmd = app.analyticsView.Update(message)
		app.analyticsView = updated.(analyticsui.Model)
	}
	return app, cmd
}

func (app appModel) updateAll(message tea.Msg) (tea.Model, tea.Cmd) {
	var commands []tea.Cmd

	updated, cmd := app.chatPanel.Update(message)
	app.chatPanel = updated.(chatui.Model)
	commands = append(commands, cmd)

	updated, cmd = app.ticketsPanel.Update(message)
	app.ticketsPanel = updated.(ticketdash.Model)
	commands = append(commands, cmd)

	updated, cmd = app.analyticsView.Update(message)
	app.analyticsView = updated.(analyticsui.Model)
	commands = append(commands, cmd)

	return app, tea.Batch(commands...)
}

func (app *appModel) layoutPanels() {
	contentHeight := app.height - 2 // Tab bar and status line.
	if contentHeight < 1 {
		contentHeight = 1
	}
	app.chatPanel.SetSize(app.width, contentHeight)
	app.ticketsPanel.SetSize(app.width, contentHeight)
	app.analyticsView.SetSize(app.width, contentHeight)
}

// View implements tea.Model.
func (app appModel) View() string {
	if app.width == 0 {
		return ""
	}

	var body string
	switch app.activeTab {
	case tabChat:
		body = app.chatPanel.View()
	case tabTickets:
		body = app.ticketsPanel.View()
	case tabAnalytics:
		body = app.analyticsView.View()
	}

	return app.viewTabBar() + "\n" + body + "\n" + app.viewStatusBar()
}

func (app appModel) viewTabBar() string {
	active := lipgloss.NewStyle().Bold(true).
		Background(app.theme.SelectedBackground).
		Foreground(app.theme.Accent)
	inactive := lipgloss.NewStyle().Foreground(app.theme.FaintText)

	parts := make([]string, len(tabLabels))
	for i, label := range tabLabels {
		style := inactive
		if tab(i) == app.activeTab {
			style = active
		}
		parts[i] = style.Render(" " + label + " ")
	}
	return strings.Join(parts, lipgloss.NewStyle().Foreground(app.theme.BorderColor).Render("│"))
}

func (app appModel) viewStatusBar() string {
	identity := "signed out"
	if current := app.sessions.Current(); current != nil {
		identity = fmt.Sprintf("%s · %s", current.Username, current.Role)
	}
	left := lipgloss.NewStyle().Foreground(app.theme.NormalText).Render(" " + identity)
	right := lipgloss.NewStyle().Foreground(app.theme.HelpText).Render("Tab switch panel · Ctrl+C quit ")

	gap := app.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
