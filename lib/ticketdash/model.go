// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package ticketdash

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pcte/helpdesk/lib/session"
	"github.com/pcte/helpdesk/lib/ticket"
	"github.com/pcte/helpdesk/lib/tui"
)

// Source is the ticket data dependency. *ticket.Service satisfies it;
// tests substitute a scripted implementation.
type Source interface {
	List(ctx context.Context) ([]ticket.Ticket, error)
	ApplyUpdate(ctx context.Context, id string, update ticket.Update) (*ticket.Ticket, error)
	Delete(ctx context.Context, id string) error
}

// FocusRegion identifies where keyboard input routes.
type FocusRegion int

const (
	// FocusTable means navigation moves the table cursor.
	FocusTable FocusRegion = iota
	// FocusDetail means the detail view is open.
	FocusDetail
	// FocusDropdown means a filter or editor dropdown captures input.
	FocusDropdown
	// FocusConfirmDelete means the delete confirmation prompt is up.
	FocusConfirmDelete
)

// ticketsLoadedMsg delivers the result of an asynchronous list fetch.
type ticketsLoadedMsg struct {
	tickets []ticket.Ticket
	err     error
}

// mutationDoneMsg delivers the result of an asynchronous update or
// delete. On success the list is re-fetched.
type mutationDoneMsg struct {
	deleted bool
	err     error
}

// detailState is the open ticket detail view.
type detailState struct {
	entry         ticket.Entry
	confirmDelete bool
	saving        bool
	errorText     string // Last mutation failure, shown inline.
}

// Model is the bubbletea model for the ticket dashboard.
type Model struct {
	source Source
	role   string
	theme  tui.Theme
	keys   KeyMap

	width  int
	height int
	ready  bool

	loading   bool
	loadError string

	tickets []ticket.Ticket // Raw wire tickets from the last fetch.
	all     []ticket.Entry  // Display entries before filtering.
	entries []ticket.Entry  // Entries matching the active filter.
	stats   ticket.Stats

	filter       ticket.Filter
	cursor       int
	scrollOffset int

	focus    FocusRegion
	detail   *detailState
	dropdown *tui.DropdownOverlay
}

// NewModel creates a dashboard for the signed-in role.
func NewModel(source Source, role string) Model {
	return Model{
		source:  source,
		role:    role,
		theme:   tui.DefaultTheme,
		keys:    DefaultKeyMap,
		loading: true,
	}
}

// Init implements tea.Model: kicks off the first fetch.
func (model Model) Init() tea.Cmd {
	return loadTickets(model.source)
}

func loadTickets(source Source) tea.Cmd {
	return func() tea.Msg {
		tickets, err := source.List(context.Background())
		return ticketsLoadedMsg{tickets: tickets, err: err}
	}
}

// Reload marks the dashboard loading and re-fetches the list. The
// root model calls this when the chat panel reports a created ticket.
func (model Model) Reload() (Model, tea.Cmd) {
	model.loading = true
	return model, loadTickets(model.source)
}

// SetSize lays the dashboard out within the given area.
func (model *Model) SetSize(width, height int) {
	model.width = width
	model.height = height
	model.ready = true
	model.clampScroll()
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.SetSize(message.Width, message.Height)

	case ticketsLoadedMsg:
		model.loading = false
		if message.err != nil {
			model.loadError = message.err.Error()
			return model, nil
		}
		model.loadError = ""
		model.tickets = message.tickets
		model.all = ticket.DisplayAll(message.tickets)
		model.stats = ticket.Summarize(message.tickets)
		model.applyFilter()
		model.syncDetail()

	case mutationDoneMsg:
		if model.detail != nil {
			model.detail.saving = false
			if message.err != nil {
				model.detail.errorText = message.err.Error()
				return model, nil
			}
			model.detail.errorText = ""
			if message.deleted {
				model.detail = nil
				model.focus = FocusTable
			}
		}
		model.loading = true
		return model, loadTickets(model.source)

	case tea.KeyMsg:
		return model.handleKey(message)
	}
	return model, nil
}

func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch model.focus {
	case FocusDropdown:
		return model.handleDropdownKey(message)
	case FocusConfirmDelete:
		return model.handleConfirmKey(message)
	case FocusDetail:
		return model.handleDetailKey(message)
	}
	return model.handleTableKey(message)
}

func (model Model) handleTableKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}
		model.clampScroll()

	case key.Matches(message, model.keys.Down):
		if model.cursor < len(model.entries)-1 {
			model.cursor++
		}
		model.clampScroll()

	case key.Matches(message, model.keys.Home):
		model.cursor = 0
		model.clampScroll()

	case key.Matches(message, model.keys.End):
		if len(model.entries) > 0 {
			model.cursor = len(model.entries) - 1
		}
		model.clampScroll()

	case key.Matches(message, model.keys.Open):
		if model.cursor < len(model.entries) {
			entry := model.entries[model.cursor]
			model.detail = &detailState{entry: entry}
			model.focus = FocusDetail
		}

	case key.Matches(message, model.keys.Refresh):
		model.loading = true
		return model, loadTickets(model.source)

	case key.Matches(message, model.keys.Tier):
		model.openFilterDropdown("filter-tier", model.filter.Tier,
			ticket.FilterAll, "Tier 0", "Tier 1", "Tier 2")

	case key.Matches(message, model.keys.Status):
		model.openFilterDropdown("filter-status", model.filter.Status,
			ticket.FilterAll, "Open", "In Progress", "Resolved")

	case key.Matches(message, model.keys.Priority):
		model.openFilterDropdown("filter-priority", model.filter.Priority,
			ticket.FilterAll, "Low", "Medium", "High", "Critical")
	}
	return model, nil
}

func (model Model) handleDetailKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	detail := model.detail
	switch {
	case key.Matches(message, model.keys.Back):
		model.detail = nil
		model.focus = FocusTable

	case key.Matches(message, model.keys.Status):
		if session.CanUpdateTickets(model.role) {
			model.openEditDropdown("status", detail.entry.ID, detail.entry.RawStatus,
				editOption{"Open", ticket.StatusOpen},
				editOption{"In Progress", ticket.StatusInProgress},
				editOption{"Resolved", ticket.StatusResolved})
		}

	case key.Matches(message, model.keys.Priority):
		if session.CanUpdateTickets(model.role) {
			model.openEditDropdown("priority", detail.entry.ID, detail.entry.RawSeverity,
				editOption{"Low", ticket.SeverityLow},
				editOption{"Medium", ticket.SeverityMedium},
				editOption{"High", ticket.SeverityHigh},
				editOption{"Critical", ticket.SeverityCritical})
		}

	case key.Matches(message, model.keys.Tier):
		if session.CanUpdateTickets(model.role) && session.CanChangeTier(model.role) {
			model.openEditDropdown("tier", detail.entry.ID, detail.entry.RawTier,
				editOption{"Tier 0", ticket.Tier0},
				editOption{"Tier 1", ticket.Tier1},
				editOption{"Tier 2", ticket.Tier2})
		}

	case key.Matches(message, model.keys.Delete):
		if session.CanDeleteTickets(model.role) {
			detail.confirmDelete = true
			model.focus = FocusConfirmDelete
		}
	}
	return model, nil
}

func (model Model) handleConfirmKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	detail := model.detail
	switch message.String() {
	case "y", "Y":
		detail.confirmDelete = false
		detail.saving = true
		model.focus = FocusDetail
		id := detail.entry.ID
		return model, func() tea.Msg {
			err := model.source.Delete(context.Background(), id)
			return mutationDoneMsg{deleted: err == nil, err: err}
		}
	case "n", "N", "esc":
		detail.confirmDelete = false
		model.focus = FocusDetail
	}
	return model, nil
}

func (model Model) handleDropdownKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	dropdown := model.dropdown
	switch {
	case key.Matches(message, model.keys.Up):
		dropdown.MoveUp()

	case key.Matches(message, model.keys.Down):
		dropdown.MoveDown()

	case key.Matches(message, model.keys.Back):
		model.dismissDropdown()

	case key.Matches(message, model.keys.Open):
		selected := dropdown.Selected()
		field := dropdown.Field
		itemID := dropdown.ItemID
		model.dismissDropdown()

		switch field {
		case "filter-tier":
			model.filter.Tier = selected.Value
			model.applyFilter()
		case "filter-status":
			model.filter.Status = selected.Value
			model.applyFilter()
		case "filter-priority":
			model.filter.Priority = selected.Value
			model.applyFilter()
		default:
			return model.applyEdit(field, itemID, selected.Value)
		}
	}
	return model, nil
}

// applyEdit sends a partial update for one field of one ticket.
func (model Model) applyEdit(field, id, value string) (tea.Model, tea.Cmd) {
	var update ticket.Update
	switch field {
	case "status":
		update.Status = value
	case "priority":
		update.Severity = value
	case "tier":
		update.Tier = value
	default:
		return model, nil
	}

	if model.detail != nil {
		model.detail.saving = true
	}
	source := model.source
	return model, func() tea.Msg {
		_, err := source.ApplyUpdate(context.Background(), id, update)
		return mutationDoneMsg{err: err}
	}
}

// ── Dropdown helpers ──

type editOption struct {
	label string
	value string
}

func (model *Model) openFilterDropdown(field, current string, labels ...string) {
	options := make([]tui.DropdownOption, len(labels))
	cursor := 0
	for i, label := range labels {
		options[i] = tui.DropdownOption{Label: label, Value: label}
		if label == current {
			cursor = i
		}
	}
	model.dropdown = &tui.DropdownOverlay{
		Options: options,
		Cursor:  cursor,
		AnchorX: 2,
		AnchorY: filterBarY + 1,
		Field:   field,
	}
	model.focus = FocusDropdown
}

func (model *Model) openEditDropdown(field, id, currentRaw string, choices ...editOption) {
	options := make([]tui.DropdownOption, len(choices))
	cursor := 0
	for i, choice := range choices {
		options[i] = tui.DropdownOption{Label: choice.label, Value: choice.value}
		if choice.value == currentRaw {
			cursor = i
		}
	}
	model.dropdown = &tui.DropdownOverlay{
		Options: options,
		Cursor:  cursor,
		AnchorX: 14,
		AnchorY: detailFieldY(field),
		Field:   field,
		ItemID:  id,
	}
	model.focus = FocusDropdown
}

func (model *Model) dismissDropdown() {
	model.dropdown = nil
	if model.detail != nil {
		model.focus = FocusDetail
	} else {
		model.focus = FocusTable
	}
}

// ── List state helpers ──

func (model *Model) applyFilter() {
	model.entries = model.filter.Apply(model.all)
	if model.cursor >= len(model.entries) {
		model.cursor = len(model.entries) - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
	model.clampScroll()
}

// syncDetail refreshes the open detail view after a re-fetch. A ticket
// that disappeared closes the view.
func (model *Model) syncDetail() {
	if model.detail == nil {
		return
	}
	for _, entry := range model.all {
		if entry.ID == model.detail.entry.ID {
			model.detail.entry = entry
			return
		}
	}
	model.detail = nil
	if model.focus == FocusDetail {
		model.focus = FocusTable
	}
}

func (model *Model) clampScroll() {
	visible := model.tableHeight()
	if visible <= 0 {
		return
	}
	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	}
	if model.cursor >= model.scrollOffset+visible {
		model.scrollOffset = model.cursor - visible + 1
	}
	if model.scrollOffset < 0 {
		model.scrollOffset = 0
	}
}
