// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package ticketdash

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/pcte/helpdesk/lib/session"
	"github.com/pcte/helpdesk/lib/ticket"
)

type recordedUpdate struct {
	id     string
	update ticket.Update
}

type stubSource struct {
	tickets   []ticket.Ticket
	listErr   error
	updates   []recordedUpdate
	updateErr error
	deleted   []string
	deleteErr error
}

func (s *stubSource) List(ctx context.Context) ([]ticket.Ticket, error) {
	return s.tickets, s.listErr
}

func (s *stubSource) ApplyUpdate(ctx context.Context, id string, update ticket.Update) (*ticket.Ticket, error) {
	s.updates = append(s.updates, recordedUpdate{id: id, update: update})
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &ticket.Ticket{ID: id}, nil
}

func (s *stubSource) Delete(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return s.deleteErr
}

func sampleTickets() []ticket.Ticket {
	return []ticket.Ticket{
		{ID: "INC-00001", Status: "OPEN", Severity: "HIGH", Tier: "TIER_0",
			AIResults: &ticket.AIResults{Subject: "VPN drops every hour"}},
		{ID: "INC-00002", Status: "IN_PROGRESS", Severity: "LOW", Tier: "TIER_1",
			AIResults: &ticket.AIResults{Subject: "Password reset loop"}},
		{ID: "INC-00003", Status: "RESOLVED", Severity: "CRITICAL", Tier: "TIER_1"},
	}
}

func newTestDash(t *testing.T, source Source, role string) Model {
	t.Helper()
	model := NewModel(source, role)
	model.SetSize(100, 24)

	message := model.Init()()
	updated, _ := model.Update(message)
	return updated.(Model)
}

func press(t *testing.T, model Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := model.Update(msg)
	return updated.(Model), cmd
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
)

// runCmd executes a command and feeds its message back into the model.
func runCmd(t *testing.T, model Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	updated, _ := model.Update(cmd())
	return updated.(Model)
}

func TestLoadPopulatesTableAndStats(t *testing.T) {
	model := newTestDash(t, &stubSource{tickets: sampleTickets()}, session.RoleTrainee)

	if len(model.entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(model.entries))
	}
	if model.stats.AtRisk != 2 {
		t.Errorf("at risk = %d, want 2 (HIGH + CRITICAL)", model.stats.AtRisk)
	}

	view := ansi.Strip(model.View())
	if !strings.Contains(view, "VPN drops every hour") {
		t.Errorf("ticket title missing:\n%s", view)
	}
	if !strings.Contains(view, "Total 3 · At Risk 2") {
		t.Errorf("stats line missing:\n%s", view)
	}
}

func TestLoadErrorShown(t *testing.T) {
	model := newTestDash(t, &stubSource{listErr: errors.New("HTTP 502: bad gateway")}, session.RoleTrainee)

	view := ansi.Strip(model.View())
	if !strings.Contains(view, "HTTP 502: bad gateway") {
		t.Errorf("load error missing:\n%s", view)
	}
}

func TestTierFilterNarrowsRows(t *testing.T) {
	model := newTestDash(t, &stubSource{tickets: sampleTickets()}, session.RoleTrainee)

	model, _ = press(t, model, keyRune('t'))
	if model.focus != FocusDropdown {
		t.Fatal("tier filter dropdown did not open")
	}
	// All → Tier 0 → Tier 1.
	model, _ = press(t, model, keyDown)
	model, _ = press(t, model, keyDown)
	model, _ = press(t, model, keyEnter)

	if model.filter.Tier != "Tier 1" {
		t.Fatalf("filter tier = %q", model.filter.Tier)
	}
	if len(model.entries) != 2 {
		t.Errorf("filtered entries = %d, want 2", len(model.entries))
	}
	for _, entry := range model.entries {
		if entry.Tier != "Tier 1" {
			t.Errorf("entry %s tier = %q", entry.ID, entry.Tier)
		}
	}
}

func TestAnalystEditsStatus(t *testing.T) {
	source := &stubSource{tickets: sampleTickets()}
	model := newTestDash(t, source, session.RoleHelpDeskAnalyst)

	model, _ = press(t, model, keyEnter) // Open detail for INC-00001.
	if model.detail == nil {
		t.Fatal("detail did not open")
	}
	model, _ = press(t, model, keyRune('s'))
	if model.focus != FocusDropdown {
		t.Fatal("status dropdown did not open")
	}

	// Cursor starts on the current value (Open); move to Resolved.
	model, _ = press(t, model, keyDown)
	model, _ = press(t, model, keyDown)
	model, cmd := press(t, model, keyEnter)
	model = runCmd(t, model, cmd)

	if len(source.updates) != 1 {
		t.Fatalf("updates = %d, want 1", len(source.updates))
	}
	got := source.updates[0]
	if got.id != "INC-00001" || got.update.Status != "RESOLVED" {
		t.Errorf("update = %+v", got)
	}
	if got.update.Tier != "" || got.update.Severity != "" {
		t.Errorf("unrelated fields set: %+v", got.update)
	}
	if !model.loading {
		t.Error("expected re-fetch after successful update")
	}
}

func TestUpdateErrorShownInline(t *testing.T) {
	source := &stubSource{
		tickets:   sampleTickets(),
		updateErr: errors.New("updating ticket INC-00001: HTTP 403: Forbidden"),
	}
	model := newTestDash(t, source, session.RoleHelpDeskAnalyst)

	model, _ = press(t, model, keyEnter)
	model, _ = press(t, model, keyRune('p'))
	model, cmd := press(t, model, keyEnter)
	model = runCmd(t, model, cmd)

	if model.detail == nil || model.detail.errorText == "" {
		t.Fatal("mutation error not recorded")
	}
	if !strings.Contains(ansi.Strip(model.View()), "HTTP 403") {
		t.Errorf("error not rendered:\n%s", ansi.Strip(model.View()))
	}
}

func TestCyberOperatorCannotChangeTier(t *testing.T) {
	source := &stubSource{tickets: sampleTickets()}
	model := newTestDash(t, source, session.RoleCyberOperator)

	model, _ = press(t, model, keyEnter)
	model, _ = press(t, model, keyRune('t'))

	if model.focus == FocusDropdown {
		t.Error("tier dropdown opened for Cyber Operator")
	}
	if len(source.updates) != 0 {
		t.Errorf("updates = %d, want 0", len(source.updates))
	}
	if help := ansi.Strip(model.View()); strings.Contains(help, "t tier") {
		t.Errorf("tier action offered in help:\n%s", help)
	}
}

func TestTraineeCannotEditOrDelete(t *testing.T) {
	source := &stubSource{tickets: sampleTickets()}
	model := newTestDash(t, source, session.RoleTrainee)

	model, _ = press(t, model, keyEnter)
	model, _ = press(t, model, keyRune('s'))
	if model.focus == FocusDropdown {
		t.Error("status dropdown opened for Trainee")
	}
	model, _ = press(t, model, keyRune('x'))
	if model.focus == FocusConfirmDelete {
		t.Error("delete confirm opened for Trainee")
	}
}

func TestAdministratorDeleteFlow(t *testing.T) {
	source := &stubSource{tickets: sampleTickets()}
	model := newTestDash(t, source, session.RoleAdministrator)

	model, _ = press(t, model, keyEnter)
	model, _ = press(t, model, keyRune('x'))
	if model.focus != FocusConfirmDelete {
		t.Fatal("confirm prompt did not open")
	}
	if !strings.Contains(ansi.Strip(model.View()), "Delete ticket INC-00001? (y/n)") {
		t.Errorf("confirm prompt missing:\n%s", ansi.Strip(model.View()))
	}

	model, cmd := press(t, model, keyRune('y'))
	model = runCmd(t, model, cmd)

	if len(source.deleted) != 1 || source.deleted[0] != "INC-00001" {
		t.Errorf("deleted = %v", source.deleted)
	}
	if model.detail != nil {
		t.Error("detail still open after delete")
	}
	if !model.loading {
		t.Error("expected re-fetch after delete")
	}
}

func TestDeleteDeclined(t *testing.T) {
	source := &stubSource{tickets: sampleTickets()}
	model := newTestDash(t, source, session.RoleAdministrator)

	model, _ = press(t, model, keyEnter)
	model, _ = press(t, model, keyRune('x'))
	model, cmd := press(t, model, keyRune('n'))

	if cmd != nil {
		t.Error("decline should not issue a command")
	}
	if model.focus != FocusDetail || model.detail.confirmDelete {
		t.Error("decline should return to the detail view")
	}
	if len(source.deleted) != 0 {
		t.Errorf("deleted = %v, want none", source.deleted)
	}
}

func TestDetailSurvivesRefresh(t *testing.T) {
	source := &stubSource{tickets: sampleTickets()}
	model := newTestDash(t, source, session.RoleHelpDeskAnalyst)

	model, _ = press(t, model, keyEnter)

	// Backend now reports the ticket resolved; a refresh updates the
	// open detail in place.
	source.tickets[0].Status = "RESOLVED"
	updated, _ := model.Update(ticketsLoadedMsg{tickets: source.tickets})
	model = updated.(Model)

	if model.detail == nil || model.detail.entry.Status != "Resolved" {
		t.Errorf("detail not refreshed: %+v", model.detail)
	}
}

func TestDetailClosesWhenTicketDisappears(t *testing.T) {
	source := &stubSource{tickets: sampleTickets()}
	model := newTestDash(t, source, session.RoleAdministrator)

	model, _ = press(t, model, keyEnter)
	updated, _ := model.Update(ticketsLoadedMsg{tickets: source.tickets[1:]})
	model = updated.(Model)

	if model.detail != nil {
		t.Error("detail should close when its ticket is gone")
	}
	if model.focus != FocusTable {
		t.Errorf("focus = %v, want table", model.focus)
	}
}

func TestEscDismissesDropdownWithoutMutation(t *testing.T) {
	source := &stubSource{tickets: sampleTickets()}
	model := newTestDash(t, source, session.RoleHelpDeskAnalyst)

	model, _ = press(t, model, keyEnter)
	model, _ = press(t, model, keyRune('p'))
	model, _ = press(t, model, keyEsc)

	if model.focus != FocusDetail || model.dropdown != nil {
		t.Error("esc should dismiss the dropdown and return to detail")
	}
	if len(source.updates) != 0 {
		t.Errorf("updates = %v, want none", source.updates)
	}
}
