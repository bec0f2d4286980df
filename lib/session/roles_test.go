// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package session

import "testing"

func TestCanUpdateTickets(t *testing.T) {
	allowed := []string{RoleHelpDeskAnalyst, RoleAdministrator, RoleTrainingManager}
	for _, role := range allowed {
		if !CanUpdateTickets(role) {
			t.Errorf("CanUpdateTickets(%q) = false", role)
		}
	}
	denied := []string{RoleCyberOperator, RoleTrainee, "", "analyst"}
	for _, role := range denied {
		if CanUpdateTickets(role) {
			t.Errorf("CanUpdateTickets(%q) = true", role)
		}
	}
}

func TestCanDeleteTickets(t *testing.T) {
	if !CanDeleteTickets(RoleAdministrator) {
		t.Error("CanDeleteTickets(Administrator) = false")
	}
	for _, role := range []string{RoleHelpDeskAnalyst, RoleTrainingManager, RoleCyberOperator, RoleTrainee, ""} {
		if CanDeleteTickets(role) {
			t.Errorf("CanDeleteTickets(%q) = true", role)
		}
	}
}

func TestCanChangeTier(t *testing.T) {
	if CanChangeTier(RoleCyberOperator) {
		t.Error("CanChangeTier(Cyber Operator) = true")
	}
	if !CanChangeTier(RoleAdministrator) {
		t.Error("CanChangeTier(Administrator) = false")
	}
	if !CanChangeTier(RoleHelpDeskAnalyst) {
		t.Error("CanChangeTier(Help Desk Analyst) = false")
	}
}
