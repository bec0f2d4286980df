// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package session

// Display roles known to the client. The backend is the authority on
// what a role may do; these checks exist to hide or disable controls
// proactively instead of surfacing server rejections.
const (
	RoleAdministrator   = "Administrator"
	RoleHelpDeskAnalyst = "Help Desk Analyst"
	RoleTrainingManager = "Training Manager"
	RoleCyberOperator   = "Cyber Operator"
	RoleTrainee         = "Trainee"
)

// updateRoles is the set of roles permitted to edit ticket fields.
var updateRoles = map[string]bool{
	RoleHelpDeskAnalyst: true,
	RoleAdministrator:   true,
	RoleTrainingManager: true,
}

// CanUpdateTickets reports whether the role may change ticket
// status/tier/severity from the dashboard.
func CanUpdateTickets(role string) bool {
	return updateRoles[role]
}

// CanDeleteTickets reports whether the role may delete tickets.
// Administrators only.
func CanDeleteTickets(role string) bool {
	return role == RoleAdministrator
}

// CanChangeTier reports whether the role may reassign a ticket's
// support tier. Cyber Operators are barred; they can otherwise update.
func CanChangeTier(role string) bool {
	return role != RoleCyberOperator
}
