// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

// Package ticketdash is the bubbletea ticket dashboard: summary stats,
// a filterable ticket table, and a detail view with role-gated
// status/priority/tier editing and administrator-only deletion. All
// mutations go through the backend and the list is re-fetched
// afterwards, so the dashboard never shows optimistic state.
package ticketdash
