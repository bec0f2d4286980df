// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

// Package ticket wraps the backend ticket endpoints and prepares
// tickets for the dashboard: raw wire values for editing, normalized
// display values for the table, header stats, and exact-match filters.
package ticket
