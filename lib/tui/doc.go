// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides the shared visual layer for the help-desk
// terminal client: the color theme, chart primitives for the
// analytics view, terminal markdown rendering for chat bodies, and
// overlay widgets (dropdowns, scrollbars) used by the panels.
package tui
