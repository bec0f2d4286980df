// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

// Package chatui is the bubbletea panel for the AI assistant chat: a
// scrollable transcript with markdown rendering, a typing indicator,
// the live-agent escalation banner, and a multi-line input. The panel
// is a thin view over chat.Conversation; all conversation logic lives
// there.
package chatui
