// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

// Package chat implements the assistant conversation: the transcript,
// the per-turn context, the backend chat wrapper, and the scripted
// flows layered on top (staged ticket creation, urgency handoff, and
// backend-driven escalation to a live agent).
//
// The Conversation engine is UI-independent. All pacing runs on an
// injected clock, and every delayed effect is tagged with an epoch so
// closing the conversation cancels everything still in flight. State
// changes write through to the local store immediately; the persisted
// transcript always matches the in-memory one.
package chat
