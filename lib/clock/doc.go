// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// The chat panel runs several scripted, timer-driven sequences
// (simulated analysis delays, staged escalation banners, typing
// holds). Driving those through a Clock keeps the sequences
// deterministic under test: the fake clock fires pending callbacks
// synchronously from Advance, in deadline order, with no sleeping.
package clock
