// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

// Package session holds the signed-in identity.
//
// A Store hydrates the session from its JSON file on startup, hands
// the bearer token to the API client, and clears both memory and disk
// on logout. Role-based permission checks for the ticket dashboard
// live here too, next to the identity they derive from.
package session
