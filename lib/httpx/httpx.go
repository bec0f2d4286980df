// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

// Package httpx provides bounded HTTP response helpers.
//
// All response body reads are capped at MaxResponseSize so a
// misbehaving backend cannot exhaust client memory. These helpers are
// for JSON API responses only — not for streaming or large binary
// downloads.
package httpx

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// MaxResponseSize bounds JSON API response body reads: 16 MB. The
// help-desk API returns ticket lists and metric series orders of
// magnitude smaller; the limit exists only for pathological responses.
const MaxResponseSize int64 = 16 << 20

// ReadBody reads a JSON API response body up to MaxResponseSize bytes.
// Use instead of io.ReadAll when reading HTTP response bodies.
func ReadBody(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// DecodeBody reads a JSON API response body (bounded) and decodes it
// into v. Replaces the io.ReadAll + json.Unmarshal pattern.
func DecodeBody(body io.Reader, v any) error {
	data, err := ReadBody(body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	return json.Unmarshal(data, v)
}

// ErrorDetail extracts a human-readable message from an error response
// body. The backend reports validation failures as {"detail": "..."};
// when that shape is present the detail string is returned, otherwise
// the raw body (trimmed) is. Read errors are swallowed — a partial
// body is still useful in an error message.
func ErrorDetail(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, MaxResponseSize))

	var envelope struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Detail != "" {
		return envelope.Detail
	}
	return strings.TrimSpace(string(data))
}
