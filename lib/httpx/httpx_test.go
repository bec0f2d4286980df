// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package httpx

import (
	"strings"
	"testing"
)

func TestDecodeBody(t *testing.T) {
	var result struct {
		Answer string `json:"answer"`
	}
	err := DecodeBody(strings.NewReader(`{"answer":"restart the lab VM"}`), &result)
	if err != nil {
		t.Fatalf("DecodeBody: %v", err)
	}
	if result.Answer != "restart the lab VM" {
		t.Errorf("Answer = %q", result.Answer)
	}
}

func TestDecodeBodyMalformed(t *testing.T) {
	var result map[string]any
	if err := DecodeBody(strings.NewReader(`{"answer":`), &result); err == nil {
		t.Fatal("DecodeBody on truncated JSON = nil error")
	}
}

func TestErrorDetailExtractsDetailField(t *testing.T) {
	got := ErrorDetail(strings.NewReader(`{"detail":"Operator cannot change tier"}`))
	if got != "Operator cannot change tier" {
		t.Errorf("ErrorDetail = %q", got)
	}
}

func TestErrorDetailFallsBackToRawBody(t *testing.T) {
	got := ErrorDetail(strings.NewReader("  upstream timed out\n"))
	if got != "upstream timed out" {
		t.Errorf("ErrorDetail = %q", got)
	}
}
