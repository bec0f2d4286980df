// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestRenderBarsEmpty(t *testing.T) {
	if got := ansi.Strip(RenderBars(DefaultTheme, nil, 40)); got != "no data" {
		t.Errorf("empty chart = %q, want %q", got, "no data")
	}
}

func TestRenderBarsScalesToMax(t *testing.T) {
	rows := []BarRow{
		{Label: "Critical", Value: 4},
		{Label: "Low", Value: 2},
		{Label: "Medium", Value: 0},
	}
	lines := strings.Split(ansi.Strip(RenderBars(DefaultTheme, rows, 40)), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}

	filled := func(line string) int { return strings.Count(line, "█") }
	if filled(lines[0]) <= filled(lines[1]) || filled(lines[1]) == 0 {
		t.Errorf("bar scaling off: critical=%d low=%d", filled(lines[0]), filled(lines[1]))
	}
	if strings.Contains(lines[0], "░") {
		t.Errorf("max row should fill the track: %q", lines[0])
	}
	if filled(lines[2]) != 0 {
		t.Errorf("zero row has filled cells: %q", lines[2])
	}
	if !strings.Contains(lines[2], "░") {
		t.Errorf("zero row missing empty track: %q", lines[2])
	}
	if !strings.HasSuffix(strings.TrimRight(lines[0], " "), "4") {
		t.Errorf("missing count suffix: %q", lines[0])
	}
}

func TestRenderBarsNonZeroRowAlwaysVisible(t *testing.T) {
	rows := []BarRow{
		{Label: "vpn", Value: 1000},
		{Label: "email", Value: 1},
	}
	lines := strings.Split(ansi.Strip(RenderBars(DefaultTheme, rows, 30)), "\n")
	if !strings.Contains(lines[1], "█") {
		t.Errorf("tiny value rounded to invisible bar: %q", lines[1])
	}
}

func TestRenderSparkline(t *testing.T) {
	got := ansi.Strip(RenderSparkline(DefaultTheme, []int{0, 4, 8}, 10, ""))
	if got != "▁▄█" {
		t.Errorf("sparkline = %q, want %q", got, "▁▄█")
	}
}

func TestRenderSparklineTruncatesLeft(t *testing.T) {
	got := ansi.Strip(RenderSparkline(DefaultTheme, []int{1, 2, 3, 4, 5}, 2, ""))
	if len([]rune(got)) != 2 {
		t.Fatalf("width = %d, want 2", len([]rune(got)))
	}
	// Most recent points survive; 5 is the series max.
	if []rune(got)[1] != '█' {
		t.Errorf("sparkline = %q, want trailing full block", got)
	}
}

func TestRenderSparklineAllZero(t *testing.T) {
	got := ansi.Strip(RenderSparkline(DefaultTheme, []int{0, 0, 0}, 10, ""))
	if got != "▁▁▁" {
		t.Errorf("sparkline = %q, want baseline row", got)
	}
}

func TestHeatColor(t *testing.T) {
	theme := DefaultTheme
	cases := []struct {
		value, max int
		want       string
	}{
		{0, 8, string(theme.SeverityLow)},
		{2, 8, string(theme.SeverityMedium)},
		{4, 8, string(theme.SeverityHigh)},
		{7, 8, string(theme.SeverityCritical)},
		{8, 8, string(theme.SeverityCritical)},
		{3, 0, string(theme.FaintText)},
	}
	for _, c := range cases {
		if got := string(theme.HeatColor(c.value, c.max)); got != c.want {
			t.Errorf("HeatColor(%d, %d) = %s, want %s", c.value, c.max, got, c.want)
		}
	}
}
