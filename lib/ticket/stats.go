// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"math"
	"strings"
)

// Stats summarizes a ticket list for the dashboard header.
type Stats struct {
	Total  int
	AtRisk int

	Tier0Count int
	Tier1Count int
	Tier2Count int

	Tier0Pct int
	Tier1Pct int
	Tier2Pct int
}

// Summarize computes header stats over wire tickets. At-risk counts
// HIGH and CRITICAL severities; tier percentages are rounded to whole
// numbers and zero when the list is empty.
func Summarize(tickets []Ticket) Stats {
	stats := Stats{Total: len(tickets)}
	for _, t := range tickets {
		if AtRisk(t.Severity) {
			stats.AtRisk++
		}
		switch strings.ToUpper(t.Tier) {
		case Tier0:
			stats.Tier0Count++
		case Tier1:
			stats.Tier1Count++
		case Tier2:
			stats.Tier2Count++
		}
	}
	if stats.Total > 0 {
		stats.Tier0Pct = percent(stats.Tier0Count, stats.Total)
		stats.Tier1Pct = percent(stats.Tier1Count, stats.Total)
		stats.Tier2Pct = percent(stats.Tier2Count, stats.Total)
	}
	return stats
}

func percent(count, total int) int {
	return int(math.Round(float64(count) / float64(total) * 100))
}
