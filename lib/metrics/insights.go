// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package metrics

import "fmt"

// InsightSeverity ranks an insight banner.
type InsightSeverity string

const (
	InsightInfo    InsightSeverity = "info"
	InsightSuccess InsightSeverity = "success"
	InsightWarning InsightSeverity = "warning"
	InsightError   InsightSeverity = "error"
)

// Insight is one actionable banner on the analytics view.
type Insight struct {
	Severity InsightSeverity
	Title    string
	Detail   string
	Action   string
}

// healthyDeflection is the deflection-rate cutoff separating the
// success banner from the warning.
const healthyDeflection = 0.6

// Insights derives the actionable banners from the fetched data.
// Either argument may be nil while its fetch is pending or failed;
// only rules whose inputs are present fire.
func Insights(summary *Summary, trends *Trends) []Insight {
	var insights []Insight

	if summary != nil && summary.GuardrailActivations > 0 {
		insights = append(insights, Insight{
			Severity: InsightWarning,
			Title:    fmt.Sprintf("Guardrail Alert: %d %s detected", summary.GuardrailActivations, plural(summary.GuardrailActivations, "activation")),
			Action:   "Review blocked queries and update KB articles to reduce recurring blocks.",
		})
	}

	if summary != nil && summary.Escalations > 0 {
		insights = append(insights, Insight{
			Severity: InsightError,
			Title:    fmt.Sprintf("Escalation Risk: %d %s escalated", summary.Escalations, plural(summary.Escalations, "ticket")),
			Action:   "Assign senior support staff and review SLA thresholds.",
		})
	}

	if summary != nil {
		insight := Insight{
			Severity: InsightSuccess,
			Title:    fmt.Sprintf("Deflection Rate: %.1f%%", summary.DeflectionRate*100),
			Detail:   "AI is successfully resolving the majority of queries without human intervention.",
			Action:   "Maintain KB quality and monitor for topic drift.",
		}
		if summary.DeflectionRate < healthyDeflection {
			insight.Severity = InsightWarning
			insight.Detail = "Deflection rate is below target. Consider expanding KB coverage."
			insight.Action = "Add KB articles for top unresolved categories and retrain response templates."
		}
		insights = append(insights, insight)
	}

	if trends != nil && len(trends.TopCategories) > 0 {
		top := trends.TopCategories[0]
		insights = append(insights, Insight{
			Severity: InsightInfo,
			Title:    fmt.Sprintf("Top Issue: %s — %d tickets", top.Category, top.Count),
			Detail:   "This category accounts for the highest ticket volume in the current period.",
			Action:   fmt.Sprintf("Review and update KB articles for %q and schedule proactive user communications.", top.Category),
		})
	}

	return insights
}

func plural(count int, noun string) string {
	if count == 1 {
		return noun
	}
	return noun + "s"
}
