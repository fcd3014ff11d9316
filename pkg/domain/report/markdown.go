package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/reqgate/pkg/domain/gate"
)

const timeLayout = time.RFC3339

func statusText(passed bool) string {
	if passed {
		return "✅ PASSED"
	}
	return "❌ FAILED"
}

func signed(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%.1f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

// metricStatus is the table cell for a metric verdict.
func metricStatus(m gate.Metric) string {
	switch {
	case m.Skipped:
		return "⏭️ skipped"
	case m.Passed:
		return "✅"
	default:
		return "❌"
	}
}

// RenderGateMarkdown renders a gate report. Suggestions are only included
// when the gate failed.
func RenderGateMarkdown(r *GateReport) string {
	var b strings.Builder

	b.WriteString("# Requirements Quality Gate Report\n\n")
	fmt.Fprintf(&b, "**Generated**: %s\n\n", r.Summary.Timestamp.UTC().Format(timeLayout))
	if r.ID != "" {
		fmt.Fprintf(&b, "**Run**: `%s`\n\n", r.ID)
	}
	fmt.Fprintf(&b, "## Overall Result: %s\n\n", statusText(r.Summary.Passed))

	b.WriteString("| Metric | Value |\n")
	b.WriteString("|------|------|\n")
	fmt.Fprintf(&b, "| Total tests | %d |\n", r.Summary.TotalTests)
	fmt.Fprintf(&b, "| Passed tests | %d |\n", r.Summary.PassedTests)
	fmt.Fprintf(&b, "| Failed tests | %d |\n", r.Summary.FailedTests)
	if r.Summary.NoData {
		b.WriteString("| Success rate | n/a |\n\n")
	} else {
		fmt.Fprintf(&b, "| Success rate | %.2f%% |\n\n", r.Summary.SuccessRate)
	}

	b.WriteString("## Quality Metrics\n\n")
	b.WriteString("| Category | Score | Threshold | Status | Difference |\n")
	b.WriteString("|------|------|------|------|------|\n")
	for _, m := range r.Metrics {
		score := fmt.Sprintf("%.1f%%", m.Score)
		diff := signed(m.Difference) + "%"
		if m.NoData {
			score = "no data"
		}
		if m.Skipped {
			diff = "-"
		}
		fmt.Fprintf(&b, "| %s | %s | %g%% | %s | %s |\n",
			m.Category.DisplayName(), score, m.Threshold, metricStatus(m), diff)
	}
	b.WriteString("\n")

	if !r.Summary.Passed {
		b.WriteString("## Improvement Suggestions\n\n")
		for _, m := range r.FailedMetrics() {
			fmt.Fprintf(&b, "### %s\n", m.Category.DisplayName())
			fmt.Fprintf(&b, "Current score: %.1f%% (required: %g%%)\n\n", m.Score, m.Threshold)
			b.WriteString("Suggested improvements:\n")
			for _, s := range Suggestions(m.Category) {
				fmt.Fprintf(&b, "- %s\n", s)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

// RenderValidationMarkdown renders a document validation report.
func RenderValidationMarkdown(r *ValidationReport) string {
	var b strings.Builder

	b.WriteString("# Document Consistency Validation Report\n\n")
	fmt.Fprintf(&b, "**Generated**: %s\n\n", r.Summary.Timestamp.UTC().Format(timeLayout))
	if r.ID != "" {
		fmt.Fprintf(&b, "**Run**: `%s`\n\n", r.ID)
	}

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|------|------|\n")
	fmt.Fprintf(&b, "| Total tests | %d |\n", r.Summary.TotalTests)
	fmt.Fprintf(&b, "| Passed tests | %d |\n", r.Summary.PassedTests)
	fmt.Fprintf(&b, "| Failed tests | %d |\n", r.Summary.FailedTests)
	fmt.Fprintf(&b, "| Success rate | %.1f%% |\n", r.Summary.SuccessRate)
	fmt.Fprintf(&b, "| Average score | %.1f%% |\n\n", r.Summary.AverageScore)

	b.WriteString("## Details\n\n")
	for _, res := range r.Details {
		fmt.Fprintf(&b, "### %s %s\n\n", statusIcon(res.Passed), res.Name)
		if res.Error != "" {
			fmt.Fprintf(&b, "**Error**: %s\n\n", res.Error)
			continue
		}
		fmt.Fprintf(&b, "**Score**: %.1f%%\n\n", res.Score)
		if res.Keywords != nil {
			fmt.Fprintf(&b, "**Keyword similarity**: %.1f%% (%d common keywords)\n\n", res.Keywords.Similarity*100, res.Keywords.Common)
		}
		if len(res.Recommendations) > 0 {
			b.WriteString("**Recommendations**:\n")
			for _, rec := range res.Recommendations {
				fmt.Fprintf(&b, "- %s\n", rec)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

func statusIcon(passed bool) string {
	if passed {
		return "✅"
	}
	return "❌"
}
