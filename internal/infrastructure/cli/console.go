package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/felixgeelhaar/reqgate/pkg/application"
	"github.com/felixgeelhaar/reqgate/pkg/domain/gate"
	"github.com/felixgeelhaar/reqgate/pkg/domain/report"
)

// consoleSuggestions is how many suggestions per failing category the console
// shows; the Markdown report lists all of them.
const consoleSuggestions = 2

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cellStyle  = lipgloss.NewStyle().Padding(0, 1)
)

func verdict(passed bool) string {
	if passed {
		return passStyle.Render("✅ PASSED")
	}
	return failStyle.Render("❌ FAILED")
}

func mark(passed bool) string {
	if passed {
		return passStyle.Render("✅")
	}
	return failStyle.Render("❌")
}

func signedPercent(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%.1f%%", v)
	}
	return fmt.Sprintf("%.1f%%", v)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return cellStyle.Bold(true)
			}
			return cellStyle
		}).
		Headers(headers...)
}

func printGateReport(w io.Writer, rep *report.GateReport, paths []string) {
	fmt.Fprintln(w, titleStyle.Render("Requirements Quality Gate"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Overall result: %s\n", verdict(rep.Summary.Passed))
	if rep.Summary.NoData {
		fmt.Fprintln(w, warnStyle.Render("No test results found."))
	} else {
		fmt.Fprintf(w, "Tests: %d/%d passed (%.2f%%)\n",
			rep.Summary.PassedTests, rep.Summary.TotalTests, rep.Summary.SuccessRate)
	}
	fmt.Fprintln(w)

	t := newTable("Category", "Score", "Threshold", "Difference", "Samples", "Status")
	for _, m := range rep.Metrics {
		score := fmt.Sprintf("%.1f%%", m.Score)
		if m.NoData {
			score = "no data"
		}
		status := mark(m.Passed)
		diff := signedPercent(m.Difference)
		if m.Skipped {
			status = warnStyle.Render("skipped")
			diff = "-"
		}
		t.Row(m.Category.DisplayName(), score, fmt.Sprintf("%g%%", m.Threshold), diff, fmt.Sprint(m.Samples), status)
	}
	fmt.Fprintln(w, t.Render())

	if !rep.Summary.Passed {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Improvement suggestions:")
		for _, m := range rep.FailedMetrics() {
			fmt.Fprintf(w, "\n%s (%.1f%% < %g%%):\n", m.Category.DisplayName(), m.Score, m.Threshold)
			for _, s := range topSuggestions(m.Category) {
				fmt.Fprintf(w, "  • %s\n", s)
			}
		}
	}

	printPaths(w, paths)
}

func topSuggestions(c gate.Category) []string {
	s := report.Suggestions(c)
	if len(s) > consoleSuggestions {
		return s[:consoleSuggestions]
	}
	return s
}

func printValidationReport(w io.Writer, rep *report.ValidationReport, paths []string) {
	fmt.Fprintln(w, titleStyle.Render("Document Consistency Validation"))
	fmt.Fprintln(w)

	t := newTable("Document", "Score", "Similarity", "Structure", "Status")
	for _, r := range rep.Details {
		if r.Error != "" {
			t.Row(r.Name, "0.0%", "-", "-", failStyle.Render("❌ error"))
			continue
		}
		t.Row(r.Name,
			fmt.Sprintf("%.1f%%", r.Score),
			fmt.Sprintf("%.1f%%", r.Keywords.Similarity*100),
			mark(r.Structure.Passed),
			mark(r.Passed),
		)
	}
	fmt.Fprintln(w, t.Render())

	s := rep.Summary
	fmt.Fprintf(w, "\nResult: %s  %d/%d passed (%.1f%%), average score %.1f%%\n",
		verdict(rep.Passed()), s.PassedTests, s.TotalTests, s.SuccessRate, s.AverageScore)

	for _, r := range rep.Details {
		if r.Passed {
			continue
		}
		fmt.Fprintf(w, "\n%s:\n", r.Name)
		if r.Error != "" {
			fmt.Fprintf(w, "  • %s\n", r.Error)
			continue
		}
		for _, rec := range r.Recommendations {
			fmt.Fprintf(w, "  • %s\n", rec)
		}
	}

	printPaths(w, paths)
}

func printHealthReport(w io.Writer, rep *application.HealthReport) {
	fmt.Fprintln(w, titleStyle.Render("Environment Check"))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment variables:")
	for _, v := range rep.Variables {
		display := v.Display
		if !v.Present {
			display = mutedStyle.Render("not set")
		}
		fmt.Fprintf(w, "  %s %s: %s\n", mark(v.Present), v.Name, display)
	}

	fmt.Fprintln(w, "\nModel gateway:")
	switch {
	case rep.ProbeErr != nil:
		fmt.Fprintf(w, "  %s %v\n", mark(false), rep.ProbeErr)
	case rep.Models != nil:
		fmt.Fprintf(w, "  %s reachable (%s)\n", mark(true), rep.Models.Latency.Round(time.Millisecond))
		fmt.Fprintf(w, "  Models available: %d\n", rep.Models.ModelCount)
		fmt.Fprintf(w, "  Claude models: %d\n", rep.Models.ClaudeModels)
	}

	fmt.Fprintf(w, "\nOverall: %s\n", verdict(rep.Passed))
}

func printGradeOutcome(w io.Writer, out *application.GradeOutcome) {
	fmt.Fprintln(w, titleStyle.Render("Requirement Document Grades"))
	fmt.Fprintln(w, mutedStyle.Render(out.Path))
	fmt.Fprintln(w)

	t := newTable("Grader", "Score", "Status", "Reason")
	for _, g := range out.Grades {
		t.Row(g.Name, fmt.Sprintf("%.1f%%", g.Score), mark(g.Passed), g.Reason)
	}
	t.Row("template-schema", "-", mark(len(out.Violations) == 0), fmt.Sprintf("%d violation(s)", len(out.Violations)))
	fmt.Fprintln(w, t.Render())

	for _, v := range out.Violations {
		fmt.Fprintf(w, "  • %s: %s\n", v.Field, v.Message)
	}
	for _, p := range out.Problems {
		fmt.Fprintf(w, "  • %v\n", p)
	}

	fmt.Fprintf(w, "\nResult: %s\n", verdict(out.Passed()))
}

func printPaths(w io.Writer, paths []string) {
	if len(paths) == 0 {
		return
	}
	fmt.Fprintln(w)
	for _, p := range paths {
		fmt.Fprintln(w, mutedStyle.Render("Report written to "+p))
	}
}

// renderMarkdown renders md for the terminal.
func renderMarkdown(w io.Writer, md string) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = io.WriteString(w, strings.TrimLeft(out, "\n"))
	return err
}
