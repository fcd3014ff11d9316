package report

import (
	"time"

	"github.com/felixgeelhaar/reqgate/pkg/domain/consistency"
)

// ValidationSummary aggregates a batch of consistency results.
type ValidationSummary struct {
	Timestamp    time.Time `json:"timestamp"`
	TotalTests   int       `json:"total_tests"`
	PassedTests  int       `json:"passed_tests"`
	FailedTests  int       `json:"failed_tests"`
	SuccessRate  float64   `json:"success_rate"`
	AverageScore float64   `json:"average_score"`
}

// ValidationReport is the persisted record of a document validation run.
type ValidationReport struct {
	ID      string               `json:"id"`
	Summary ValidationSummary    `json:"summary"`
	Details []consistency.Result `json:"details"`
}

// Passed reports whether every pair passed. An empty batch does not pass.
func (r *ValidationReport) Passed() bool {
	return r.Summary.TotalTests > 0 && r.Summary.FailedTests == 0
}

// BuildValidationReport summarises results. Rates are 0 for an empty batch.
func BuildValidationReport(results []consistency.Result, id string, at time.Time) *ValidationReport {
	sum := ValidationSummary{Timestamp: at, TotalTests: len(results)}
	total := 0.0
	for _, r := range results {
		if r.Passed {
			sum.PassedTests++
		} else {
			sum.FailedTests++
		}
		total += r.Score
	}
	if n := len(results); n > 0 {
		sum.SuccessRate = float64(sum.PassedTests) / float64(n) * 100
		sum.AverageScore = total / float64(n)
	}

	details := make([]consistency.Result, len(results))
	copy(details, results)
	return &ValidationReport{ID: id, Summary: sum, Details: details}
}
