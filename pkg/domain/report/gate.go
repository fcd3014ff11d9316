// Package report turns gate evaluations and consistency results into
// persisted JSON records and human-readable Markdown.
package report

import (
	"time"

	"github.com/felixgeelhaar/reqgate/pkg/domain/gate"
)

// GateSummary is the headline of a quality gate run.
type GateSummary struct {
	Passed      bool      `json:"passed"`
	Timestamp   time.Time `json:"timestamp"`
	TotalTests  int       `json:"total_tests"`
	PassedTests int       `json:"passed_tests"`
	FailedTests int       `json:"failed_tests"`
	SuccessRate float64   `json:"success_rate"`
	NoData      bool      `json:"no_data,omitempty"`
}

// GateReport is the persisted record of a quality gate run.
type GateReport struct {
	ID         string                              `json:"id"`
	Summary    GateSummary                         `json:"summary"`
	Metrics    []gate.Metric                       `json:"quality_metrics"`
	Details    map[gate.Category][]gate.CaseResult `json:"detailed_results"`
	Thresholds gate.Thresholds                     `json:"thresholds"`
}

// BuildGateReport assembles the report of an evaluation.
func BuildGateReport(eval *gate.Evaluation, id string, at time.Time) *GateReport {
	overall, _ := eval.Metric(gate.OverallSuccessRate)
	return &GateReport{
		ID: id,
		Summary: GateSummary{
			Passed:      eval.Passed,
			Timestamp:   at,
			TotalTests:  eval.TotalTests,
			PassedTests: eval.PassedTests,
			FailedTests: eval.FailedTests,
			SuccessRate: overall.Score,
			NoData:      overall.NoData,
		},
		Metrics:    eval.Metrics,
		Details:    eval.Details,
		Thresholds: eval.Thresholds,
	}
}

// FailedMetrics returns the gated metrics that did not pass.
func (r *GateReport) FailedMetrics() []gate.Metric {
	return gate.FailedMetrics(r.Metrics)
}
