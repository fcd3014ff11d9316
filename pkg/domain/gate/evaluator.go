// Package gate aggregates prompt-evaluation outcomes into per-category scores
// and decides whether they clear the configured thresholds.
package gate

// CaseResult is the per-test detail kept for a category.
type CaseResult struct {
	Description string  `json:"description"`
	Passed      bool    `json:"passed"`
	Score       float64 `json:"score"`
	Error       string  `json:"error,omitempty"`
}

// Metric is the gated score of one category.
type Metric struct {
	Category   Category `json:"category"`
	Score      float64  `json:"score"`
	Threshold  float64  `json:"threshold"`
	Passed     bool     `json:"passed"`
	Difference float64  `json:"difference"`
	Samples    int      `json:"samples"`
	NoData     bool     `json:"no_data,omitempty"`
	Skipped    bool     `json:"skipped,omitempty"`
}

// Evaluation is the outcome of gating a result set.
type Evaluation struct {
	Metrics     []Metric                  `json:"metrics"`
	Details     map[Category][]CaseResult `json:"details"`
	Thresholds  Thresholds                `json:"thresholds"`
	TotalTests  int                       `json:"total_tests"`
	PassedTests int                       `json:"passed_tests"`
	FailedTests int                       `json:"failed_tests"`
	Passed      bool                      `json:"passed"`
}

// Metric returns the metric of category c.
func (e *Evaluation) Metric(c Category) (Metric, bool) {
	for _, m := range e.Metrics {
		if m.Category == c {
			return m, true
		}
	}
	return Metric{}, false
}

// FailedMetrics returns the gated metrics that did not pass, in report order.
func (e *Evaluation) FailedMetrics() []Metric {
	return FailedMetrics(e.Metrics)
}

// FailedMetrics filters metrics down to those that count against the verdict:
// not skipped and below threshold.
func FailedMetrics(metrics []Metric) []Metric {
	var out []Metric
	for _, m := range metrics {
		if !m.Skipped && !m.Passed {
			out = append(out, m)
		}
	}
	return out
}

// SuccessRate returns the overall success rate metric score.
func (e *Evaluation) SuccessRate() float64 {
	m, _ := e.Metric(OverallSuccessRate)
	return m.Score
}

// Evaluator scores result sets against thresholds.
type Evaluator struct {
	thresholds Thresholds
	policy     EmptyCategoryPolicy
}

// NewEvaluator returns an evaluator. An empty policy means EmptyFail.
func NewEvaluator(thresholds Thresholds, policy EmptyCategoryPolicy) *Evaluator {
	if policy == "" {
		policy = EmptyFail
	}
	return &Evaluator{thresholds: thresholds, policy: policy}
}

// Thresholds returns the thresholds in use.
func (e *Evaluator) Thresholds() Thresholds {
	return e.thresholds
}

// Evaluate classifies every outcome, scores each category and the overall
// success rate, and computes the all-or-nothing verdict.
func (e *Evaluator) Evaluate(results *TestResults) *Evaluation {
	if results == nil {
		results = &TestResults{}
	}

	details := make(map[Category][]CaseResult, len(TestCategories))
	for _, c := range TestCategories {
		details[c] = []CaseResult{}
	}
	for _, o := range results.Results.Results {
		c := Classify(o)
		details[c] = append(details[c], CaseResult{
			Description: o.TestCase.Description,
			Passed:      o.Pass,
			Score:       o.Score,
			Error:       o.Error,
		})
	}

	eval := &Evaluation{
		Details:    details,
		Thresholds: e.thresholds,
		Metrics:    make([]Metric, 0, len(GateCategories)),
	}

	for _, c := range TestCategories {
		cases := details[c]
		passed := 0
		for _, cr := range cases {
			if cr.Passed {
				passed++
			}
		}
		eval.Metrics = append(eval.Metrics, e.metric(c, passed, len(cases)))
	}

	successes, failures := results.Totals()
	eval.TotalTests = successes + failures
	eval.PassedTests = successes
	eval.FailedTests = failures
	eval.Metrics = append(eval.Metrics, e.metric(OverallSuccessRate, successes, successes+failures))

	eval.Passed = true
	for _, m := range eval.Metrics {
		if !m.Skipped && !m.Passed {
			eval.Passed = false
			break
		}
	}
	return eval
}

func (e *Evaluator) metric(c Category, passed, total int) Metric {
	m := Metric{
		Category:  c,
		Threshold: e.thresholds.For(c),
		Samples:   total,
	}
	if total == 0 {
		m.NoData = true
		if e.policy == EmptySkip {
			m.Skipped = true
			return m
		}
	} else {
		m.Score = float64(passed) / float64(total) * 100
	}
	m.Difference = m.Score - m.Threshold
	m.Passed = m.Score >= m.Threshold
	return m
}
