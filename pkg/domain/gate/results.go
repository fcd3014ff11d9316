package gate

// TestResults is the prompt-evaluation result file consumed by the gate. The
// layout follows the promptfoo JSON output.
type TestResults struct {
	Results ResultSet `json:"results"`
}

// ResultSet holds aggregate counts and the flat list of outcomes.
type ResultSet struct {
	Stats   Stats         `json:"stats"`
	Results []TestOutcome `json:"results"`
}

// Stats are the aggregate success and failure counts.
type Stats struct {
	Successes int `json:"successes"`
	Failures  int `json:"failures"`
}

// TestOutcome is a single evaluated test case.
type TestOutcome struct {
	TestCase TestCase `json:"testCase"`
	Pass     bool     `json:"pass"`
	Score    float64  `json:"score,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// TestCase describes the test that produced an outcome.
type TestCase struct {
	Description string       `json:"description"`
	Metadata    TestMetadata `json:"metadata,omitempty"`
}

// TestMetadata carries the optional explicit category tag.
type TestMetadata struct {
	Category string `json:"category,omitempty"`
}

// Totals returns the success and failure counts. When the stats block is
// empty but outcomes are present, the counts are derived from the outcomes.
func (r *TestResults) Totals() (successes, failures int) {
	s := r.Results.Stats
	if s.Successes+s.Failures > 0 || len(r.Results.Results) == 0 {
		return s.Successes, s.Failures
	}
	for _, o := range r.Results.Results {
		if o.Pass {
			successes++
		} else {
			failures++
		}
	}
	return successes, failures
}
