package consistency

import "time"

// KeywordComparison is the keyword-similarity sub-check.
type KeywordComparison struct {
	Similarity float64 `json:"similarity"`
	Structured int     `json:"structured_keywords"`
	Rendered   int     `json:"rendered_keywords"`
	Common     int     `json:"common_keywords"`
	Passed     bool    `json:"passed"`
}

// PresenceCheck compares presence of a block on both sides.
type PresenceCheck struct {
	Expected bool `json:"expected"`
	Actual   bool `json:"actual"`
	Passed   bool `json:"passed"`
}

// CountCheck compares an item count on both sides.
type CountCheck struct {
	Expected   int  `json:"expected"`
	Actual     int  `json:"actual"`
	Difference int  `json:"difference"`
	Passed     bool `json:"passed"`
}

// FormattingCheck verifies the rendered document uses tables, lists and
// sections.
type FormattingCheck struct {
	HasTables    bool `json:"has_tables"`
	HasLists     bool `json:"has_lists"`
	SectionCount int  `json:"section_count"`
	Passed       bool `json:"passed"`
}

// StructureComparison groups the four structural checks.
type StructureComparison struct {
	ProjectInfo   PresenceCheck   `json:"project_info"`
	Functional    CountCheck      `json:"functional_requirements"`
	NonFunctional CountCheck      `json:"non_functional_requirements"`
	Formatting    FormattingCheck `json:"markdown_formatting"`
	Passed        bool            `json:"passed"`
}

// Result is the outcome of comparing one structured/rendered pair. Error is
// set when the pair could not be analyzed; Score is then 0.
type Result struct {
	Name            string               `json:"name"`
	Timestamp       time.Time            `json:"timestamp"`
	Score           float64              `json:"overall_score"`
	Passed          bool                 `json:"passed"`
	Keywords        *KeywordComparison   `json:"keyword_comparison,omitempty"`
	Structure       *StructureComparison `json:"structure_comparison,omitempty"`
	Recommendations []string             `json:"recommendations,omitempty"`
	Error           string               `json:"error,omitempty"`
}

// Failed builds the result recorded for a pair that could not be analyzed.
func Failed(name string, at time.Time, err error) Result {
	return Result{
		Name:      name,
		Timestamp: at,
		Error:     err.Error(),
	}
}
