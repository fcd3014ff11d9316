package document

import "fmt"

const (
	// StructurePassScore is the minimum structure grade.
	StructurePassScore = 80
	// CompletenessPassScore is the minimum completeness grade.
	CompletenessPassScore = 90.0
)

// Grade is the outcome of a single grader.
type Grade struct {
	Name   string  `json:"name"`
	Score  float64 `json:"score"` // 0-100
	Passed bool    `json:"passed"`
	Reason string  `json:"reason"`
}

// GradeStructure scores the presence of the three top-level sections:
// 33 for a project block with name and description, 33 for functional
// requirements and 34 for non-functional requirements.
func GradeStructure(d *RequirementDocument) Grade {
	score := 0
	if d.ProjectInfo != nil && d.ProjectInfo.Name != "" && d.ProjectInfo.Description != "" {
		score += 33
	}
	if len(d.FunctionalRequirements) > 0 {
		score += 33
	}
	if len(d.NonFunctionalRequirements) > 0 {
		score += 34
	}

	return Grade{
		Name:   "yaml-structure",
		Score:  float64(score),
		Passed: score >= StructurePassScore,
		Reason: fmt.Sprintf("structure completeness %d%% (need >= %d%%)", score, StructurePassScore),
	}
}

// GradeCompleteness scores the share of requirements that carry every
// mandatory field. A document with no requirements scores 0.
func GradeCompleteness(d *RequirementDocument) Grade {
	total, complete := 0, 0

	for _, r := range d.FunctionalRequirements {
		total++
		if r.ID != "" && r.Title != "" && r.Description != "" && len(r.AcceptanceCriteria) > 0 {
			complete++
		}
	}
	for _, r := range d.NonFunctionalRequirements {
		total++
		if r.ID != "" && r.Description != "" && r.Metric != "" && r.TargetValue != "" {
			complete++
		}
	}

	score := 0.0
	if total > 0 {
		score = float64(complete) / float64(total) * 100
	}

	return Grade{
		Name:   "requirements-completeness",
		Score:  score,
		Passed: score >= CompletenessPassScore,
		Reason: fmt.Sprintf("requirements completeness %.1f%% (%d/%d)", score, complete, total),
	}
}
