package document

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// RequirementDocument is the structured requirements artifact produced by the
// create-requirements prompt. It is the source of truth a rendered document
// is compared against.
type RequirementDocument struct {
	ProjectInfo               *ProjectInfo               `json:"project_info,omitempty" yaml:"project_info"`
	FunctionalRequirements    []FunctionalRequirement    `json:"functional_requirements" yaml:"functional_requirements"`
	NonFunctionalRequirements []NonFunctionalRequirement `json:"non_functional_requirements" yaml:"non_functional_requirements"`
}

// ProjectInfo describes the project the requirements belong to.
type ProjectInfo struct {
	Name        string   `json:"name" yaml:"name"`
	Version     string   `json:"version,omitempty" yaml:"version"`
	Description string   `json:"description" yaml:"description"`
	Background  string   `json:"background,omitempty" yaml:"background"`
	Objectives  []string `json:"objectives,omitempty" yaml:"objectives"`
}

// FunctionalRequirement is a single F-### entry.
type FunctionalRequirement struct {
	ID                 string   `json:"id" yaml:"id"`
	Title              string   `json:"title" yaml:"title"`
	Description        string   `json:"description" yaml:"description"`
	Priority           string   `json:"priority" yaml:"priority"`
	UserStory          string   `json:"user_story,omitempty" yaml:"user_story"`
	AcceptanceCriteria []string `json:"acceptance_criteria" yaml:"acceptance_criteria"`
	BusinessRules      []string `json:"business_rules,omitempty" yaml:"business_rules"`
	Dependencies       []string `json:"dependencies,omitempty" yaml:"dependencies"`
	EffortEstimate     string   `json:"effort_estimate,omitempty" yaml:"effort_estimate"`
	Notes              string   `json:"notes,omitempty" yaml:"notes"`
}

// NonFunctionalRequirement is a single NFR-X-### entry.
type NonFunctionalRequirement struct {
	ID                 string `json:"id" yaml:"id"`
	Type               string `json:"type,omitempty" yaml:"type"`
	Description        string `json:"description" yaml:"description"`
	Metric             string `json:"metric" yaml:"metric"`
	TargetValue        string `json:"target_value" yaml:"target_value"`
	TestMethod         string `json:"test_method,omitempty" yaml:"test_method"`
	ComplianceStandard string `json:"compliance_standard,omitempty" yaml:"compliance_standard"`
	RiskLevel          string `json:"risk_level,omitempty" yaml:"risk_level"`
	MitigationApproach string `json:"mitigation_approach,omitempty" yaml:"mitigation_approach"`
}

// Parse decodes YAML text into a RequirementDocument. Any decoding failure is
// returned as a *ParseError.
func Parse(src []byte) (*RequirementDocument, error) {
	var doc RequirementDocument
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, &ParseError{Source: "yaml", Err: err}
	}
	return &doc, nil
}

// HasProjectInfo reports whether a project_info block is present.
func (d *RequirementDocument) HasProjectInfo() bool {
	return d.ProjectInfo != nil
}

// Validate checks the document for structural integrity.
func (d *RequirementDocument) Validate() []error {
	var errs []error
	if len(d.FunctionalRequirements) == 0 {
		errs = append(errs, fmt.Errorf("document must have at least one functional requirement"))
	}
	if len(d.NonFunctionalRequirements) == 0 {
		errs = append(errs, fmt.Errorf("document must have at least one non-functional requirement"))
	}

	seen := make(map[string]bool)
	for i, r := range d.FunctionalRequirements {
		if r.ID == "" {
			errs = append(errs, fmt.Errorf("functional requirement at index %d missing ID", i))
			continue
		}
		if seen[r.ID] {
			errs = append(errs, fmt.Errorf("duplicate functional requirement ID: %s", r.ID))
		}
		seen[r.ID] = true
	}

	seen = make(map[string]bool)
	for i, r := range d.NonFunctionalRequirements {
		if r.ID == "" {
			errs = append(errs, fmt.Errorf("non-functional requirement at index %d missing ID", i))
			continue
		}
		if seen[r.ID] {
			errs = append(errs, fmt.Errorf("duplicate non-functional requirement ID: %s", r.ID))
		}
		seen[r.ID] = true
	}
	return errs
}
