package analysis

import (
	"github.com/felixgeelhaar/reqgate/pkg/domain/document"
)

// StructuredFacts are the structural counts of a structured document.
type StructuredFacts struct {
	HasProjectInfo     bool `json:"has_project_info"`
	FunctionalCount    int  `json:"functional_count"`
	NonFunctionalCount int  `json:"non_functional_count"`
	TotalRequirements  int  `json:"total_requirements"`
}

// YAMLAnalyzer inspects a parsed structured document.
type YAMLAnalyzer struct {
	doc *document.RequirementDocument
}

// NewYAMLAnalyzer parses src and returns an analyzer for it. Malformed input
// yields a *document.ParseError.
func NewYAMLAnalyzer(src []byte) (*YAMLAnalyzer, error) {
	doc, err := document.Parse(src)
	if err != nil {
		return nil, err
	}
	return &YAMLAnalyzer{doc: doc}, nil
}

// Document returns the parsed document.
func (a *YAMLAnalyzer) Document() *document.RequirementDocument {
	return a.doc
}

// Keywords collects tokens from the free-text fields of the document.
func (a *YAMLAnalyzer) Keywords() KeywordSet {
	set := make(KeywordSet)

	if p := a.doc.ProjectInfo; p != nil {
		set.Add(p.Name)
		set.Add(p.Description)
		set.Add(p.Background)
		for _, o := range p.Objectives {
			set.Add(o)
		}
	}

	for _, r := range a.doc.FunctionalRequirements {
		set.Add(r.Title)
		set.Add(r.Description)
		set.Add(r.UserStory)
		set.Add(r.Notes)
		for _, c := range r.AcceptanceCriteria {
			set.Add(c)
		}
	}

	for _, r := range a.doc.NonFunctionalRequirements {
		set.Add(r.Description)
		set.Add(r.Metric)
		set.Add(r.TargetValue)
		set.Add(r.TestMethod)
		set.Add(r.MitigationApproach)
	}

	return set
}

// Structure returns the structural counts of the document.
func (a *YAMLAnalyzer) Structure() StructuredFacts {
	fr := len(a.doc.FunctionalRequirements)
	nfr := len(a.doc.NonFunctionalRequirements)
	return StructuredFacts{
		HasProjectInfo:     a.doc.HasProjectInfo(),
		FunctionalCount:    fr,
		NonFunctionalCount: nfr,
		TotalRequirements:  fr + nfr,
	}
}
