// Package consistency scores how faithfully a rendered requirements document
// reflects its structured source.
package consistency

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/reqgate/pkg/domain/analysis"
)

const (
	// DefaultTolerance is the default keyword-similarity threshold. The
	// overall score threshold is the same value on a 0-100 scale.
	DefaultTolerance = 0.85

	keywordWeight   = 0.6
	structureWeight = 0.4
	countTolerance  = 1
	minSections     = 2
)

// NoActionNeeded is the single recommendation emitted when every check passes.
const NoActionNeeded = "Document conversion is consistent; no action needed."

// Comparator compares a structured document against its rendering.
type Comparator struct {
	tolerance float64
}

// NewComparator returns a comparator using tolerance as the similarity
// threshold. Non-positive values fall back to DefaultTolerance.
func NewComparator(tolerance float64) *Comparator {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Comparator{tolerance: tolerance}
}

// CheckTolerance rejects similarity thresholds outside (0, 1]. Thresholds are
// ratios, not the percentages the gate uses.
func CheckTolerance(tolerance float64) error {
	if tolerance <= 0 || tolerance > 1 {
		return fmt.Errorf("similarity threshold %v out of range (0, 1]", tolerance)
	}
	return nil
}

// Tolerance returns the similarity threshold in use.
func (c *Comparator) Tolerance() float64 {
	return c.tolerance
}

// Compare runs every check on the pair and returns the scored result.
func (c *Comparator) Compare(name string, at time.Time, structured *analysis.YAMLAnalyzer, rendered *analysis.MarkdownAnalyzer) Result {
	kw := c.compareKeywords(structured.Keywords(), rendered.Keywords())
	st := c.compareStructure(structured.Structure(), rendered.Structure(), rendered.RequirementIDs())

	score := Score(kw.Similarity, st.Passed)
	return Result{
		Name:            name,
		Timestamp:       at,
		Score:           score,
		Passed:          score >= c.tolerance*100,
		Keywords:        &kw,
		Structure:       &st,
		Recommendations: c.recommendations(kw, st),
	}
}

// Similarity returns the Jaccard index of two keyword sets and the size of
// their intersection. Two empty sets have similarity 0.
func Similarity(a, b analysis.KeywordSet) (float64, int) {
	common := 0
	for k := range a {
		if b.Has(k) {
			common++
		}
	}
	union := len(a) + len(b) - common
	if union == 0 {
		return 0, 0
	}
	return float64(common) / float64(union), common
}

// Score combines keyword similarity and the structural verdict into a 0-100
// score.
func Score(similarity float64, structural bool) float64 {
	s := 0.0
	if structural {
		s = 1.0
	}
	return (similarity*keywordWeight + s*structureWeight) * 100
}

func (c *Comparator) compareKeywords(structured, rendered analysis.KeywordSet) KeywordComparison {
	sim, common := Similarity(structured, rendered)
	return KeywordComparison{
		Similarity: sim,
		Structured: len(structured),
		Rendered:   len(rendered),
		Common:     common,
		Passed:     sim >= c.tolerance,
	}
}

func (c *Comparator) compareStructure(s analysis.StructuredFacts, r analysis.RenderedFacts, ids analysis.RequirementIDs) StructureComparison {
	out := StructureComparison{
		ProjectInfo: PresenceCheck{
			Expected: s.HasProjectInfo,
			Actual:   r.HasMainTitle,
			Passed:   s.HasProjectInfo == r.HasMainTitle,
		},
		Functional:    countCheck(s.FunctionalCount, len(ids.Functional)),
		NonFunctional: countCheck(s.NonFunctionalCount, len(ids.NonFunctional)),
		Formatting: FormattingCheck{
			HasTables:    r.HasTables,
			HasLists:     r.HasLists,
			SectionCount: r.SectionCount,
			Passed:       r.HasTables && r.HasLists && r.SectionCount >= minSections,
		},
	}
	out.Passed = out.ProjectInfo.Passed && out.Functional.Passed &&
		out.NonFunctional.Passed && out.Formatting.Passed
	return out
}

func countCheck(expected, actual int) CountCheck {
	diff := expected - actual
	if diff < 0 {
		diff = -diff
	}
	return CountCheck{
		Expected:   expected,
		Actual:     actual,
		Difference: diff,
		Passed:     diff <= countTolerance,
	}
}

func (c *Comparator) recommendations(kw KeywordComparison, st StructureComparison) []string {
	var recs []string

	if !kw.Passed {
		recs = append(recs, fmt.Sprintf("Keyword similarity %.2f is below %.2f; check that the YAML to Markdown conversion carries all content.", kw.Similarity, c.tolerance))
	}
	if !st.ProjectInfo.Passed {
		recs = append(recs, fmt.Sprintf("Project info mismatch: YAML project_info present=%t, Markdown main title present=%t.", st.ProjectInfo.Expected, st.ProjectInfo.Actual))
	}
	if !st.Functional.Passed {
		recs = append(recs, fmt.Sprintf("Functional requirement count mismatch: YAML %d vs Markdown %d.", st.Functional.Expected, st.Functional.Actual))
	}
	if !st.NonFunctional.Passed {
		recs = append(recs, fmt.Sprintf("Non-functional requirement count mismatch: YAML %d vs Markdown %d.", st.NonFunctional.Expected, st.NonFunctional.Actual))
	}
	if !st.Formatting.HasTables {
		recs = append(recs, "Markdown has no table; present requirement details in a table.")
	}
	if !st.Formatting.HasLists {
		recs = append(recs, "Markdown has no list; use lists to structure requirement details.")
	}
	if st.Formatting.SectionCount < minSections {
		recs = append(recs, fmt.Sprintf("Markdown has %d sections; use at least %d level-two sections.", st.Formatting.SectionCount, minSections))
	}

	if len(recs) == 0 {
		recs = append(recs, NoActionNeeded)
	}
	return recs
}
