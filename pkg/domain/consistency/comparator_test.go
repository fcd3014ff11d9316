package consistency_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/felixgeelhaar/reqgate/pkg/domain/analysis"
	"github.com/felixgeelhaar/reqgate/pkg/domain/consistency"
	"github.com/felixgeelhaar/reqgate/pkg/domain/document"
)

var fixedTime = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func analyzers(t *testing.T, yamlSrc, mdSrc string) (*analysis.YAMLAnalyzer, *analysis.MarkdownAnalyzer) {
	t.Helper()
	y, err := analysis.NewYAMLAnalyzer([]byte(yamlSrc))
	if err != nil {
		t.Fatalf("NewYAMLAnalyzer: %v", err)
	}
	return y, analysis.NewMarkdownAnalyzer([]byte(mdSrc))
}

func keywordSet(text string) analysis.KeywordSet {
	s := make(analysis.KeywordSet)
	s.Add(text)
	return s
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name       string
		a, b       string
		want       float64
		wantCommon int
	}{
		{"identical", "alpha beta gamma", "gamma beta alpha", 1.0, 3},
		{"disjoint", "alpha beta", "gamma delta", 0.0, 0},
		{"both empty", "", "", 0.0, 0},
		{"one empty", "alpha", "", 0.0, 0},
		{"half", "alpha beta", "alpha gamma", 1.0 / 3.0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, common := consistency.Similarity(keywordSet(tt.a), keywordSet(tt.b))
			if got != tt.want {
				t.Errorf("Similarity = %v, want %v", got, tt.want)
			}
			if common != tt.wantCommon {
				t.Errorf("common = %d, want %d", common, tt.wantCommon)
			}
		})
	}
}

func TestScore_MonotonicInSimilarity(t *testing.T) {
	for _, structural := range []bool{false, true} {
		prev := -1.0
		for i := 0; i <= 20; i++ {
			s := consistency.Score(float64(i)/20, structural)
			if s < prev {
				t.Fatalf("score decreased at similarity %v (structural=%v): %v < %v", float64(i)/20, structural, s, prev)
			}
			prev = s
		}
	}
	if got := consistency.Score(1, true); got != 100 {
		t.Errorf("Score(1, true) = %v, want 100", got)
	}
	if got := consistency.Score(0, false); got != 0 {
		t.Errorf("Score(0, false) = %v, want 0", got)
	}
}

func TestCompare_Sample(t *testing.T) {
	y, m := analyzers(t, document.SampleYAML, document.SampleMarkdown)
	c := consistency.NewComparator(0)

	res := c.Compare("sample", fixedTime, y, m)

	if res.Structure.Functional.Expected != 2 || res.Structure.Functional.Actual != 2 || !res.Structure.Functional.Passed {
		t.Errorf("functional check: %+v", res.Structure.Functional)
	}
	if res.Structure.NonFunctional.Expected != 2 || res.Structure.NonFunctional.Actual != 2 || !res.Structure.NonFunctional.Passed {
		t.Errorf("non-functional check: %+v", res.Structure.NonFunctional)
	}
	if !res.Structure.Passed {
		t.Errorf("expected structural match, got %+v", res.Structure)
	}
	if res.Score < 85 {
		t.Errorf("Score = %v, want >= 85", res.Score)
	}
	if !res.Passed {
		t.Error("sample pair should pass")
	}
	if res.Keywords.Similarity < consistency.DefaultTolerance {
		t.Errorf("similarity %v below tolerance", res.Keywords.Similarity)
	}
	if diff := cmp.Diff([]string{consistency.NoActionNeeded}, res.Recommendations); diff != "" {
		t.Errorf("recommendations mismatch (-want +got):\n%s", diff)
	}
}

func TestCompare_Idempotent(t *testing.T) {
	c := consistency.NewComparator(0.85)

	y1, m1 := analyzers(t, document.SampleYAML, document.SampleMarkdown)
	first := c.Compare("sample", fixedTime, y1, m1)
	y2, m2 := analyzers(t, document.SampleYAML, document.SampleMarkdown)
	second := c.Compare("sample", fixedTime, y2, m2)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("re-run differs (-first +second):\n%s", diff)
	}
}

func TestCompare_NoTableOrList(t *testing.T) {
	md := `# Online Bookstore

## Functional Requirements

F-001 User Registration. F-002 Book Search.

## Quality Requirements

NFR-P-001 Page response time. NFR-S-001 Personal data protection.
`
	y, m := analyzers(t, document.SampleYAML, md)
	res := consistency.NewComparator(0).Compare("flat", fixedTime, y, m)

	if res.Structure.Formatting.HasTables || res.Structure.Formatting.HasLists {
		t.Fatalf("expected no tables or lists, got %+v", res.Structure.Formatting)
	}
	if res.Structure.Passed {
		t.Error("structural match must fail without tables and lists")
	}
	if res.Passed {
		t.Errorf("pair should fail, score %v", res.Score)
	}
	if res.Score > 60 {
		t.Errorf("score without structure must be <= 60, got %v", res.Score)
	}
}

func TestCompare_RecommendationOrder(t *testing.T) {
	yamlSrc := `project_info:
  name: "Alpha"
functional_requirements:
  - id: "F-001"
    title: "Login"
  - id: "F-002"
    title: "Logout"
  - id: "F-003"
    title: "Profile"
non_functional_requirements:
  - id: "NFR-P-001"
    description: "Latency"
  - id: "NFR-P-002"
    description: "Throughput"
`
	md := "Nothing relevant here\n"

	y, m := analyzers(t, yamlSrc, md)
	res := consistency.NewComparator(0).Compare("broken", fixedTime, y, m)

	if len(res.Recommendations) != 7 {
		t.Fatalf("expected 7 recommendations, got %d: %v", len(res.Recommendations), res.Recommendations)
	}
	prefixes := []string{
		"Keyword similarity",
		"Project info mismatch",
		"Functional requirement count mismatch: YAML 3 vs Markdown 0",
		"Non-functional requirement count mismatch",
		"Markdown has no table",
		"Markdown has no list",
		"Markdown has 0 sections",
	}
	for i, p := range prefixes {
		if !strings.HasPrefix(res.Recommendations[i], p) {
			t.Errorf("recommendation %d = %q, want prefix %q", i, res.Recommendations[i], p)
		}
	}
}

func TestCompare_EmptyDocuments(t *testing.T) {
	y, m := analyzers(t, "", "")
	res := consistency.NewComparator(0).Compare("empty", fixedTime, y, m)

	if res.Keywords.Similarity != 0 {
		t.Errorf("empty keyword sets must give similarity 0, got %v", res.Keywords.Similarity)
	}
	if res.Score != 0 {
		t.Errorf("Score = %v, want 0", res.Score)
	}
}

func TestFailed(t *testing.T) {
	_, err := document.Parse([]byte("a: ["))
	res := consistency.Failed("bad", fixedTime, err)
	if res.Passed || res.Score != 0 || res.Error == "" {
		t.Errorf("unexpected failed result %+v", res)
	}
}

func TestCheckTolerance(t *testing.T) {
	for _, v := range []float64{0.01, 0.85, 1} {
		if err := consistency.CheckTolerance(v); err != nil {
			t.Errorf("CheckTolerance(%v) = %v", v, err)
		}
	}
	for _, v := range []float64{0, -0.2, 1.01, 85} {
		if err := consistency.CheckTolerance(v); err == nil {
			t.Errorf("CheckTolerance(%v) accepted an out-of-range value", v)
		}
	}
}
