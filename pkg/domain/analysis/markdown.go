package analysis

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// requirementIDPattern matches F-### and NFR-X-### tokens. The NFR branch is
// tried first so the F-### tail of an NFR id is never counted twice.
var requirementIDPattern = regexp.MustCompile(`\b(?:NFR-[A-Z]-\d{3}|F-\d{3})\b`)

var markdownParser = goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser()

// Headings groups heading titles by level.
type Headings struct {
	H1 []string `json:"h1"`
	H2 []string `json:"h2"`
	H3 []string `json:"h3"`
}

// RenderedFacts are the structural markers of a rendered document.
type RenderedFacts struct {
	HasMainTitle    bool `json:"has_main_title"`
	SectionCount    int  `json:"section_count"`
	SubsectionCount int  `json:"subsection_count"`
	HasTables       bool `json:"has_tables"`
	HasLists        bool `json:"has_lists"`
	HasTaskLists    bool `json:"has_task_lists"`
}

// RequirementIDs are the distinct requirement ids found in a rendered
// document, in order of first appearance.
type RequirementIDs struct {
	Functional    []string `json:"functional"`
	NonFunctional []string `json:"non_functional"`
}

// Total returns the number of distinct ids.
func (r RequirementIDs) Total() int {
	return len(r.Functional) + len(r.NonFunctional)
}

// MarkdownAnalyzer inspects a rendered document.
type MarkdownAnalyzer struct {
	source    []byte
	headings  Headings
	keywords  KeywordSet
	hasTables bool
	hasLists  bool
	hasChecks bool
}

// NewMarkdownAnalyzer parses src as GitHub-flavoured Markdown. Parsing never
// fails; unrecognised constructs are treated as text.
func NewMarkdownAnalyzer(src []byte) *MarkdownAnalyzer {
	a := &MarkdownAnalyzer{
		source:   src,
		keywords: make(KeywordSet),
	}

	root := markdownParser.Parse(text.NewReader(src))
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			title := nodeText(node, src)
			switch node.Level {
			case 1:
				a.headings.H1 = append(a.headings.H1, title)
			case 2:
				a.headings.H2 = append(a.headings.H2, title)
			case 3:
				a.headings.H3 = append(a.headings.H3, title)
			}
		case *ast.List:
			a.hasLists = true
		case *east.Table:
			a.hasTables = true
		case *east.TaskCheckBox:
			a.hasChecks = true
		case *ast.Text, *ast.String:
			a.keywords.Add(inlineText(node, src))
		}
		return ast.WalkContinue, nil
	})

	return a
}

// Headings returns heading titles by level.
func (a *MarkdownAnalyzer) Headings() Headings {
	return a.headings
}

// Keywords returns tokens from the document text with markup removed.
func (a *MarkdownAnalyzer) Keywords() KeywordSet {
	return a.keywords
}

// Structure returns the structural markers of the document.
func (a *MarkdownAnalyzer) Structure() RenderedFacts {
	return RenderedFacts{
		HasMainTitle:    len(a.headings.H1) > 0,
		SectionCount:    len(a.headings.H2),
		SubsectionCount: len(a.headings.H3),
		HasTables:       a.hasTables,
		HasLists:        a.hasLists,
		HasTaskLists:    a.hasChecks,
	}
}

// RequirementIDs extracts distinct requirement ids from the raw source.
func (a *MarkdownAnalyzer) RequirementIDs() RequirementIDs {
	ids := RequirementIDs{
		Functional:    []string{},
		NonFunctional: []string{},
	}
	seen := make(map[string]bool)
	for _, m := range requirementIDPattern.FindAllString(string(a.source), -1) {
		if seen[m] {
			continue
		}
		seen[m] = true
		if strings.HasPrefix(m, "NFR-") {
			ids.NonFunctional = append(ids.NonFunctional, m)
		} else {
			ids.Functional = append(ids.Functional, m)
		}
	}
	return ids
}

func nodeText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		buf.WriteString(inlineText(c, src))
		if t, ok := c.(*ast.Text); ok && t.SoftLineBreak() {
			buf.WriteByte(' ')
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}

// inlineText returns the literal text of a text or string node; goldmark uses
// either depending on the construct. Other nodes yield "".
func inlineText(n ast.Node, src []byte) string {
	switch t := n.(type) {
	case *ast.Text:
		return string(t.Segment.Value(src))
	case *ast.String:
		return string(t.Value)
	}
	return ""
}
