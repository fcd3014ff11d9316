package document_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/felixgeelhaar/reqgate/pkg/domain/document"
)

func TestParse_Sample(t *testing.T) {
	doc, err := document.Parse([]byte(document.SampleYAML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !doc.HasProjectInfo() {
		t.Fatal("expected project info")
	}
	if doc.ProjectInfo.Name != "Online Bookstore" {
		t.Errorf("unexpected project name %q", doc.ProjectInfo.Name)
	}
	if len(doc.FunctionalRequirements) != 2 {
		t.Errorf("expected 2 functional requirements, got %d", len(doc.FunctionalRequirements))
	}
	if len(doc.NonFunctionalRequirements) != 2 {
		t.Errorf("expected 2 non-functional requirements, got %d", len(doc.NonFunctionalRequirements))
	}
	if doc.FunctionalRequirements[1].Dependencies[0] != "F-001" {
		t.Errorf("unexpected dependencies %v", doc.FunctionalRequirements[1].Dependencies)
	}
	if errs := doc.Validate(); len(errs) != 0 {
		t.Errorf("sample should validate, got %v", errs)
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax error", "project_info: [unclosed"},
		{"wrong type", "functional_requirements: \"not a list\""},
		{"scalar document", "just some text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := document.Parse([]byte(tt.src))
			if err == nil {
				t.Fatal("expected error")
			}
			var pe *document.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected ParseError, got %T", err)
			}
			if pe.Unwrap() == nil {
				t.Error("ParseError should carry the cause")
			}
			if !strings.Contains(err.Error(), "yaml parse failed") {
				t.Errorf("unexpected message %q", err.Error())
			}
		})
	}
}

func TestParse_Empty(t *testing.T) {
	doc, err := document.Parse([]byte(""))
	if err != nil {
		t.Fatalf("empty input should parse: %v", err)
	}
	if doc.HasProjectInfo() {
		t.Error("empty document has no project info")
	}
	if errs := doc.Validate(); len(errs) != 2 {
		t.Errorf("expected 2 validation errors, got %v", errs)
	}
}

func TestValidate_DuplicateIDs(t *testing.T) {
	doc := &document.RequirementDocument{
		FunctionalRequirements: []document.FunctionalRequirement{
			{ID: "F-001"}, {ID: "F-001"}, {ID: ""},
		},
		NonFunctionalRequirements: []document.NonFunctionalRequirement{
			{ID: "NFR-P-001"}, {ID: "NFR-P-001"},
		},
	}

	errs := doc.Validate()
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(errs), errs)
	}
}
