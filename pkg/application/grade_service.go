package application

import (
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/reqgate/pkg/domain/document"
)

// GradeOutcome groups the grader results for one document.
type GradeOutcome struct {
	Path       string
	Grades     []document.Grade
	Violations []document.TemplateViolation
	Problems   []error
}

// Passed reports whether every grader passed and the template is valid.
func (o *GradeOutcome) Passed() bool {
	for _, g := range o.Grades {
		if !g.Passed {
			return false
		}
	}
	return len(o.Violations) == 0 && len(o.Problems) == 0
}

// GradeService grades a structured requirement document.
type GradeService struct {
	repo   DocumentRepository
	logger *slog.Logger
}

func NewGradeService(repo DocumentRepository, logger *slog.Logger) *GradeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GradeService{repo: repo, logger: logger}
}

// Grade parses the YAML at path and runs the structure, completeness and
// template checks. Parse failures are returned as *document.ParseError.
func (s *GradeService) Grade(path string) (*GradeOutcome, error) {
	src, err := s.repo.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := document.Parse(src)
	if err != nil {
		return nil, err
	}
	violations, err := document.ValidateTemplate(src)
	if err != nil {
		return nil, fmt.Errorf("template validation: %w", err)
	}

	out := &GradeOutcome{
		Path:       path,
		Grades:     []document.Grade{document.GradeStructure(doc), document.GradeCompleteness(doc)},
		Violations: violations,
		Problems:   doc.Validate(),
	}
	s.logger.Debug("document graded", "path", path, "passed", out.Passed(), "violations", len(violations))
	return out, nil
}
