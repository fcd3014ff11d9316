package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/reqgate/pkg/domain/analysis"
	"github.com/felixgeelhaar/reqgate/pkg/domain/consistency"
	"github.com/felixgeelhaar/reqgate/pkg/domain/document"
	"github.com/felixgeelhaar/reqgate/pkg/domain/report"
	"github.com/felixgeelhaar/reqgate/pkg/storage"
)

// ValidationRepository is what the validation run reads from and writes to.
type ValidationRepository interface {
	DocumentRepository
	ReportWriter
}

// ValidationOptions select inputs and outputs of a validation run.
type ValidationOptions struct {
	InputDir  string
	OutputDir string
	// SkipSample leaves the built-in sample pair out of the batch.
	SkipSample bool
}

// ValidationOutcome is the result of a validation run.
type ValidationOutcome struct {
	Report   *report.ValidationReport
	Markdown string
	Paths    storage.ReportPaths
}

// Passed reports whether every compared pair passed.
func (o *ValidationOutcome) Passed() bool {
	return o.Report.Passed()
}

// ValidationService compares structured requirement documents with their
// Markdown renderings.
type ValidationService struct {
	repo       ValidationRepository
	comparator *consistency.Comparator
	logger     *slog.Logger
	now        func() time.Time
	newID      func() string
}

func NewValidationService(repo ValidationRepository, comparator *consistency.Comparator, logger *slog.Logger) *ValidationService {
	if comparator == nil {
		comparator = consistency.NewComparator(consistency.DefaultTolerance)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ValidationService{
		repo:       repo,
		comparator: comparator,
		logger:     logger,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// WithClock replaces the time source and run ID generator.
func (s *ValidationService) WithClock(now func() time.Time, newID func() string) *ValidationService {
	s.now = now
	s.newID = newID
	return s
}

// Run compares the sample pair and every pair discovered in the input
// directory, one at a time, and writes the validation report. A pair that
// fails to parse is recorded as a failed result; the batch continues.
func (s *ValidationService) Run(ctx context.Context, opts ValidationOptions) (*ValidationOutcome, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var results []consistency.Result
	if !opts.SkipSample {
		results = append(results, s.compare(document.SampleName, []byte(document.SampleYAML), []byte(document.SampleMarkdown)))
	}

	pairs, err := s.repo.DiscoverPairs(opts.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to discover document pairs: %w", err)
	}
	if len(pairs) == 0 {
		s.logger.Info("no document pairs found", "dir", opts.InputDir)
	}

	for _, p := range pairs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		results = append(results, s.comparePair(p))
	}

	rep := report.BuildValidationReport(results, s.newID(), s.now())
	md := report.RenderValidationMarkdown(rep)
	paths, err := s.repo.SaveReport(opts.OutputDir, storage.ValidationReportName, rep, md)
	if err != nil {
		return nil, fmt.Errorf("failed to save validation report: %w", err)
	}

	s.logger.Info("validation finished",
		"total", rep.Summary.TotalTests,
		"passed", rep.Summary.PassedTests,
		"failed", rep.Summary.FailedTests,
		"success_rate", rep.Summary.SuccessRate,
		"average_score", rep.Summary.AverageScore,
		"report", paths.JSON,
	)

	return &ValidationOutcome{Report: rep, Markdown: md, Paths: paths}, nil
}

// comparePair reads and compares one pair. Unreadable files are recorded as
// a failed result like parse errors.
func (s *ValidationService) comparePair(p storage.DocumentPair) consistency.Result {
	yamlSrc, err := s.repo.ReadFile(p.YAMLPath)
	if err != nil {
		s.logger.Warn("document pair unreadable", "pair", p.Name, "error", err)
		return consistency.Failed(p.Name, s.now(), err)
	}
	mdSrc, err := s.repo.ReadFile(p.MarkdownPath)
	if err != nil {
		s.logger.Warn("document pair unreadable", "pair", p.Name, "error", err)
		return consistency.Failed(p.Name, s.now(), err)
	}
	return s.compare(p.Name, yamlSrc, mdSrc)
}

func (s *ValidationService) compare(name string, yamlSrc, mdSrc []byte) consistency.Result {
	at := s.now()

	structured, err := analysis.NewYAMLAnalyzer(yamlSrc)
	if err != nil {
		s.logger.Warn("document pair failed to parse", "pair", name, "error", err)
		return consistency.Failed(name, at, err)
	}
	rendered := analysis.NewMarkdownAnalyzer(mdSrc)

	res := s.comparator.Compare(name, at, structured, rendered)
	s.logger.Debug("document pair compared",
		"pair", name,
		"score", res.Score,
		"similarity", res.Keywords.Similarity,
		"structural", res.Structure.Passed,
		"passed", res.Passed,
	)
	return res
}
