package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/reqgate/pkg/domain/gate"
	"github.com/felixgeelhaar/reqgate/pkg/domain/report"
	"github.com/felixgeelhaar/reqgate/pkg/storage"
)

// GateRepository is what the gate run reads from and writes to.
type GateRepository interface {
	ResultsRepository
	ReportWriter
}

// GateOutcome is the result of a gate run.
type GateOutcome struct {
	Report   *report.GateReport
	Markdown string
	Paths    storage.ReportPaths
}

// GateService evaluates prompt-test results against quality thresholds.
type GateService struct {
	repo      GateRepository
	evaluator *gate.Evaluator
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
}

func NewGateService(repo GateRepository, evaluator *gate.Evaluator, logger *slog.Logger) *GateService {
	if evaluator == nil {
		evaluator = gate.NewEvaluator(gate.DefaultThresholds(), gate.EmptyFail)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GateService{
		repo:      repo,
		evaluator: evaluator,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// WithClock replaces the time source and run ID generator.
func (s *GateService) WithClock(now func() time.Time, newID func() string) *GateService {
	s.now = now
	s.newID = newID
	return s
}

// Run loads resultsFile, evaluates it and writes the quality report into
// outputDir. A missing results file is returned as *storage.MissingInputError.
func (s *GateService) Run(ctx context.Context, resultsFile, outputDir string) (*GateOutcome, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	results, err := s.repo.LoadResults(resultsFile)
	if err != nil {
		return nil, err
	}

	eval := s.evaluator.Evaluate(results)
	rep := report.BuildGateReport(eval, s.newID(), s.now())
	md := report.RenderGateMarkdown(rep)

	paths, err := s.repo.SaveReport(outputDir, storage.QualityReportName, rep, md)
	if err != nil {
		return nil, fmt.Errorf("failed to save quality report: %w", err)
	}

	for _, m := range rep.Metrics {
		s.logger.Debug("quality metric",
			"category", m.Category,
			"score", m.Score,
			"threshold", m.Threshold,
			"samples", m.Samples,
			"passed", m.Passed,
			"skipped", m.Skipped,
		)
	}
	s.logger.Info("quality gate evaluated",
		"passed", rep.Summary.Passed,
		"total", rep.Summary.TotalTests,
		"success_rate", rep.Summary.SuccessRate,
		"report", paths.JSON,
	)

	return &GateOutcome{Report: rep, Markdown: md, Paths: paths}, nil
}
