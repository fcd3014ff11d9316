package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/reqgate/pkg/domain/report"
	"github.com/felixgeelhaar/reqgate/pkg/infrastructure/github"
)

// PublishRequest selects where a gate verdict is published.
type PublishRequest struct {
	SHA         string
	PullRequest int
	TargetURL   string
}

// PublishService posts gate verdicts to the code host.
type PublishService struct {
	publisher StatusPublisher
	logger    *slog.Logger
}

func NewPublishService(publisher StatusPublisher, logger *slog.Logger) *PublishService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PublishService{publisher: publisher, logger: logger}
}

// Publish sets the commit status for req.SHA and, when req.PullRequest is
// set, comments the Markdown report on the pull request.
func (s *PublishService) Publish(ctx context.Context, rep *report.GateReport, markdown string, req PublishRequest) error {
	if req.SHA == "" {
		return fmt.Errorf("%w: commit SHA is required", ErrPublishNotConfigured)
	}

	v := github.Verdict{
		Passed:      rep.Summary.Passed,
		Description: StatusDescription(rep),
		TargetURL:   req.TargetURL,
	}
	if err := s.publisher.SetStatus(ctx, req.SHA, v); err != nil {
		return err
	}
	s.logger.Info("commit status published", "sha", req.SHA, "passed", v.Passed)

	if req.PullRequest > 0 {
		if err := s.publisher.Comment(ctx, req.PullRequest, markdown); err != nil {
			return err
		}
		s.logger.Info("report commented", "pull_request", req.PullRequest)
	}
	return nil
}

// StatusDescription is the one-line commit status text for a report.
func StatusDescription(rep *report.GateReport) string {
	if rep.Summary.Passed {
		return fmt.Sprintf("Quality gate passed: %d/%d tests (%.1f%%)",
			rep.Summary.PassedTests, rep.Summary.TotalTests, rep.Summary.SuccessRate)
	}
	failed := rep.FailedMetrics()
	return fmt.Sprintf("Quality gate failed: %d metric(s) below threshold, %d/%d tests passed",
		len(failed), rep.Summary.PassedTests, rep.Summary.TotalTests)
}
