package wiring

import (
	"context"
	"net/http"
	"os"

	"github.com/felixgeelhaar/reqgate/pkg/application"
	"github.com/felixgeelhaar/reqgate/pkg/domain/consistency"
	"github.com/felixgeelhaar/reqgate/pkg/domain/gate"
	"github.com/felixgeelhaar/reqgate/pkg/infrastructure/github"
	"github.com/felixgeelhaar/reqgate/pkg/infrastructure/health"
)

// AppServices exposes the application services wired to a workspace.
type AppServices struct {
	Workspace  *Workspace
	Validation *application.ValidationService
	Gate       *application.GateService
	Health     *application.HealthService
	Grade      *application.GradeService
}

// BuildAppServices wires every service from the workspace configuration.
func BuildAppServices(ws *Workspace) *AppServices {
	cfg := ws.Config
	return &AppServices{
		Workspace: ws,
		Validation: application.NewValidationService(ws.Repo,
			consistency.NewComparator(cfg.Tolerance), ws.Logger),
		Gate: application.NewGateService(ws.Repo,
			gate.NewEvaluator(cfg.Thresholds, cfg.EmptyCategoryPolicy), ws.Logger),
		Health: application.NewHealthService(
			health.NewProber(http.DefaultClient, cfg.HealthTimeout), os.Getenv, ws.Logger),
		Grade: application.NewGradeService(ws.Repo, ws.Logger),
	}
}

// BuildPublishService connects to GitHub with the workspace credentials.
func BuildPublishService(ctx context.Context, ws *Workspace) (*application.PublishService, error) {
	gh := ws.Config.GitHub
	if gh.Token == "" || gh.Repository == "" {
		return nil, application.ErrPublishNotConfigured
	}

	var (
		p   *github.Publisher
		err error
	)
	if gh.APIURL != "" {
		p, err = github.NewPublisherWithBaseURL(ctx, gh.Token, gh.Repository, gh.APIURL)
	} else {
		p, err = github.NewPublisher(ctx, gh.Token, gh.Repository)
	}
	if err != nil {
		return nil, err
	}
	return application.NewPublishService(p, ws.Logger), nil
}
