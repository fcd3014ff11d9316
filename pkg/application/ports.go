package application

import (
	"context"

	"github.com/felixgeelhaar/reqgate/pkg/domain/gate"
	"github.com/felixgeelhaar/reqgate/pkg/infrastructure/github"
	"github.com/felixgeelhaar/reqgate/pkg/infrastructure/health"
	"github.com/felixgeelhaar/reqgate/pkg/storage"
)

// DocumentRepository supplies document pairs for validation.
type DocumentRepository interface {
	DiscoverPairs(dir string) ([]storage.DocumentPair, error)
	ReadFile(name string) ([]byte, error)
}

// ResultsRepository supplies prompt-evaluation results.
type ResultsRepository interface {
	LoadResults(name string) (*gate.TestResults, error)
}

// ReportWriter persists a report as JSON plus Markdown.
type ReportWriter interface {
	SaveReport(dir, base string, v any, markdown string) (storage.ReportPaths, error)
}

// ModelProber checks the model gateway.
type ModelProber interface {
	ProbeModels(ctx context.Context, baseURL, apiKey string) (*health.ModelsResult, error)
}

// StatusPublisher publishes gate verdicts.
type StatusPublisher interface {
	SetStatus(ctx context.Context, ref string, v github.Verdict) error
	Comment(ctx context.Context, pr int, body string) error
}
