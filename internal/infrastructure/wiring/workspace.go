package wiring

import (
	"io"
	"log/slog"

	"github.com/felixgeelhaar/reqgate/internal/infrastructure/config"
	"github.com/felixgeelhaar/reqgate/pkg/storage"
)

// Workspace bundles the resolved configuration and core infrastructure for a
// workspace root.
type Workspace struct {
	Root   string
	Config config.Config
	Repo   *storage.FilesystemRepository
	Logger *slog.Logger
}

// NewWorkspace loads the configuration for root. A nil logger uses
// slog.Default().
func NewWorkspace(root string, logger *slog.Logger) (*Workspace, error) {
	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Workspace{
		Root:   root,
		Config: cfg,
		Repo:   storage.NewFilesystemRepository(root),
		Logger: logger,
	}, nil
}

// NewLogger returns a text logger on w at Info, or Debug when verbose.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
