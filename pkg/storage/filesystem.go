package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/felixgeelhaar/reqgate/pkg/domain/gate"
)

// Default locations, relative to the workspace root.
const (
	DefaultInputDir    = "examples"
	DefaultOutputDir   = "test-results"
	DefaultResultsFile = "test-results/latest.json"
	ValidationDir      = "validation"
)

// Report base names; the repository appends .json and .md.
const (
	QualityReportName    = "quality-report"
	ValidationReportName = "validation-report"
)

// FilesystemRepository reads gate inputs and writes reports below a workspace
// root.
type FilesystemRepository struct {
	root string
}

func NewFilesystemRepository(root string) *FilesystemRepository {
	return &FilesystemRepository{root: root}
}

// Root returns the workspace root directory.
func (r *FilesystemRepository) Root() string {
	return r.root
}

// ResolvePath maps a workspace-relative path to a path below the root and
// rejects traversal. Absolute paths are returned cleaned.
func (r *FilesystemRepository) ResolvePath(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	if filepath.IsAbs(name) {
		return filepath.Clean(name), nil
	}

	base := filepath.Clean(r.root)
	full := filepath.Join(base, name)
	rel, err := filepath.Rel(base, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid path: %s", name)
	}
	return full, nil
}

// LoadResults reads a prompt-evaluation result file. A missing file yields a
// *MissingInputError.
func (r *FilesystemRepository) LoadResults(name string) (*gate.TestResults, error) {
	path, err := r.ResolvePath(name)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- Path is resolved and validated via ResolvePath
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &MissingInputError{Path: path, Kind: "test results file"}
		}
		return nil, fmt.Errorf("failed to read test results: %w", err)
	}

	var results gate.TestResults
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("failed to unmarshal test results %s: %w", path, err)
	}
	return &results, nil
}

// ReadFile reads a workspace file.
func (r *FilesystemRepository) ReadFile(name string) ([]byte, error) {
	path, err := r.ResolvePath(name)
	if err != nil {
		return nil, err
	}
	// #nosec G304 -- Path is resolved and validated via ResolvePath
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &MissingInputError{Path: path, Kind: "file"}
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// ReportPaths are the files written for one report.
type ReportPaths struct {
	JSON     string `json:"json"`
	Markdown string `json:"markdown"`
}

// SaveReport writes v as indented JSON and markdown alongside it as
// <dir>/<base>.json and <dir>/<base>.md, creating dir when needed.
func (r *FilesystemRepository) SaveReport(dir, base string, v any, markdown string) (ReportPaths, error) {
	outDir, err := r.ResolvePath(dir)
	if err != nil {
		return ReportPaths{}, err
	}
	// G301: Use 0700 for directories
	if err := os.MkdirAll(outDir, 0700); err != nil {
		return ReportPaths{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ReportPaths{}, fmt.Errorf("failed to marshal %s: %w", base, err)
	}

	paths := ReportPaths{
		JSON:     filepath.Join(outDir, base+".json"),
		Markdown: filepath.Join(outDir, base+".md"),
	}
	// G306: Use 0600 for files
	if err := os.WriteFile(paths.JSON, data, 0600); err != nil {
		return ReportPaths{}, fmt.Errorf("failed to write %s: %w", paths.JSON, err)
	}
	if err := os.WriteFile(paths.Markdown, []byte(markdown), 0600); err != nil {
		return ReportPaths{}, fmt.Errorf("failed to write %s: %w", paths.Markdown, err)
	}
	return paths, nil
}
