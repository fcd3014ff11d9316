package application_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/felixgeelhaar/reqgate/pkg/application"
	"github.com/felixgeelhaar/reqgate/pkg/domain/consistency"
	"github.com/felixgeelhaar/reqgate/pkg/domain/document"
	"github.com/felixgeelhaar/reqgate/pkg/domain/report"
	"github.com/felixgeelhaar/reqgate/pkg/storage"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }
func fixedID() string       { return "run-1" }

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

func newValidationService(root string) *application.ValidationService {
	repo := storage.NewFilesystemRepository(root)
	return application.NewValidationService(repo, consistency.NewComparator(0), nil).WithClock(fixedClock, fixedID)
}

func TestValidationService_SampleOnly(t *testing.T) {
	root := t.TempDir()

	out, err := newValidationService(root).Run(context.Background(), application.ValidationOptions{
		InputDir:  "examples",
		OutputDir: "test-results/validation",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if out.Report.Summary.TotalTests != 1 || !out.Passed() {
		t.Fatalf("summary = %+v", out.Report.Summary)
	}
	if out.Report.Details[0].Name != document.SampleName {
		t.Errorf("first result = %q, want the sample", out.Report.Details[0].Name)
	}

	data, err := os.ReadFile(filepath.Join(root, "test-results", "validation", "validation-report.json"))
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	var persisted report.ValidationReport
	if err := json.Unmarshal(data, &persisted); err != nil {
		t.Fatal(err)
	}
	if persisted.ID != "run-1" || persisted.Summary.TotalTests != 1 {
		t.Errorf("persisted = %+v", persisted.Summary)
	}
	if _, err := os.Stat(filepath.Join(root, "test-results", "validation", "validation-report.md")); err != nil {
		t.Errorf("markdown report not written: %v", err)
	}
}

func TestValidationService_DiscoveredPairs(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "examples")
	writeFile(t, filepath.Join(dir, "bookstore.yaml"), document.SampleYAML)
	writeFile(t, filepath.Join(dir, "bookstore-output.md"), document.SampleMarkdown)
	writeFile(t, filepath.Join(dir, "broken.yaml"), "functional_requirements: [")
	writeFile(t, filepath.Join(dir, "broken.md"), "# Broken")
	writeFile(t, filepath.Join(dir, "mismatch.yaml"), document.SampleYAML)
	writeFile(t, filepath.Join(dir, "mismatch.md"), "Just a paragraph.\n")

	out, err := newValidationService(root).Run(context.Background(), application.ValidationOptions{
		InputDir:  "examples",
		OutputDir: "out",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	var names []string
	for _, d := range out.Report.Details {
		names = append(names, d.Name)
	}
	want := []string{document.SampleName, "bookstore", "broken", "mismatch"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("pair order (-want +got):\n%s", diff)
	}

	if !out.Report.Details[1].Passed {
		t.Errorf("bookstore pair should pass: %+v", out.Report.Details[1])
	}
	broken := out.Report.Details[2]
	if broken.Passed || broken.Score != 0 || !strings.Contains(broken.Error, "parse failed") {
		t.Errorf("broken pair = %+v", broken)
	}
	if out.Report.Details[3].Passed {
		t.Error("mismatch pair should fail")
	}

	s := out.Report.Summary
	if s.TotalTests != 4 || s.PassedTests != 2 || s.FailedTests != 2 || s.SuccessRate != 50 {
		t.Errorf("summary = %+v", s)
	}
	if out.Passed() {
		t.Error("batch with failures must not pass")
	}
}

func TestValidationService_Idempotent(t *testing.T) {
	root := t.TempDir()
	svc := newValidationService(root)
	opts := application.ValidationOptions{InputDir: "examples", OutputDir: "out"}

	first, err := svc.Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first.Report, second.Report); diff != "" {
		t.Errorf("re-run differs (-first +second):\n%s", diff)
	}
	if first.Markdown != second.Markdown {
		t.Error("markdown differs between runs")
	}
}

func TestValidationService_SkipSampleEmpty(t *testing.T) {
	out, err := newValidationService(t.TempDir()).Run(context.Background(), application.ValidationOptions{
		InputDir:   "examples",
		OutputDir:  "out",
		SkipSample: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.Report.Summary.TotalTests != 0 || out.Passed() {
		t.Errorf("empty batch = %+v", out.Report.Summary)
	}
}

func TestValidationService_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "examples", "a.yaml"), document.SampleYAML)
	writeFile(t, filepath.Join(root, "examples", "a.md"), document.SampleMarkdown)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newValidationService(root).Run(ctx, application.ValidationOptions{InputDir: "examples", OutputDir: "out"}); err == nil {
		t.Fatal("expected context error")
	}
}
