package application_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/felixgeelhaar/reqgate/pkg/application"
	"github.com/felixgeelhaar/reqgate/pkg/domain/gate"
	"github.com/felixgeelhaar/reqgate/pkg/storage"
)

const passingResults = `{"results":{"stats":{"successes":4,"failures":0},"results":[
{"testCase":{"description":"agent consistency run"},"pass":true},
{"testCase":{"description":"doc quality"},"pass":true},
{"testCase":{"description":"tool usage"},"pass":true},
{"testCase":{"description":"template compliance"},"pass":true}]}}`

const failingResults = `{"results":{"stats":{"successes":3,"failures":1},"results":[
{"testCase":{"description":"agent consistency run"},"pass":true},
{"testCase":{"description":"doc quality"},"pass":true},
{"testCase":{"description":"tool usage"},"pass":false,"error":"no tool call"},
{"testCase":{"description":"template compliance"},"pass":true}]}}`

func newGateService(root string) *application.GateService {
	ev := gate.NewEvaluator(gate.DefaultThresholds(), gate.EmptyFail)
	return application.NewGateService(storage.NewFilesystemRepository(root), ev, nil).WithClock(fixedClock, fixedID)
}

func TestGateService_Pass(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "test-results", "latest.json"), passingResults)

	out, err := newGateService(root).Run(context.Background(), "test-results/latest.json", "test-results")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !out.Report.Summary.Passed {
		t.Errorf("expected pass: %+v", out.Report.FailedMetrics())
	}
	for _, name := range []string{"quality-report.json", "quality-report.md"} {
		if _, err := os.Stat(filepath.Join(root, "test-results", name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}

func TestGateService_Fail(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "latest.json"), failingResults)

	out, err := newGateService(root).Run(context.Background(), "latest.json", "out")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Report.Summary.Passed {
		t.Fatal("expected failure")
	}
	failed := out.Report.FailedMetrics()
	var cats []gate.Category
	for _, m := range failed {
		cats = append(cats, m.Category)
	}
	if len(cats) != 2 || cats[0] != gate.ToolUsage || cats[1] != gate.OverallSuccessRate {
		t.Errorf("failed categories = %v", cats)
	}
	if !strings.Contains(out.Markdown, "Improvement Suggestions") {
		t.Error("failed gate markdown must include suggestions")
	}
}

func TestGateService_MissingResults(t *testing.T) {
	_, err := newGateService(t.TempDir()).Run(context.Background(), "test-results/latest.json", "test-results")

	var missing *storage.MissingInputError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingInputError, got %v", err)
	}
}

func TestGateService_MalformedResults(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "latest.json"), "{")

	_, err := newGateService(root).Run(context.Background(), "latest.json", "out")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, storage.ErrMissingInput) {
		t.Error("malformed input must not be reported as missing")
	}
}
