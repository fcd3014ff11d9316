package wiring

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/felixgeelhaar/reqgate/pkg/application"
)

func TestNewWorkspace(t *testing.T) {
	root := t.TempDir()
	ws, err := NewWorkspace(root, nil)
	if err != nil {
		t.Fatalf("NewWorkspace: %v", err)
	}
	if ws.Repo == nil || ws.Logger == nil {
		t.Fatal("expected repository and logger")
	}
	if ws.Repo.Root() != root {
		t.Errorf("Root = %q", ws.Repo.Root())
	}

	svc := BuildAppServices(ws)
	if svc.Validation == nil || svc.Gate == nil || svc.Health == nil || svc.Grade == nil {
		t.Fatalf("services not wired: %+v", svc)
	}
}

func TestNewWorkspace_InvalidConfig(t *testing.T) {
	t.Setenv("GATE_EMPTY_CATEGORY", "bogus")
	if _, err := NewWorkspace(t.TempDir(), nil); err == nil {
		t.Fatal("expected config error")
	}
}

func TestBuildPublishService_NotConfigured(t *testing.T) {
	for _, k := range []string{"GITHUB_TOKEN", "GITHUB_REPOSITORY"} {
		if v, ok := os.LookupEnv(k); ok {
			t.Cleanup(func() { _ = os.Setenv(k, v) })
			_ = os.Unsetenv(k)
		}
	}
	ws, err := NewWorkspace(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := BuildPublishService(context.Background(), ws); !errors.Is(err, application.ErrPublishNotConfigured) {
		t.Errorf("expected ErrPublishNotConfigured, got %v", err)
	}

	ws.Config.GitHub.Token = "tok"
	ws.Config.GitHub.Repository = "acme/reqs"
	if _, err := BuildPublishService(context.Background(), ws); err != nil {
		t.Errorf("BuildPublishService: %v", err)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, false).Debug("hidden")
	NewLogger(&buf, true).Debug("shown", "k", "v")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message logged without verbose")
	}
	if !strings.Contains(out, "msg=shown k=v") {
		t.Errorf("output = %q", out)
	}
}
