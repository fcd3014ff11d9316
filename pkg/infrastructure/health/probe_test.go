package health_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/felixgeelhaar/reqgate/pkg/infrastructure/health"
)

func TestProbeModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/models" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":"anthropic/claude-3.5-sonnet"},{"id":"openai/gpt-4o"},{"id":"anthropic/claude-3-haiku"}]}`))
	}))
	defer srv.Close()

	res, err := health.NewProber(srv.Client(), time.Second).ProbeModels(context.Background(), srv.URL+"/api/v1/", "sk-test")
	if err != nil {
		t.Fatalf("ProbeModels: %v", err)
	}
	if res.ModelCount != 3 || res.ClaudeModels != 2 {
		t.Errorf("result = %+v, want 3 models with 2 Claude", res)
	}
}

func TestProbeModels_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := health.NewProber(srv.Client(), time.Second).ProbeModels(context.Background(), srv.URL, "bad")

	var netErr *health.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if netErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d", netErr.StatusCode)
	}
	if netErr.Timeout {
		t.Error("HTTP error must not be reported as timeout")
	}
}

func TestProbeModels_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := health.NewProber(srv.Client(), 50*time.Millisecond).ProbeModels(context.Background(), srv.URL, "sk")

	var netErr *health.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if !netErr.Timeout {
		t.Errorf("expected timeout, got %v", netErr)
	}
}

func TestProbeModels_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := health.NewProber(nil, time.Second).ProbeModels(context.Background(), url, "sk")
	var netErr *health.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
}

func TestCheckVariables(t *testing.T) {
	env := map[string]string{
		"OPENROUTER_API_KEY":  "sk-or-v1-abcdefghijkl",
		"OPENROUTER_BASE_URL": "https://openrouter.ai/api/v1",
		"ANTHROPIC_API_KEY":   "short",
	}
	got := health.CheckVariables(func(k string) string { return env[k] })

	if len(got) != len(health.RequiredVariables) {
		t.Fatalf("got %d statuses", len(got))
	}
	if got[0].Display != "sk-or-v1-a..." {
		t.Errorf("masked key = %q", got[0].Display)
	}
	if got[1].Display != "https://openrouter.ai/api/v1" {
		t.Errorf("base url = %q", got[1].Display)
	}
	if got[2].Display != "*****" {
		t.Errorf("short key = %q", got[2].Display)
	}
	if got[3].Present {
		t.Error("ANTHROPIC_BASE_URL should be missing")
	}
}
