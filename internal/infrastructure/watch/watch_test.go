package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestFilter(t *testing.T) {
	f := NewFilter(nil, []string{"draft-*"})

	tests := []struct {
		path  string
		match bool
	}{
		{"examples/req.yaml", true},
		{"examples/req.YML", true},
		{"examples/req-output.md", true},
		{"examples/notes.txt", false},
		{"examples/.req.yaml.swp", false},
		{"examples/req.md~", false},
		{"examples/draft-req.yaml", false},
	}
	for _, tt := range tests {
		if got := f.Matches(tt.path); got != tt.match {
			t.Errorf("Matches(%q) = %v, want %v", tt.path, got, tt.match)
		}
	}
}

func TestBatcher_CoalescesChanges(t *testing.T) {
	var (
		mu      sync.Mutex
		batches [][]Change
	)
	b := NewBatcher(40*time.Millisecond, func(c []Change) {
		mu.Lock()
		batches = append(batches, c)
		mu.Unlock()
	})
	defer b.Stop()

	b.Add(Change{Path: "b.md", Op: "create"})
	b.Add(Change{Path: "a.yaml", Op: "write"})
	b.Add(Change{Path: "b.md", Op: "write"})

	time.Sleep(150 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	want := [][]Change{{{Path: "a.yaml", Op: "write"}, {Path: "b.md", Op: "write"}}}
	if diff := cmp.Diff(want, batches); diff != "" {
		t.Errorf("batches (-want +got):\n%s", diff)
	}
}

func TestBatcher_Stop(t *testing.T) {
	called := make(chan struct{}, 1)
	b := NewBatcher(30*time.Millisecond, func([]Change) { called <- struct{}{} })

	b.Add(Change{Path: "a.md", Op: "write"})
	b.Stop()

	select {
	case <-called:
		t.Error("flush after Stop")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDocumentWatcher_ReportsDocumentChanges(t *testing.T) {
	dir := t.TempDir()

	w, err := NewDocumentWatcher(dir, nil, 50*time.Millisecond, nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan []Change, 4)
	go func() {
		_ = w.Run(ctx, func(c []Change) { got <- c })
	}()

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "req.yaml"), []byte("a: 1"), 0600); err != nil {
		t.Fatal(err)
	}

	select {
	case changes := <-got:
		for _, c := range changes {
			if filepath.Base(c.Path) != "req.yaml" {
				t.Errorf("unexpected change %+v", c)
			}
		}
		if len(changes) == 0 {
			t.Error("empty batch")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestDocumentWatcher_ContextCancellation(t *testing.T) {
	w, err := NewDocumentWatcher(t.TempDir(), nil, 0, nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, func([]Change) {}) }()
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("watcher did not stop after context cancellation")
	}
}

func TestNewDocumentWatcher_MissingDir(t *testing.T) {
	if _, err := NewDocumentWatcher(filepath.Join(t.TempDir(), "nope"), nil, 0, nil); err == nil {
		t.Error("expected error for missing directory")
	}
}
