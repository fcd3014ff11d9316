package watch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWindow is the quiet period before a batch of changes is flushed.
const DefaultWindow = 500 * time.Millisecond

// DocumentWatcher watches one input directory for requirement document
// changes. Subdirectories are not watched; pairs live at the top level.
type DocumentWatcher struct {
	fs     *fsnotify.Watcher
	dir    string
	filter *Filter
	window time.Duration
	logger *slog.Logger
}

// NewDocumentWatcher starts watching dir. A zero window uses DefaultWindow.
func NewDocumentWatcher(dir string, filter *Filter, window time.Duration, logger *slog.Logger) (*DocumentWatcher, error) {
	if filter == nil {
		filter = NewFilter(nil, nil)
	}
	if window <= 0 {
		window = DefaultWindow
	}
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	return &DocumentWatcher{fs: fsw, dir: dir, filter: filter, window: window, logger: logger}, nil
}

// Run blocks until ctx is cancelled, calling onChange with each batch of
// matching changes. onChange runs on the caller's goroutine, so batches never
// overlap.
func (w *DocumentWatcher) Run(ctx context.Context, onChange func([]Change)) error {
	defer func() { _ = w.fs.Close() }()

	batches := make(chan []Change, 1)
	b := NewBatcher(w.window, func(c []Change) {
		select {
		case batches <- c:
		case <-ctx.Done():
		}
	})
	defer b.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case changes := <-batches:
			onChange(changes)

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			op := opName(event.Op)
			if op == "" || !w.filter.Matches(event.Name) {
				continue
			}
			w.logger.Debug("document changed", "path", event.Name, "op", op)
			b.Add(Change{Path: event.Name, Op: op})

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

func opName(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Create):
		return "create"
	case op.Has(fsnotify.Write):
		return "write"
	case op.Has(fsnotify.Remove):
		return "remove"
	case op.Has(fsnotify.Rename):
		return "rename"
	default:
		return ""
	}
}
