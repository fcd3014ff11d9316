// Package watch re-triggers work when requirement documents change on disk.
package watch

import (
	"sort"
	"sync"
	"time"
)

// Change is a single file change.
type Change struct {
	Path string
	Op   string // create, write, remove, rename
}

// Batcher collects changes and flushes them once no new change arrived for
// the window. A path changed several times is reported once with its latest
// operation.
type Batcher struct {
	window time.Duration
	flush  func([]Change)

	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]string
}

func NewBatcher(window time.Duration, flush func([]Change)) *Batcher {
	return &Batcher{
		window:  window,
		flush:   flush,
		pending: make(map[string]string),
	}
}

// Add records a change and restarts the quiet window.
func (b *Batcher) Add(c Change) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pending[c.Path] = c.Op
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.window, b.fire)
}

func (b *Batcher) fire() {
	b.mu.Lock()
	changes := make([]Change, 0, len(b.pending))
	for p, op := range b.pending {
		changes = append(changes, Change{Path: p, Op: op})
	}
	b.pending = make(map[string]string)
	b.mu.Unlock()

	if len(changes) == 0 {
		return
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].Path < changes[j].Path })
	b.flush(changes)
}

// Stop drops pending changes and cancels the flush.
func (b *Batcher) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.timer != nil {
		b.timer.Stop()
	}
	b.pending = make(map[string]string)
}
