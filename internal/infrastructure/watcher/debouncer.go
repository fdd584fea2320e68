package watcher

import (
	"sort"
	"sync"
	"time"
)

// Debouncer collects paths and flushes them once no new path arrived for window.
// Flushes never overlap, and a flush never starts after Stop returns.
type Debouncer struct {
	window  time.Duration
	paths   map[string]struct{}
	mu      sync.Mutex
	timer   *time.Timer
	onFlush func([]string)
	stopped bool

	flushMu  sync.Mutex
	inflight sync.WaitGroup
}

// NewDebouncer creates a debouncer calling onFlush with sorted, distinct paths.
func NewDebouncer(window time.Duration, onFlush func([]string)) *Debouncer {
	return &Debouncer{
		window:  window,
		paths:   make(map[string]struct{}),
		onFlush: onFlush,
	}
}

// Add records path and restarts the quiet window.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.paths[path] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.stopped || len(d.paths) == 0 {
		d.mu.Unlock()
		return
	}

	paths := make([]string, 0, len(d.paths))
	for p := range d.paths {
		paths = append(paths, p)
	}
	d.paths = make(map[string]struct{})
	d.timer = nil
	d.inflight.Add(1)
	d.mu.Unlock()

	defer d.inflight.Done()

	sort.Strings(paths)

	d.flushMu.Lock()
	defer d.flushMu.Unlock()
	if d.onFlush != nil {
		d.onFlush(paths)
	}
}

// Stop drops pending paths and waits for a running flush to finish.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.paths = make(map[string]struct{})
	d.mu.Unlock()

	d.inflight.Wait()
}
