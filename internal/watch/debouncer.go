package watch

import (
	"log/slog"
	"sync"
	"time"
)

// Debouncer coalesces rapid events into a single callback invocation.
// The callback receives every distinct path seen since the last firing, in
// the order they were first triggered. Callbacks never overlap: a firing
// that comes due while the previous callback runs waits for it.
type Debouncer struct {
	interval time.Duration
	mu       sync.Mutex
	runMu    sync.Mutex
	timer    *time.Timer
	callback func(paths []string)
	pending  []string
}

// NewDebouncer creates a debouncer that waits for interval of quiet before
// firing callback.
func NewDebouncer(interval time.Duration, callback func(paths []string)) *Debouncer {
	return &Debouncer{
		interval: interval,
		callback: callback,
	}
}

// Trigger records an event for path and restarts the quiet period.
func (d *Debouncer) Trigger(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !contains(d.pending, path) {
		d.pending = append(d.pending, path)
	}

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.interval, d.fire)
}

func (d *Debouncer) fire() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("debouncer callback panicked", slog.Any("error", r))
		}
	}()

	d.runMu.Lock()
	defer d.runMu.Unlock()

	d.mu.Lock()
	paths := d.pending
	d.pending = nil
	d.mu.Unlock()

	if len(paths) == 0 {
		return
	}

	d.callback(paths)
}

// Stop cancels any pending debounced callback and forgets pending paths.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	d.pending = nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}

	return false
}
