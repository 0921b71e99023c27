package worker

import (
	"sync"
	"time"
)

// Debouncer delays a call until a fixed quiet period has passed since the
// most recent trigger. A trigger superseded by a newer one is simply
// discarded; only the latest scheduled function ever runs.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn to run after the quiet period, cancelling any
// previously scheduled call.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
