package store

import (
	"sync"
	"time"
)

// Debouncer coalesces a rapid stream of values into one commit: each
// Trigger cancels and restarts a fixed-duration timer holding the latest
// value, and the commit fires when the timer expires undisturbed.
//
// Stop must be called on teardown so no commit lands after disposal.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	commit  func(string)
	timer   *time.Timer
	pending string
	armed   bool
	stopped bool
}

// NewDebouncer creates a debouncer committing through fn.
func NewDebouncer(delay time.Duration, fn func(string)) *Debouncer {
	return &Debouncer{delay: delay, commit: fn}
}

// Trigger records the value and restarts the timer.
func (d *Debouncer) Trigger(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.pending = value
	d.armed = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

// Flush commits any pending value immediately, cancelling the timer.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	if !d.armed || d.stopped {
		d.mu.Unlock()
		return
	}
	value := d.pending
	d.armed = false
	d.mu.Unlock()

	d.commit(value)
}

// Cancel drops any pending commit; later Triggers still work.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.armed = false
	if d.timer != nil {
		d.timer.Stop()
	}
}

// Stop cancels any pending commit permanently.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.armed = false
	if d.timer != nil {
		d.timer.Stop()
	}
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if !d.armed || d.stopped {
		d.mu.Unlock()
		return
	}
	value := d.pending
	d.armed = false
	d.mu.Unlock()

	d.commit(value)
}
