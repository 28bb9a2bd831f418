package session

import (
	"sync"
	"time"
)

// Debouncer runs fn once after the last Trigger in a burst. Each Trigger
// cancels the pending run and schedules a new one delay later. Errors from
// timer runs are dropped; fn reports them itself.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func() error
	timer   *time.Timer
	gen     uint64
	pending bool
	stopped bool
}

// NewDebouncer creates a debouncer for fn
func NewDebouncer(delay time.Duration, fn func() error) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger (re)schedules fn
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = true
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || !d.pending || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.mu.Unlock()
	_ = d.fn()
}

// Flush runs a pending fn immediately. It reports whether fn ran along with
// its error.
func (d *Debouncer) Flush() (bool, error) {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	run := d.pending && !d.stopped
	d.pending = false
	d.mu.Unlock()
	if !run {
		return false, nil
	}
	return true, d.fn()
}

// Stop cancels any pending run; later Triggers are ignored
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
	}
}

// Pending reports whether a run is scheduled
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}
