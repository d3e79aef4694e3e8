// ABOUTME: Generic debouncer that settles rapid value changes into one update
// ABOUTME: Owns a cancellable timer that is disarmed on new value, Cancel and Stop

// Package debounce coalesces bursts of value changes into a single settled value.
package debounce

import (
	"sync"
	"time"
)

// Debouncer delivers the latest value on C once delay has passed with no
// further Set calls. Safe for concurrent use.
type Debouncer[T any] struct {
	delay time.Duration
	out   chan T

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64 // Bumped on every arm/disarm so a stale timer cannot emit
	pending bool
	stopped bool
}

// New creates a debouncer with the given quiet period
func New[T any](delay time.Duration) *Debouncer[T] {
	return &Debouncer[T]{
		delay: delay,
		// Buffer of 1 lets the timer goroutine hand off without waiting for a reader
		out: make(chan T, 1),
	}
}

// C returns the channel of settled values.
// It is closed by Stop.
func (d *Debouncer[T]) C() <-chan T {
	return d.out
}

// Delay returns the quiet period
func (d *Debouncer[T]) Delay() time.Duration {
	return d.delay
}

// Set records v and restarts the quiet period.
// Calls after Stop are ignored.
func (d *Debouncer[T]) Set(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.disarmLocked()

	gen := d.gen
	d.pending = true
	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(gen, v)
	})
}

// Cancel disarms a pending value without emitting it
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.disarmLocked()
}

// Pending reports whether a value is waiting for its quiet period to end
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.pending
}

// Stop disarms any pending value and closes C.
// Safe to call more than once.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.disarmLocked()
	d.stopped = true
	close(d.out)
}

// disarmLocked stops the current timer and invalidates it if it already fired
func (d *Debouncer[T]) disarmLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	d.gen++
	d.pending = false
}

// fire runs on the timer goroutine
func (d *Debouncer[T]) fire(gen uint64, v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// Superseded, cancelled or stopped while the timer was in flight
	if d.stopped || gen != d.gen {
		return
	}

	d.timer = nil
	d.pending = false

	// Replace an unread value so the reader always sees the latest one
	select {
	case <-d.out:
	default:
	}

	d.out <- v
}
