// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package login

import (
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// Debouncer runs the most recently triggered function once the trigger has
// been quiet for a fixed period. It is safe for concurrent use.
type Debouncer struct {
	clock clock.WithDelayedExecution
	quiet time.Duration

	mu         sync.Mutex
	generation uint64
	pending    func()
	timer      clock.Timer
	stopped    bool
}

// NewDebouncer creates a debouncer. A quiet period of zero runs triggers inline.
func NewDebouncer(clk clock.WithDelayedExecution, quiet time.Duration) *Debouncer {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Debouncer{clock: clk, quiet: quiet}
}

// Trigger schedules fn, replacing any function still waiting.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}

	d.generation++
	generation := d.generation
	previous := d.timer
	d.timer = nil

	if d.quiet <= 0 {
		d.pending = nil
		d.mu.Unlock()
		stopTimer(previous)
		fn()
		return
	}

	d.pending = fn
	d.mu.Unlock()

	stopTimer(previous)

	// Never call into the clock while holding d.mu; fake clocks fire callbacks under their own lock.
	timer := d.clock.AfterFunc(d.quiet, func() { d.fire(generation) })

	d.mu.Lock()
	if d.generation == generation && d.pending != nil {
		d.timer = timer
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()

	timer.Stop()
}

// Flush runs the waiting function now. It reports whether one was waiting.
func (d *Debouncer) Flush() bool {
	fn := d.take()
	if fn == nil {
		return false
	}
	fn()
	return true
}

// Cancel drops the waiting function without running it.
func (d *Debouncer) Cancel() {
	d.take()
}

// Stop cancels the waiting function and ignores every later trigger.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()

	d.take()
}

// take detaches the waiting function and its timer.
func (d *Debouncer) take() func() {
	d.mu.Lock()
	fn := d.pending
	timer := d.timer
	d.pending = nil
	d.timer = nil
	d.generation++
	d.mu.Unlock()

	stopTimer(timer)
	return fn
}

// fire is the timer callback. It must not touch the clock or the timer.
func (d *Debouncer) fire(generation uint64) {
	d.mu.Lock()
	if generation != d.generation || d.pending == nil {
		d.mu.Unlock()
		return
	}
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	fn()
}

func stopTimer(timer clock.Timer) {
	if timer != nil {
		timer.Stop()
	}
}
