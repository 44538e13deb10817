// SPDX-License-Identifier: Unlicense OR MIT

/*
Package clock implements the one-shot timers used by gesture
recognizers.

Timers are always fired on the event loop that delivers pointer
events, so a timer callback never runs concurrently with event
handling. Stopping a timer from the event loop guarantees that its
callback will not run afterwards.

Manual is a virtual clock that only moves when told to, and is what
tests and trace replays use. Loop runs callbacks on a single
goroutine in wall-clock time.
*/
package clock

import (
	"time"

	"golang.org/x/exp/slices"
)

// Scheduler schedules one-shot callbacks.
type Scheduler interface {
	// AfterFunc arranges for f to run on the event loop
	// after d has elapsed.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a scheduled callback.
type Timer interface {
	// Stop prevents the timer from firing. It reports
	// whether the call stopped the timer, and is a no-op
	// for timers that already fired or were stopped.
	Stop() bool
}

// Manual is a Scheduler whose time advances only through Advance
// and AdvanceTo. The zero value starts at time zero.
type Manual struct {
	now   time.Duration
	seq   uint64
	queue []*manualTimer
}

type manualTimer struct {
	m    *Manual
	when time.Duration
	// seq orders timers due at the same instant.
	seq  uint64
	f    func()
	done bool
}

// Now returns the elapsed virtual time.
func (m *Manual) Now() time.Duration {
	return m.now
}

func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}
	t := &manualTimer{m: m, when: m.now + d, seq: m.seq, f: f}
	m.seq++
	i, _ := slices.BinarySearchFunc(m.queue, t, compareTimers)
	m.queue = slices.Insert(m.queue, i, t)
	return t
}

// Pending returns the number of timers waiting to fire.
func (m *Manual) Pending() int {
	return len(m.queue)
}

// Advance the clock by d, firing every timer that becomes due
// in deadline order.
func (m *Manual) Advance(d time.Duration) {
	m.AdvanceTo(m.now + d)
}

// AdvanceTo moves the clock to t, firing every timer due at or
// before t. Timers scheduled by callbacks fire too if they are
// due by t. Moving backwards is a no-op.
func (m *Manual) AdvanceTo(t time.Duration) {
	for len(m.queue) > 0 && m.queue[0].when <= t {
		next := m.queue[0]
		m.queue = slices.Delete(m.queue, 0, 1)
		m.now = next.when
		next.done = true
		next.f()
	}
	if t > m.now {
		m.now = t
	}
}

func (t *manualTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	if i := slices.Index(t.m.queue, t); i != -1 {
		t.m.queue = slices.Delete(t.m.queue, i, i+1)
	}
	return true
}

func compareTimers(a, b *manualTimer) int {
	switch {
	case a.when < b.when:
		return -1
	case a.when > b.when:
		return 1
	case a.seq < b.seq:
		return -1
	case a.seq > b.seq:
		return 1
	default:
		return 0
	}
}
