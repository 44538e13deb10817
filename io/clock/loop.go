// SPDX-License-Identifier: Unlicense OR MIT

package clock

import (
	"context"
	"sync"
	"time"
)

// Loop is a cooperative event loop. Tasks posted to it and timers
// scheduled on it run one at a time on the goroutine calling Run.
type Loop struct {
	start time.Time

	mu    sync.Mutex
	tasks []func()
	wake  chan struct{}
}

type loopTimer struct {
	l *Loop
	t *time.Timer
	// stopped is only accessed from the loop goroutine.
	stopped bool
}

// NewLoop returns a loop whose clock starts now.
func NewLoop() *Loop {
	return &Loop{
		start: time.Now(),
		wake:  make(chan struct{}, 1),
	}
}

// Now returns the time elapsed since the loop was created.
func (l *Loop) Now() time.Duration {
	return time.Since(l.start)
}

// Post schedules f to run on the loop. It is safe to call Post
// from any goroutine.
func (l *Loop) Post(f func()) {
	l.mu.Lock()
	l.tasks = append(l.tasks, f)
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// AfterFunc schedules f to run on the loop after d. The returned
// Timer must only be stopped from the loop goroutine.
func (l *Loop) AfterFunc(d time.Duration, f func()) Timer {
	lt := &loopTimer{l: l}
	lt.t = time.AfterFunc(d, func() {
		l.Post(func() {
			if lt.stopped {
				return
			}
			lt.stopped = true
			f()
		})
	})
	return lt
}

// Run executes posted tasks until ctx is done, and returns
// the context's error.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.mu.Lock()
		tasks := l.tasks
		l.tasks = nil
		l.mu.Unlock()
		for _, f := range tasks {
			if err := ctx.Err(); err != nil {
				return err
			}
			f()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

func (t *loopTimer) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	t.t.Stop()
	return true
}
