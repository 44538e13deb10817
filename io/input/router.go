// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"gioui.org/arbiter/f32"
	"gioui.org/arbiter/io/pointer"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/exp/slices"
)

// Router routes pointer events to the recognizers tracking them.
// A Router is not safe for concurrent use; events are expected to be
// queued from the event loop.
type Router struct {
	arena    Arena
	targets  []Target
	pointers []pointerInfo
}

// Arena is the part of the gesture arena driven by the router.
type Arena interface {
	Close(id pointer.ID)
	Sweep(id pointer.ID)
}

// Handler receives the events of the pointers it is routed.
type Handler interface {
	HandleEvent(e pointer.Event)
}

// Target is a region of the user interface that may start
// recognizers for new pointers.
type Target interface {
	// Hit reports whether the global position pos lies within
	// the target.
	Hit(pos f32.Point) bool
	// AddPointer is called with the Press of every pointer that
	// hits the target.
	AddPointer(e pointer.Event)
}

// tracer traces with key 'arbiter.input'.
func tracer() tracing.Trace {
	return tracing.Select("arbiter.input")
}

// NewRouter returns a router driving arena. A nil arena is
// allowed for routing without arbitration.
func NewRouter(arena Arena) *Router {
	return &Router{arena: arena}
}

// Register adds a target on top of the previously registered
// targets.
func (q *Router) Register(t Target) {
	q.targets = append(q.targets, t)
}

// Unregister removes a target. Recognizers it already started
// keep their routes.
func (q *Router) Unregister(t Target) {
	if i := slices.Index(q.targets, t); i != -1 {
		q.targets = slices.Delete(q.targets, i, i+1)
	}
}

// Queue delivers events in order.
func (q *Router) Queue(events ...pointer.Event) {
	for _, e := range events {
		q.queue(e)
	}
}

func (q *Router) queue(e pointer.Event) {
	tracer().Debugf("pointer %d: %v at %v", e.PointerID, e.Kind, e.Position)
	switch e.Kind {
	case pointer.Press:
		// Topmost targets join the arena first.
		for i := len(q.targets) - 1; i >= 0; i-- {
			if t := q.targets[i]; t.Hit(e.Position) {
				t.AddPointer(e)
			}
		}
		q.deliver(e)
		if q.arena != nil {
			q.arena.Close(e.PointerID)
		}
	case pointer.Move:
		q.deliver(e)
	case pointer.Release, pointer.Cancel:
		q.deliver(e)
		if q.arena != nil {
			q.arena.Sweep(e.PointerID)
		}
	default:
		panic("unsupported pointer event type")
	}
}
