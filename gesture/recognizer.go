// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"gioui.org/arbiter/f32"
	"gioui.org/arbiter/io/arena"
	"gioui.org/arbiter/io/pointer"
	"golang.org/x/exp/slices"
)

// Recognizer is the state machine shared by all gestures. It tracks
// pointers through the router, competes for them in the arena and
// dispatches pointer events to its Hooks.
//
// A Recognizer reaches exactly one of the accept or reject outcomes,
// after which it disposes itself and ignores every further event.
type Recognizer struct {
	env   Env
	mode  RejectMode
	hooks Hooks

	seq sequence
	// last is the pointer of the latest press.
	last    pointer.ID
	tracked []pointer.ID
	entries []trackedEntry
	members membership

	resolved bool
	disposed bool
}

// Hooks supply the behavior of a concrete gesture. Nil hooks are
// skipped, except for Cancel whose default rejects the gesture.
type Hooks struct {
	Down   func(e pointer.Event)
	Move   func(e pointer.Event)
	Up     func(e pointer.Event)
	Cancel func(e pointer.Event)
	// Accept is called when the arena accepts the gesture.
	Accept func()
	// Reject is called when the gesture is rejected, by the
	// arena or by itself.
	Reject func()
	// Dispose releases the gesture's own resources. It is
	// called once, first in disposal.
	Dispose func()
	// Disposed is called once, last in disposal.
	Disposed func()
}

type trackedEntry struct {
	id    pointer.ID
	entry arena.Entry
}

// NewRecognizer returns a recognizer for a single gesture attempt.
func NewRecognizer(env Env, mode RejectMode, hooks Hooks) *Recognizer {
	return &Recognizer{env: env, mode: mode, hooks: hooks}
}

// AddPointer starts tracking the pointer pressed in e. It must be
// called before the press is delivered by the router.
func (r *Recognizer) AddPointer(e pointer.Event) {
	if r.disposed {
		return
	}
	id := e.PointerID
	r.env.Router.AddRoute(id, r)
	r.tracked = append(r.tracked, id)
	r.entries = append(r.entries, trackedEntry{id: id, entry: r.env.Arena.Add(id, r)})
}

// HandleEvent implements input.Handler.
func (r *Recognizer) HandleEvent(e pointer.Event) {
	if r.disposed {
		return
	}
	switch e.Kind {
	case pointer.Press:
		r.last = e.PointerID
		r.seq.press(r.env.Surface.Local(e.Position))
		call(r.hooks.Down, e)
	case pointer.Move:
		r.seq.moveTo(r.env.Surface.Local(e.Position))
		if rejectByOffset(r.mode, r.env.Surface, &r.seq, r.env.slop()) {
			tracer().Debugf("pointer %d moved to %v: rejecting", e.PointerID, r.seq.current())
			r.Reject()
			return
		}
		call(r.hooks.Move, e)
	case pointer.Release:
		call(r.hooks.Up, e)
		r.stopTracking(e.PointerID)
	case pointer.Cancel:
		if r.hooks.Cancel != nil {
			r.hooks.Cancel(e)
		} else {
			r.Reject()
		}
		r.stopTracking(e.PointerID)
	}
}

// Offset returns the latest local position of the tracked
// pointer, or the origin if none was seen.
func (r *Recognizer) Offset() f32.Point {
	return r.seq.current()
}

// Hold keeps the arena of the latest pressed pointer from being
// resolved by default or by a sweep, until the recognizer is
// disposed. Hold does nothing before the first press.
func (r *Recognizer) Hold() {
	if !r.seq.hasDown || r.disposed {
		return
	}
	r.members.hold(r.env.Arena, r.last)
}

// Resolve reports d to the arena for every pointer still competing.
// The arena's decision arrives through AcceptGesture and
// RejectGesture. Entries stay until the arena answers, so a claim
// may still be withdrawn by a later rejection.
func (r *Recognizer) Resolve(d arena.Disposition) {
	entries := r.entries
	if d == arena.Rejected {
		r.entries = nil
	} else {
		entries = slices.Clone(entries)
	}
	for _, e := range entries {
		e.entry.Resolve(d)
	}
}

// Reject the gesture. The reject outcome is reached even if the
// arena has already decided every pointer.
func (r *Recognizer) Reject() {
	if r.resolved || r.disposed {
		return
	}
	r.Resolve(arena.Rejected)
	if !r.resolved {
		r.finish(false)
	}
}

// AcceptGesture implements arena.Member.
func (r *Recognizer) AcceptGesture(id pointer.ID) {
	r.dropEntry(id)
	r.finish(true)
}

// RejectGesture implements arena.Member.
func (r *Recognizer) RejectGesture(id pointer.ID) {
	r.dropEntry(id)
	r.finish(false)
}

// Dispose ends the gesture, for example because its surface is
// removed. An unresolved gesture is rejected first.
func (r *Recognizer) Dispose() {
	if r.disposed {
		return
	}
	if !r.resolved {
		r.Reject()
		return
	}
	r.dispose()
}

func (r *Recognizer) finish(accepted bool) {
	if r.resolved || r.disposed {
		return
	}
	r.resolved = true
	if accepted {
		tracer().Debugf("gesture accepted at %v", r.seq.current())
		call0(r.hooks.Accept)
	} else {
		tracer().Debugf("gesture rejected at %v", r.seq.current())
		call0(r.hooks.Reject)
	}
	r.dispose()
}

func (r *Recognizer) dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	call0(r.hooks.Dispose)
	for _, id := range slices.Clone(r.tracked) {
		r.stopTracking(id)
	}
	// Give up pointers still competing before releasing their
	// arenas, so a released arena cannot pick this recognizer.
	r.Resolve(arena.Rejected)
	r.members.releaseAll(r.env.Arena, r.stopTracking)
	call0(r.hooks.Disposed)
}

func (r *Recognizer) stopTracking(id pointer.ID) {
	i := slices.Index(r.tracked, id)
	if i == -1 {
		return
	}
	r.tracked = slices.Delete(r.tracked, i, i+1)
	r.env.Router.RemoveRoute(id, r)
}

func (r *Recognizer) dropEntry(id pointer.ID) {
	i := slices.IndexFunc(r.entries, func(e trackedEntry) bool {
		return e.id == id
	})
	if i != -1 {
		r.entries = slices.Delete(r.entries, i, i+1)
	}
}

func call(f func(e pointer.Event), e pointer.Event) {
	if f != nil {
		f(e)
	}
}

func call0(f func()) {
	if f != nil {
		f()
	}
}
