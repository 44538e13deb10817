// SPDX-License-Identifier: Unlicense OR MIT

/*
Package arena implements the gesture arena that decides which of
several competing recognizers wins a pointer sequence.

Every pointer id has its own arena. Recognizers join it with Add while
the Press of the pointer is dispatched; the router then closes the
arena, and sweeps it once the pointer is released or canceled. A
member may resolve itself at any time through its Entry, and may hold
the arena to keep it from being resolved by default or by a sweep.
Holds are counted: the arena stays held until every Hold has been
matched by a Release.

Every member receives exactly one of AcceptGesture or RejectGesture
for each pointer it joined. Arenas are not safe for concurrent use;
all calls are expected on the event loop.
*/
package arena

import (
	"gioui.org/arbiter/io/pointer"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/exp/slices"
)

// Member is a participant in a gesture arena.
type Member interface {
	// AcceptGesture is called when the member wins the arena
	// for the pointer.
	AcceptGesture(id pointer.ID)
	// RejectGesture is called when the member loses the arena
	// for the pointer.
	RejectGesture(id pointer.ID)
}

// Entry is a member's handle to the arena of a pointer.
type Entry interface {
	// Resolve reports the member's own decision to the arena.
	Resolve(d Disposition)
}

// Disposition is a member's decision about a pointer.
type Disposition uint8

const (
	// Accepted claims the pointer sequence.
	Accepted Disposition = iota
	// Rejected gives up on the pointer sequence.
	Rejected
)

// Arena tracks the gesture arenas of all pointers. The zero value
// is ready to use.
type Arena struct {
	arenas map[pointer.ID]*state
}

type state struct {
	members []Member
	// open is true until the Press of the pointer has been
	// dispatched to every interested recognizer.
	open bool
	// holds counts the outstanding holds. A held arena is not
	// resolved by default or swept.
	holds        int
	pendingSweep bool
	// eagerWinner is a member that accepted while the arena
	// was still open.
	eagerWinner Member
}

type entry struct {
	arena  *Arena
	id     pointer.ID
	member Member
}

// tracer traces with key 'arbiter.arena'.
func tracer() tracing.Trace {
	return tracing.Select("arbiter.arena")
}

// Add m to the arena of the pointer id, creating the arena
// if necessary.
func (a *Arena) Add(id pointer.ID, m Member) Entry {
	if a.arenas == nil {
		a.arenas = make(map[pointer.ID]*state)
	}
	s, ok := a.arenas[id]
	if !ok {
		s = &state{open: true}
		a.arenas[id] = s
		tracer().Debugf("arena %d: created", id)
	}
	s.members = append(s.members, m)
	tracer().Debugf("arena %d: added member, %d total", id, len(s.members))
	return &entry{arena: a, id: id, member: m}
}

// Close the arena of id to new members and resolve it if the
// outcome is already decided.
func (a *Arena) Close(id pointer.ID) {
	s, ok := a.arenas[id]
	if !ok {
		return
	}
	s.open = false
	tracer().Debugf("arena %d: closed", id)
	a.tryResolve(id, s)
}

// Sweep the arena of id at the end of its pointer sequence: the
// first member wins and every other member loses. A held arena
// defers the sweep until it is released.
func (a *Arena) Sweep(id pointer.ID) {
	s, ok := a.arenas[id]
	if !ok {
		return
	}
	if s.holds > 0 {
		tracer().Debugf("arena %d: sweep deferred while held", id)
		s.pendingSweep = true
		return
	}
	delete(a.arenas, id)
	if len(s.members) == 0 {
		return
	}
	tracer().Debugf("arena %d: swept", id)
	s.members[0].AcceptGesture(id)
	for _, m := range s.members[1:] {
		m.RejectGesture(id)
	}
}

// Hold the arena of id open past its normal resolution points.
// Every Hold must be matched by a Release.
func (a *Arena) Hold(id pointer.ID) {
	s, ok := a.arenas[id]
	if !ok {
		return
	}
	s.holds++
	tracer().Debugf("arena %d: held, %d holds", id, s.holds)
}

// Release a hold on the arena of id. When the last hold is
// released, the arena performs any sweep requested while it was
// held, or else retries its default resolution.
func (a *Arena) Release(id pointer.ID) {
	s, ok := a.arenas[id]
	if !ok || s.holds == 0 {
		return
	}
	s.holds--
	tracer().Debugf("arena %d: released, %d holds left", id, s.holds)
	switch {
	case s.holds > 0:
	case s.pendingSweep:
		a.Sweep(id)
	case !s.open:
		a.tryResolve(id, s)
	}
}

// Pending reports whether the arena of id is still undecided.
func (a *Arena) Pending(id pointer.ID) bool {
	_, ok := a.arenas[id]
	return ok
}

func (e *entry) Resolve(d Disposition) {
	e.arena.resolve(e.id, e.member, d)
}

func (a *Arena) resolve(id pointer.ID, m Member, d Disposition) {
	s, ok := a.arenas[id]
	if !ok {
		// Already resolved.
		return
	}
	idx := slices.Index(s.members, m)
	if idx == -1 {
		return
	}
	switch d {
	case Accepted:
		if s.open {
			if s.eagerWinner == nil {
				s.eagerWinner = m
			}
			return
		}
		a.resolveInFavorOf(id, s, m)
	case Rejected:
		s.members = slices.Delete(s.members, idx, idx+1)
		if s.eagerWinner == m {
			s.eagerWinner = nil
		}
		m.RejectGesture(id)
		// The callback may have resolved the arena already.
		if a.arenas[id] == s && !s.open {
			a.tryResolve(id, s)
		}
	}
}

func (a *Arena) tryResolve(id pointer.ID, s *state) {
	switch {
	case len(s.members) == 0:
		delete(a.arenas, id)
		tracer().Debugf("arena %d: empty", id)
	case len(s.members) == 1 && s.holds == 0:
		delete(a.arenas, id)
		tracer().Debugf("arena %d: resolved by default", id)
		s.members[0].AcceptGesture(id)
	case s.eagerWinner != nil:
		a.resolveInFavorOf(id, s, s.eagerWinner)
	}
}

func (a *Arena) resolveInFavorOf(id pointer.ID, s *state, winner Member) {
	delete(a.arenas, id)
	tracer().Debugf("arena %d: resolved", id)
	for _, m := range s.members {
		if m != winner {
			m.RejectGesture(id)
		}
	}
	winner.AcceptGesture(id)
}

func (d Disposition) String() string {
	switch d {
	case Accepted:
		return "Accepted"
	case Rejected:
		return "Rejected"
	default:
		panic("invalid Disposition")
	}
}
