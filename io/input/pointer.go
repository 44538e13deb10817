// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"gioui.org/arbiter/io/pointer"
	"golang.org/x/exp/slices"
)

// pointerInfo is the routing state of a pointer.
type pointerInfo struct {
	id       pointer.ID
	handlers []Handler
}

// AddRoute routes the events of pointer id to h.
func (q *Router) AddRoute(id pointer.ID, h Handler) {
	idx := q.pointerOf(id)
	if idx == -1 {
		q.pointers = append(q.pointers, pointerInfo{id: id})
		idx = len(q.pointers) - 1
	}
	p := &q.pointers[idx]
	if !slices.Contains(p.handlers, h) {
		p.handlers = append(p.handlers, h)
	}
}

// RemoveRoute stops routing the events of pointer id to h. It is
// safe to call from a handler during event delivery.
func (q *Router) RemoveRoute(id pointer.ID, h Handler) {
	idx := q.pointerOf(id)
	if idx == -1 {
		return
	}
	p := &q.pointers[idx]
	if i := slices.Index(p.handlers, h); i != -1 {
		p.handlers = slices.Delete(slices.Clone(p.handlers), i, i+1)
	}
	if len(p.handlers) == 0 {
		// No longer need to track pointer.
		q.pointers = slices.Delete(q.pointers, idx, idx+1)
	}
}

// Routed reports whether h receives the events of pointer id.
func (q *Router) Routed(id pointer.ID, h Handler) bool {
	idx := q.pointerOf(id)
	return idx != -1 && slices.Contains(q.pointers[idx].handlers, h)
}

// pointerOf returns the pointerInfo index corresponding to the pointer id,
// or -1.
func (q *Router) pointerOf(id pointer.ID) int {
	for i, p := range q.pointers {
		if p.id == id {
			return i
		}
	}
	return -1
}

// deliver e to the handlers of its pointer. Handlers removed by
// an earlier handler in the same delivery are skipped.
func (q *Router) deliver(e pointer.Event) {
	idx := q.pointerOf(e.PointerID)
	if idx == -1 {
		return
	}
	// Handlers may add or remove routes while handling e. Removal
	// replaces the slice, and additions only append past the
	// snapshot's length.
	handlers := q.pointers[idx].handlers
	for _, h := range handlers {
		if !q.Routed(e.PointerID, h) {
			continue
		}
		h.HandleEvent(e)
	}
}
