// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"gioui.org/arbiter/io/pointer"
	"golang.org/x/exp/slices"
)

// membership is the set of pointers whose arenas a recognizer
// holds past their normal resolution.
type membership struct {
	held []pointer.ID
}

// hold the arena of id, at most once.
func (m *membership) hold(a Arena, id pointer.ID) {
	if slices.Contains(m.held, id) {
		return
	}
	a.Hold(id)
	m.held = append(m.held, id)
}

// releaseAll stops tracking every held pointer and releases
// its arena.
func (m *membership) releaseAll(a Arena, stopTracking func(id pointer.ID)) {
	if len(m.held) == 0 {
		return
	}
	held := m.held
	m.held = nil
	for _, id := range held {
		stopTracking(id)
		a.Release(id)
	}
}
