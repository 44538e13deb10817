// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import "gioui.org/arbiter/f32"

// sequence tracks the local positions of the pointer
// sequence followed by a recognizer.
type sequence struct {
	// down is the position of the first press. It is
	// never overwritten.
	down    f32.Point
	hasDown bool
	// move is the position of the latest press or move.
	move    f32.Point
	hasMove bool
}

func (s *sequence) press(p f32.Point) {
	if !s.hasDown {
		s.down, s.hasDown = p, true
	}
	s.move, s.hasMove = p, true
}

func (s *sequence) moveTo(p f32.Point) {
	s.move, s.hasMove = p, true
}

// current returns the latest known position.
func (s *sequence) current() f32.Point {
	switch {
	case s.hasMove:
		return s.move
	case s.hasDown:
		return s.down
	default:
		return f32.Point{}
	}
}

// moved returns the distance from the latest position back to the
// press position, or the zero vector if either is unknown.
func (s *sequence) moved() f32.Point {
	if !s.hasDown || !s.hasMove {
		return f32.Point{}
	}
	return s.down.Sub(s.move)
}
