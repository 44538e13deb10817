// SPDX-License-Identifier: Unlicense OR MIT

package gesture

// RejectMode selects when a recognizer rejects itself because
// its pointer moved.
type RejectMode uint8

const (
	// RejectNone never rejects on movement.
	RejectNone RejectMode = iota
	// RejectLeave rejects once the pointer leaves the surface.
	RejectLeave
	// RejectTouchSlop rejects once the pointer drifts further
	// than the touch slop from its press position in either
	// axis.
	RejectTouchSlop
)

// rejectByOffset reports whether a recognizer in mode must reject
// itself given the positions in seq. The drift is always measured
// from the press position.
func rejectByOffset(mode RejectMode, s Surface, seq *sequence, slop float32) bool {
	switch mode {
	case RejectNone:
		return false
	case RejectLeave:
		return !s.Hit(seq.current())
	case RejectTouchSlop:
		d := seq.moved()
		return abs(d.X) > slop || abs(d.Y) > slop
	default:
		panic("invalid RejectMode")
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func (m RejectMode) String() string {
	switch m {
	case RejectNone:
		return "RejectNone"
	case RejectLeave:
		return "RejectLeave"
	case RejectTouchSlop:
		return "RejectTouchSlop"
	default:
		panic("invalid RejectMode")
	}
}
