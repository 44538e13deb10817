// SPDX-License-Identifier: Unlicense OR MIT

/*
Package pointer implements pointer events.

A pointer sequence starts with a Press, continues with any
number of Moves and ends with either a Release or a Cancel.
Events of a sequence share the same PointerID, and the Press
of a pointer is always delivered before any other event for
that pointer.
*/
package pointer

import (
	"strings"
	"time"

	"gioui.org/arbiter/f32"
)

// Event is a pointer event.
type Event struct {
	Kind   Kind
	Source Source
	// PointerID is the id for the pointer and can be used
	// to track a particular pointer from Press to
	// Release or Cancel.
	PointerID ID
	// Time is when the event was received. The
	// timestamp is relative to an undefined base.
	Time time.Duration
	// Position is the coordinates of the event in the
	// global coordinate system. Recognizers map it to the
	// local coordinate system of their surface.
	Position f32.Point
}

// ID identifies a pointer sequence.
type ID uint16

// Kind of an Event.
type Kind uint

// Source of an Event.
type Source uint8

const (
	// A Cancel event is generated when the current gesture is
	// interrupted by other handlers or the system.
	Cancel Kind = 1 << iota
	// Press of a pointer.
	Press
	// Release of a pointer.
	Release
	// Move of a pointer.
	Move
)

const (
	// Mouse generated event.
	Mouse Source = iota
	// Touch generated event.
	Touch
)

func (t Kind) String() string {
	if t == Cancel {
		return "Cancel"
	}
	var buf strings.Builder
	for tt := Kind(1); tt > 0 && tt <= Move; tt <<= 1 {
		if t&tt > 0 {
			if buf.Len() > 0 {
				buf.WriteByte('|')
			}
			buf.WriteString((t & tt).string())
		}
	}
	return buf.String()
}

func (t Kind) string() string {
	switch t {
	case Press:
		return "Press"
	case Release:
		return "Release"
	case Cancel:
		return "Cancel"
	case Move:
		return "Move"
	default:
		panic("unknown Type")
	}
}

// ParseKind returns the Kind named by s, as printed by String.
func ParseKind(s string) (Kind, bool) {
	for k := Cancel; k <= Move; k <<= 1 {
		if strings.EqualFold(s, k.string()) {
			return k, true
		}
	}
	return 0, false
}

func (s Source) String() string {
	switch s {
	case Mouse:
		return "Mouse"
	case Touch:
		return "Touch"
	default:
		panic("unknown source")
	}
}
