// SPDX-License-Identifier: Unlicense OR MIT

/*
Package gesture implements common pointer gestures.

Gestures receive low level pointer Events from an input Router
and compete in the gesture arena for the pointers they track. A
Recognizer implements the part shared by every gesture: offset
tracking, rejection by movement, holding arenas and the terminal
accept or reject protocol. Tap builds a tap gesture with preview
and deadline timers on top of it.

Every recognizer is used for a single gesture attempt. TapDetector
creates a fresh Tap for each pointer pressed inside its surface.
*/
package gesture

import (
	"gioui.org/arbiter/f32"
	"gioui.org/arbiter/io/arena"
	"gioui.org/arbiter/io/clock"
	"gioui.org/arbiter/io/input"
	"gioui.org/arbiter/io/pointer"
	"gioui.org/arbiter/unit"
	"github.com/npillmayer/schuko/tracing"
)

// Env is the environment a recognizer runs in.
type Env struct {
	Arena   Arena
	Router  PointerRouter
	Clock   clock.Scheduler
	Surface Surface
	// Metric converts the touch slop to pixels. A nil
	// Metric maps 1dp to 1px.
	Metric unit.Converter
}

// Arena is the shared gesture arena, as seen by a recognizer.
type Arena interface {
	Add(id pointer.ID, m arena.Member) arena.Entry
	Hold(id pointer.ID)
	Release(id pointer.ID)
}

// PointerRouter routes the events of tracked pointers.
type PointerRouter interface {
	AddRoute(id pointer.ID, h input.Handler)
	RemoveRoute(id pointer.ID, h input.Handler)
}

// Surface is the visual area owning a recognizer.
type Surface interface {
	// Hit reports whether the local position p lies within
	// the surface.
	Hit(p f32.Point) bool
	// Local maps the global position p to the local
	// coordinates of the surface.
	Local(p f32.Point) f32.Point
}

// Area is a rectangular Surface.
type Area struct {
	// Bounds in local coordinates. An empty Bounds, such as
	// that of an area not laid out yet, contains no points.
	Bounds f32.Rectangle
	// Transform maps local coordinates to global coordinates.
	Transform f32.Affine2D
}

// touchSlop is the distance a pointer may drift from its
// press position and still be considered stationary.
var touchSlop = unit.Dp(18)

// tracer traces with key 'arbiter.gesture'.
func tracer() tracing.Trace {
	return tracing.Select("arbiter.gesture")
}

func (a Area) Hit(p f32.Point) bool {
	return !a.Bounds.Empty() && p.In(a.Bounds)
}

func (a Area) Local(p f32.Point) f32.Point {
	return a.Transform.Invert().Transform(p)
}

func (e Env) slop() float32 {
	m := e.Metric
	if m == nil {
		m = unit.Metric{}
	}
	return m.Px(touchSlop)
}
