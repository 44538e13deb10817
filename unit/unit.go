// SPDX-License-Identifier: Unlicense OR MIT

/*

Package unit implements device independent units and values.

A Value is a value with a Unit attached.

Device independent pixel, or dp, is the unit for sizes independent of
the underlying display device. Gesture thresholds such as the touch slop
are expressed in dps so that a finger drifting a given physical distance
is treated the same on every display.

Pixels, or px, is the unit for display dependent pixels. Their size
vary between platforms and displays. Pointer positions are reported in
pixels, so thresholds are converted with a Converter before they are
compared against pointer movement.

*/
package unit

import "fmt"

// Value is a value with a unit.
type Value struct {
	V float32
	U Unit
}

// Unit represents a unit for a Value.
type Unit uint8

// Converter converts Values to pixels.
type Converter interface {
	Px(v Value) float32
}

// Metric converts Values to device-dependent pixels. The zero
// value represents a 1-to-1 scale from dp to pixels.
type Metric struct {
	// PxPerDp is the device-dependent pixels per dp.
	PxPerDp float32
}

const (
	// UnitPx represent device pixels in the resolution of
	// the underlying display.
	UnitPx Unit = iota
	// UnitDp represents device independent pixels. 1 dp will
	// have the same apparent size across platforms and
	// display resolutions.
	UnitDp
)

// Px returns the Value for v device pixels.
func Px(v float32) Value {
	return Value{V: v, U: UnitPx}
}

// Dp returns the Value for v device independent
// pixels.
func Dp(v float32) Value {
	return Value{V: v, U: UnitDp}
}

// Scale returns the value scaled by s.
func (v Value) Scale(s float32) Value {
	v.V *= s
	return v
}

// Px converts v to pixels.
func (m Metric) Px(v Value) float32 {
	switch v.U {
	case UnitPx:
		return v.V
	case UnitDp:
		return v.V * nonZero(m.PxPerDp)
	default:
		panic("unknown unit")
	}
}

// PxToDp converts v px to dp.
func (m Metric) PxToDp(v float32) Value {
	return Dp(v / nonZero(m.PxPerDp))
}

func (v Value) String() string {
	return fmt.Sprintf("%g%s", v.V, v.U)
}

func (u Unit) String() string {
	switch u {
	case UnitPx:
		return "px"
	case UnitDp:
		return "dp"
	default:
		panic("unknown unit")
	}
}

func nonZero(v float32) float32 {
	if v == 0. {
		return 1
	}
	return v
}
