// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"gioui.org/arbiter/f32"
	"gioui.org/arbiter/io/pointer"
	"golang.org/x/exp/slices"
)

// TapDetector starts a Tap for every pointer pressed inside its
// surface. It implements input.Target.
type TapDetector struct {
	Env       Env
	Config    TapConfig
	Callbacks TapCallbacks

	live []*Tap
}

// Hit implements input.Target.
func (d *TapDetector) Hit(pos f32.Point) bool {
	s := d.Env.Surface
	return s.Hit(s.Local(pos))
}

// AddPointer implements input.Target.
func (d *TapDetector) AddPointer(e pointer.Event) {
	cb := d.Callbacks
	onDispose := cb.OnDispose
	cb.OnDispose = func(t *Tap) {
		if i := slices.Index(d.live, t); i != -1 {
			d.live = slices.Delete(d.live, i, i+1)
		}
		if onDispose != nil {
			onDispose(t)
		}
	}
	t := NewTap(d.Env, d.Config, cb)
	d.live = append(d.live, t)
	t.AddPointer(e)
}

// Live returns the taps that have not been disposed yet.
func (d *TapDetector) Live() []*Tap {
	return slices.Clone(d.live)
}

// Dispose every live tap, such as when the detector's surface is
// torn down.
func (d *TapDetector) Dispose() {
	for _, t := range d.Live() {
		t.Dispose()
	}
}
