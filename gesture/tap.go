// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"time"

	"gioui.org/arbiter/f32"
	"gioui.org/arbiter/io/arena"
	"gioui.org/arbiter/io/clock"
	"gioui.org/arbiter/io/pointer"
)

// Tap detects a tap. A tap that stays unresolved for
// PreviewMinDuration becomes previewable: OnTapRejectable reports
// that a preview may be shown, and the outcome is then reported
// through OnTapAccept or OnTapReject instead of OnTap.
type Tap struct {
	r   *Recognizer
	cfg TapConfig
	cb  TapCallbacks

	state    TapState
	preview  clock.Timer
	deadline clock.Timer
}

// TapConfig configures a Tap. Zero durations disable their timers.
type TapConfig struct {
	RejectMode RejectMode
	// PreviewMinDuration is the dwell time after which an
	// unresolved tap becomes previewable.
	PreviewMinDuration time.Duration
	// AcceptableDuration is the longest time a tap may stay
	// unresolved before it is rejected.
	AcceptableDuration time.Duration
}

// TapCallbacks are the callbacks of a Tap. Each fires at most once,
// and nil callbacks are skipped. Offsets are in the local
// coordinates of the surface.
type TapCallbacks struct {
	// OnTap reports a tap accepted before it became previewable.
	OnTap func(offset f32.Point)
	// OnTapRejectable reports that the tap became previewable.
	OnTapRejectable func(offset f32.Point)
	// OnTapAccept reports a previewable tap was accepted.
	OnTapAccept func()
	// OnTapReject reports a previewable tap was rejected.
	OnTapReject func()
	// OnDispose reports the end of the tap, whatever its outcome.
	OnDispose func(t *Tap)
}

// TapState is the state of a Tap.
type TapState uint8

const (
	// TapArmed is the state of a pressed tap.
	TapArmed TapState = iota
	// TapPreviewable is reported once the preview duration
	// elapsed before the tap was resolved.
	TapPreviewable
	// TapAccepted is reported for a tap accepted by the arena.
	TapAccepted
	// TapRejected is reported for a rejected tap.
	TapRejected
	// TapDisposed is the final state.
	TapDisposed
)

// NewTap returns a Tap for a single gesture attempt.
func NewTap(env Env, cfg TapConfig, cb TapCallbacks) *Tap {
	t := &Tap{cfg: cfg, cb: cb}
	t.r = NewRecognizer(env, cfg.RejectMode, Hooks{
		Down:     t.down,
		Up:       t.up,
		Accept:   t.accept,
		Reject:   t.reject,
		Dispose:  t.stopTimers,
		Disposed: t.disposed,
	})
	return t
}

// AddPointer starts tracking the pointer pressed in e.
func (t *Tap) AddPointer(e pointer.Event) {
	t.r.AddPointer(e)
}

// HandleEvent implements input.Handler.
func (t *Tap) HandleEvent(e pointer.Event) {
	t.r.HandleEvent(e)
}

// State reports the tap state.
func (t *Tap) State() TapState {
	return t.state
}

// Offset returns the latest local position of the tap's pointer.
func (t *Tap) Offset() f32.Point {
	return t.r.Offset()
}

// Dispose ends the tap. An unresolved tap is rejected.
func (t *Tap) Dispose() {
	t.r.Dispose()
}

func (t *Tap) down(e pointer.Event) {
	t.r.Hold()
	t.state = TapArmed
	sched := t.r.env.Clock
	if d := t.cfg.PreviewMinDuration; d > 0 && t.preview == nil {
		t.preview = sched.AfterFunc(d, t.previewElapsed)
	}
	if d := t.cfg.AcceptableDuration; d > 0 && t.deadline == nil {
		t.deadline = sched.AfterFunc(d, t.deadlineElapsed)
	}
}

func (t *Tap) up(e pointer.Event) {
	// Claim the pointer; the arena decides.
	t.r.Resolve(arena.Accepted)
}

func (t *Tap) previewElapsed() {
	if t.state != TapArmed {
		return
	}
	t.state = TapPreviewable
	tracer().Debugf("tap previewable at %v", t.r.Offset())
	if t.cb.OnTapRejectable != nil {
		t.cb.OnTapRejectable(t.r.Offset())
	}
}

func (t *Tap) deadlineElapsed() {
	tracer().Debugf("tap unresolved after %v", t.cfg.AcceptableDuration)
	t.r.Reject()
}

func (t *Tap) accept() {
	if t.state == TapPreviewable {
		call0(t.cb.OnTapAccept)
	} else if t.cb.OnTap != nil {
		t.cb.OnTap(t.r.Offset())
	}
	t.state = TapAccepted
}

func (t *Tap) reject() {
	if t.state == TapPreviewable {
		call0(t.cb.OnTapReject)
	}
	t.state = TapRejected
}

func (t *Tap) stopTimers() {
	if t.preview != nil {
		t.preview.Stop()
	}
	if t.deadline != nil {
		t.deadline.Stop()
	}
}

func (t *Tap) disposed() {
	t.state = TapDisposed
	if t.cb.OnDispose != nil {
		t.cb.OnDispose(t)
	}
}

func (s TapState) String() string {
	switch s {
	case TapArmed:
		return "TapArmed"
	case TapPreviewable:
		return "TapPreviewable"
	case TapAccepted:
		return "TapAccepted"
	case TapRejected:
		return "TapRejected"
	case TapDisposed:
		return "TapDisposed"
	default:
		panic("invalid TapState")
	}
}
