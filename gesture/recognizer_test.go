// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"gioui.org/arbiter/f32"
	"gioui.org/arbiter/io/arena"
	"gioui.org/arbiter/io/clock"
	"gioui.org/arbiter/io/input"
	"gioui.org/arbiter/io/pointer"
	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// fakeArena records the requests of its members and leaves every
// decision to the test, except for self rejections which it
// confirms at once like the real arena does.
type fakeArena struct {
	log     []string
	members map[pointer.ID][]arena.Member
}

type fakeEntry struct {
	a  *fakeArena
	id pointer.ID
	m  arena.Member
}

func newFakeArena() *fakeArena {
	return &fakeArena{members: make(map[pointer.ID][]arena.Member)}
}

func (a *fakeArena) Add(id pointer.ID, m arena.Member) arena.Entry {
	a.members[id] = append(a.members[id], m)
	a.log = append(a.log, fmt.Sprintf("add %d", id))
	return fakeEntry{a: a, id: id, m: m}
}

func (a *fakeArena) Hold(id pointer.ID) {
	a.log = append(a.log, fmt.Sprintf("hold %d", id))
}

func (a *fakeArena) Release(id pointer.ID) {
	a.log = append(a.log, fmt.Sprintf("release %d", id))
}

func (e fakeEntry) Resolve(d arena.Disposition) {
	e.a.log = append(e.a.log, fmt.Sprintf("resolve %d %v", e.id, d))
	if d == arena.Rejected {
		e.m.RejectGesture(e.id)
	}
}

func (a *fakeArena) decide(id pointer.ID, accept bool) {
	for _, m := range a.members[id] {
		if accept {
			m.AcceptGesture(id)
		} else {
			m.RejectGesture(id)
		}
	}
}

type fakeRouter struct {
	routes map[pointer.ID][]input.Handler
}

func newFakeRouter() *fakeRouter {
	return &fakeRouter{routes: make(map[pointer.ID][]input.Handler)}
}

func (r *fakeRouter) AddRoute(id pointer.ID, h input.Handler) {
	r.routes[id] = append(r.routes[id], h)
}

func (r *fakeRouter) RemoveRoute(id pointer.ID, h input.Handler) {
	hs := r.routes[id]
	for i, h2 := range hs {
		if h2 == h {
			r.routes[id] = append(hs[:i:i], hs[i+1:]...)
			break
		}
	}
	if len(r.routes[id]) == 0 {
		delete(r.routes, id)
	}
}

func (r *fakeRouter) dispatch(e pointer.Event) {
	for _, h := range r.routes[e.PointerID] {
		h.HandleEvent(e)
	}
}

// fakeEnv wires a recognizer to fakes and an identity surface.
type fakeEnv struct {
	arena  *fakeArena
	router *fakeRouter
	clk    *clock.Manual
	log    []string
}

func newFakeEnv() *fakeEnv {
	return &fakeEnv{
		arena:  newFakeArena(),
		router: newFakeRouter(),
		clk:    new(clock.Manual),
	}
}

func (f *fakeEnv) env() Env {
	return Env{
		Arena:   f.arena,
		Router:  f.router,
		Clock:   f.clk,
		Surface: Area{Bounds: f32.Rect(-100, -100, 100, 100)},
	}
}

func (f *fakeEnv) record(format string, args ...interface{}) {
	f.log = append(f.log, fmt.Sprintf("%v ", f.clk.Now())+fmt.Sprintf(format, args...))
}

func (f *fakeEnv) hooks() Hooks {
	return Hooks{
		Down:     func(e pointer.Event) { f.record("down %v", e.Position) },
		Move:     func(e pointer.Event) { f.record("move %v", e.Position) },
		Up:       func(e pointer.Event) { f.record("up %v", e.Position) },
		Accept:   func() { f.record("accept") },
		Reject:   func() { f.record("reject") },
		Dispose:  func() { f.record("dispose") },
		Disposed: func() { f.record("disposed") },
	}
}

func (f *fakeEnv) tapCallbacks() TapCallbacks {
	return TapCallbacks{
		OnTap:           func(o f32.Point) { f.record("tap %v", o) },
		OnTapRejectable: func(o f32.Point) { f.record("rejectable %v", o) },
		OnTapAccept:     func() { f.record("accept") },
		OnTapReject:     func() { f.record("reject") },
		OnDispose:       func(*Tap) { f.record("dispose") },
	}
}

func press(id pointer.ID, x, y float32) pointer.Event {
	return pointer.Event{Kind: pointer.Press, PointerID: id, Position: f32.Pt(x, y)}
}

func move(id pointer.ID, x, y float32) pointer.Event {
	return pointer.Event{Kind: pointer.Move, PointerID: id, Position: f32.Pt(x, y)}
}

func release(id pointer.ID, x, y float32) pointer.Event {
	return pointer.Event{Kind: pointer.Release, PointerID: id, Position: f32.Pt(x, y)}
}

func cancel(id pointer.ID) pointer.Event {
	return pointer.Event{Kind: pointer.Cancel, PointerID: id}
}

func checkLog(t *testing.T, got []string, want ...string) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("callbacks mismatch (-want +got):\n%s", diff)
	}
}

func TestRecognizerDispatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arbiter.gesture")
	defer teardown()
	//
	f := newFakeEnv()
	r := NewRecognizer(f.env(), RejectTouchSlop, f.hooks())
	r.AddPointer(press(1, 0, 0))
	f.router.dispatch(press(1, 0, 0))
	f.router.dispatch(move(1, 5, 5))
	f.router.dispatch(release(1, 5, 5))
	checkLog(t, f.log, "0s down (0,0)", "0s move (5,5)", "0s up (5,5)")
	// Release stops routing but the arena entry stays.
	if len(f.router.routes) != 0 {
		t.Errorf("pointer still routed after release")
	}
	f.arena.decide(1, true)
	checkLog(t, f.log, "0s down (0,0)", "0s move (5,5)", "0s up (5,5)",
		"0s accept", "0s dispose", "0s disposed")
}

func TestRecognizerRejectsOnMove(t *testing.T) {
	f := newFakeEnv()
	r := NewRecognizer(f.env(), RejectTouchSlop, f.hooks())
	r.AddPointer(press(1, 0, 0))
	f.router.dispatch(press(1, 0, 0))
	f.router.dispatch(move(1, 0, 19))
	checkLog(t, f.log, "0s down (0,0)", "0s reject", "0s dispose", "0s disposed")
	checkLog(t, f.arena.log, "add 1", "resolve 1 Rejected")
	if len(f.router.routes) != 0 {
		t.Errorf("rejected recognizer still routed")
	}
	// Events after rejection are ignored.
	r.HandleEvent(move(1, 0, 0))
	f.arena.decide(1, true)
	checkLog(t, f.log, "0s down (0,0)", "0s reject", "0s dispose", "0s disposed")
}

func TestRecognizerCancelRejects(t *testing.T) {
	f := newFakeEnv()
	r := NewRecognizer(f.env(), RejectNone, f.hooks())
	r.AddPointer(press(1, 0, 0))
	f.router.dispatch(press(1, 0, 0))
	f.router.dispatch(cancel(1))
	checkLog(t, f.log, "0s down (0,0)", "0s reject", "0s dispose", "0s disposed")
}

func TestRecognizerCancelOverride(t *testing.T) {
	f := newFakeEnv()
	hooks := f.hooks()
	hooks.Cancel = func(pointer.Event) { f.record("cancel") }
	r := NewRecognizer(f.env(), RejectNone, hooks)
	r.AddPointer(press(1, 0, 0))
	f.router.dispatch(press(1, 0, 0))
	f.router.dispatch(cancel(1))
	checkLog(t, f.log, "0s down (0,0)", "0s cancel")
	f.arena.decide(1, false)
	checkLog(t, f.log, "0s down (0,0)", "0s cancel", "0s reject", "0s dispose", "0s disposed")
}

func TestHoldRelease(t *testing.T) {
	f := newFakeEnv()
	var r *Recognizer
	hooks := f.hooks()
	hooks.Down = func(pointer.Event) { r.Hold() }
	r = NewRecognizer(f.env(), RejectNone, hooks)
	r.AddPointer(press(4, 0, 0))
	f.router.dispatch(press(4, 0, 0))
	checkLog(t, f.arena.log, "add 4", "hold 4")
	if len(f.router.routes[4]) != 1 {
		t.Fatal("held pointer not routed")
	}
	f.arena.decide(4, true)
	checkLog(t, f.arena.log, "add 4", "hold 4", "release 4")
	if len(f.router.routes) != 0 {
		t.Error("released pointer still routed")
	}
	f.router.dispatch(move(4, 1, 1))
	checkLog(t, f.log, "0s accept", "0s dispose", "0s disposed")
}

func TestDisposeIdempotent(t *testing.T) {
	f := newFakeEnv()
	r := NewRecognizer(f.env(), RejectNone, f.hooks())
	r.AddPointer(press(1, 0, 0))
	f.router.dispatch(press(1, 0, 0))
	f.arena.decide(1, true)
	r.Dispose()
	r.AcceptGesture(1)
	r.RejectGesture(1)
	r.Reject()
	r.Dispose()
	checkLog(t, f.log, "0s down (0,0)", "0s accept", "0s dispose", "0s disposed")
}

func TestDisposeUnresolved(t *testing.T) {
	f := newFakeEnv()
	r := NewRecognizer(f.env(), RejectNone, f.hooks())
	r.AddPointer(press(1, 0, 0))
	f.router.dispatch(press(1, 0, 0))
	r.Dispose()
	r.Dispose()
	checkLog(t, f.log, "0s down (0,0)", "0s reject", "0s dispose", "0s disposed")
	checkLog(t, f.arena.log, "add 1", "resolve 1 Rejected")
}

func TestRejectWithoutArenaAnswer(t *testing.T) {
	f := newFakeEnv()
	r := NewRecognizer(f.env(), RejectNone, f.hooks())
	// No pointer ever joined the arena.
	r.Reject()
	checkLog(t, f.log, "0s reject", "0s dispose", "0s disposed")
}

// TestSingleOutcome feeds random event and decision sequences to
// taps and checks that each reaches exactly one outcome.
func TestSingleOutcome(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		f := newFakeEnv()
		var outcomes, disposals int
		tap := NewTap(f.env(), TapConfig{
			RejectMode:         RejectMode(rnd.Intn(3)),
			PreviewMinDuration: time.Duration(rnd.Intn(3)) * 10 * time.Millisecond,
			AcceptableDuration: time.Duration(rnd.Intn(3)) * 15 * time.Millisecond,
		}, TapCallbacks{
			OnTap:       func(f32.Point) { outcomes++ },
			OnTapAccept: func() { outcomes++ },
			OnTapReject: func() { outcomes++ },
			OnDispose:   func(*Tap) { disposals++ },
		})
		tap.AddPointer(press(1, 0, 0))
		f.router.dispatch(press(1, 0, 0))
		for step := 0; step < 8; step++ {
			switch rnd.Intn(7) {
			case 0:
				x := float32(rnd.Intn(300) - 150)
				f.router.dispatch(move(1, x, x/2))
			case 1:
				f.router.dispatch(release(1, 0, 0))
			case 2:
				f.router.dispatch(cancel(1))
			case 3:
				f.arena.decide(1, rnd.Intn(2) == 0)
			case 4:
				tap.Dispose()
			default:
				f.clk.Advance(time.Duration(rnd.Intn(20)) * time.Millisecond)
			}
		}
		tap.Dispose()
		f.clk.Advance(time.Second)
		if outcomes > 1 {
			t.Fatalf("run %d: %d outcome callbacks", i, outcomes)
		}
		if disposals != 1 {
			t.Fatalf("run %d: %d disposals", i, disposals)
		}
		if tap.State() != TapDisposed {
			t.Fatalf("run %d: final state %v", i, tap.State())
		}
		if f.clk.Pending() != 0 {
			t.Fatalf("run %d: %d timers left", i, f.clk.Pending())
		}
	}
}

func TestHoldBeforePress(t *testing.T) {
	f := newFakeEnv()
	r := NewRecognizer(f.env(), RejectNone, f.hooks())
	r.Hold()
	checkLog(t, f.arena.log)
	r.AddPointer(press(3, 0, 0))
	f.router.dispatch(press(3, 0, 0))
	r.Hold()
	r.Hold()
	checkLog(t, f.arena.log, "add 3", "hold 3")
}

func TestWithdrawnClaim(t *testing.T) {
	var a arena.Arena
	var log []string
	router := newFakeRouter()
	recognizer := func(name string) *Recognizer {
		env := Env{
			Arena:   &a,
			Router:  router,
			Clock:   new(clock.Manual),
			Surface: Area{Bounds: f32.Rect(0, 0, 10, 10)},
		}
		return NewRecognizer(env, RejectNone, Hooks{
			Accept: func() { log = append(log, name+" accept") },
			Reject: func() { log = append(log, name+" reject") },
		})
	}
	r1, r2 := recognizer("r1"), recognizer("r2")
	r1.AddPointer(press(1, 5, 5))
	r2.AddPointer(press(1, 5, 5))
	router.dispatch(press(1, 5, 5))
	// r1 claims the pointer while the arena is open, then gives up.
	r1.Resolve(arena.Accepted)
	r1.Reject()
	a.Close(1)
	checkLog(t, log, "r1 reject", "r2 accept")
	if a.Pending(1) {
		t.Error("arena still pending")
	}
}
