// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"strings"
	"testing"
	"time"

	"gioui.org/arbiter/f32"
	"gioui.org/arbiter/gesture"
	"gioui.org/arbiter/io/pointer"
	"github.com/google/go-cmp/cmp"
)

const trace = `
# press, drift within the slop and release after the preview.
0s    press   1 10 10
50ms  move    1 12 12
200ms release 1 12 12

# a quick tap.
300ms press   2 40 40
320ms release 2 40 40

# leaves the area.
400ms press   3 50 50
420ms move    3 90 50
440ms release 3 90 50
`

func TestParseTrace(t *testing.T) {
	events, err := parseTrace(strings.NewReader(trace))
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 8 {
		t.Fatalf("got %d events, want 8", len(events))
	}
	want := pointer.Event{
		Kind:      pointer.Move,
		Source:    pointer.Touch,
		PointerID: 1,
		Time:      50 * time.Millisecond,
		Position:  f32.Pt(12, 12),
	}
	if diff := cmp.Diff(want, events[1]); diff != "" {
		t.Errorf("event mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTraceErrors(t *testing.T) {
	for _, tc := range []struct {
		label, trace string
	}{
		{"fields", "0s press 1 10"},
		{"kind", "0s scroll 1 10 10"},
		{"time", "soon press 1 10 10"},
		{"id", "0s press -1 10 10"},
		{"order", "10ms press 1 0 0\n5ms release 1 0 0"},
	} {
		t.Run(tc.label, func(t *testing.T) {
			if _, err := parseTrace(strings.NewReader(tc.trace)); err == nil {
				t.Errorf("parsed invalid trace %q", tc.trace)
			}
		})
	}
}

func TestParseArea(t *testing.T) {
	r, err := parseArea("100, 100, 0,0")
	if err != nil {
		t.Fatal(err)
	}
	if want := f32.Rect(0, 0, 100, 100); r != want {
		t.Errorf("got %v, want %v", r, want)
	}
	if _, err := parseArea("1,2,3"); err == nil {
		t.Error("parsed area with 3 coordinates")
	}
}

func TestReplay(t *testing.T) {
	events, err := parseTrace(strings.NewReader(trace))
	if err != nil {
		t.Fatal(err)
	}
	sim := simulation{
		area: f32.Rect(0, 0, 100, 100),
		config: gesture.TapConfig{
			RejectMode:         gesture.RejectTouchSlop,
			PreviewMinDuration: 150 * time.Millisecond,
		},
	}
	var out strings.Builder
	if err := sim.replay(&out, events); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"150ms\trejectable (12,12)",
		"200ms\taccept",
		"200ms\tdispose",
		"320ms\ttap (40,40)",
		"320ms\tdispose",
		"420ms\tdispose",
		"",
	}, "\n")
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("replay output mismatch (-want +got):\n%s", diff)
	}
}

func TestReplayRealtimeOrder(t *testing.T) {
	const same = `
0s  press   1 10 10
0s  release 1 10 10
5ms press   2 20 20
5ms release 2 20 20
`
	events, err := parseTrace(strings.NewReader(same))
	if err != nil {
		t.Fatal(err)
	}
	sim := simulation{
		area:     f32.Rect(0, 0, 100, 100),
		realtime: true,
	}
	var out strings.Builder
	if err := sim.replay(&out, events); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, tap := range []string{"\ttap (10,10)\n", "\ttap (20,20)\n"} {
		if !strings.Contains(got, tap) {
			t.Errorf("missing %q in output:\n%s", tap, got)
		}
	}
	if n := strings.Count(got, "\tdispose\n"); n != 2 {
		t.Errorf("%d disposals, want 2:\n%s", n, got)
	}
}
