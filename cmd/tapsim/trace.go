// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gioui.org/arbiter/f32"
	"gioui.org/arbiter/gesture"
	"gioui.org/arbiter/io/pointer"
)

// parseTrace reads pointer events from r.
func parseTrace(r io.Reader) ([]pointer.Event, error) {
	var events []pointer.Event
	s := bufio.NewScanner(r)
	line := 0
	for s.Scan() {
		line++
		txt := strings.TrimSpace(s.Text())
		if txt == "" || strings.HasPrefix(txt, "#") {
			continue
		}
		e, err := parseEvent(txt)
		if err != nil {
			tracer().Errorf("line %d: %q", line, txt)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if n := len(events); n > 0 && e.Time < events[n-1].Time {
			return nil, fmt.Errorf("line %d: event at %v before %v", line, e.Time, events[n-1].Time)
		}
		events = append(events, e)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func parseEvent(txt string) (pointer.Event, error) {
	fields := strings.Fields(txt)
	if len(fields) != 5 {
		return pointer.Event{}, fmt.Errorf("want 5 fields, got %d", len(fields))
	}
	t, err := time.ParseDuration(fields[0])
	if err != nil {
		return pointer.Event{}, err
	}
	kind, ok := pointer.ParseKind(fields[1])
	if !ok {
		return pointer.Event{}, fmt.Errorf("unknown event kind %q", fields[1])
	}
	id, err := strconv.ParseUint(fields[2], 10, 16)
	if err != nil {
		return pointer.Event{}, err
	}
	pos, err := parseFloats(fields[3:]...)
	if err != nil {
		return pointer.Event{}, err
	}
	return pointer.Event{
		Kind:      kind,
		Source:    pointer.Touch,
		PointerID: pointer.ID(id),
		Time:      t,
		Position:  f32.Pt(pos[0], pos[1]),
	}, nil
}

// parseArea parses a rectangle in the form x0,y0,x1,y1.
func parseArea(s string) (f32.Rectangle, error) {
	v, err := parseFloats(strings.Split(s, ",")...)
	if err != nil {
		return f32.Rectangle{}, err
	}
	if len(v) != 4 {
		return f32.Rectangle{}, errors.New("area must be x0,y0,x1,y1")
	}
	return f32.Rect(v[0], v[1], v[2], v[3]), nil
}

func parseMode(s string) (gesture.RejectMode, error) {
	switch s {
	case "none":
		return gesture.RejectNone, nil
	case "leave":
		return gesture.RejectLeave, nil
	case "slop":
		return gesture.RejectTouchSlop, nil
	default:
		return 0, fmt.Errorf("invalid reject mode %q", s)
	}
}

func parseFloats(fields ...string) ([]float32, error) {
	var v []float32
	for _, f := range fields {
		x, err := strconv.ParseFloat(strings.TrimSpace(f), 32)
		if err != nil {
			return nil, err
		}
		v = append(v, float32(x))
	}
	return v, nil
}
