// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"gioui.org/arbiter/f32"
	"gioui.org/arbiter/gesture"
	"gioui.org/arbiter/io/arena"
	"gioui.org/arbiter/io/clock"
	"gioui.org/arbiter/io/input"
	"gioui.org/arbiter/io/pointer"
	"github.com/npillmayer/schuko/tracing"
)

var (
	areaFlag = flag.String("area", "0,0,100,100", "tap area as x0,y0,x1,y1")
	modeFlag = flag.String("mode", "slop", "reject mode (none, leave, slop)")
	preview  = flag.Duration("preview", 150*time.Millisecond, "preview dwell time, 0 to disable")
	deadline = flag.Duration("deadline", 0, "longest unresolved time, 0 to disable")
	realtime = flag.Bool("realtime", false, "replay in wall-clock time")
	verbose  = flag.Bool("v", false, "trace routing and arbitration")
)

// settle is the time replays keep running after the last event, on
// top of the configured timers.
const settle = 10 * time.Millisecond

type simulation struct {
	area     f32.Rectangle
	config   gesture.TapConfig
	realtime bool
}

// tracer traces with key 'arbiter.tapsim'.
func tracer() tracing.Trace {
	return tracing.Select("arbiter.tapsim")
}

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, mainUsage)
	}
	flag.Parse()
	if err := mainErr(); err != nil {
		fmt.Fprintf(os.Stderr, "tapsim: %v\n", err)
		os.Exit(1)
	}
}

func mainErr() error {
	if *verbose {
		for _, key := range []string{"arbiter.gesture", "arbiter.arena", "arbiter.input", "arbiter.tapsim"} {
			tracing.Select(key).SetTraceLevel(tracing.LevelDebug)
		}
	}
	area, err := parseArea(*areaFlag)
	if err != nil {
		return fmt.Errorf("invalid -area: %w", err)
	}
	mode, err := parseMode(*modeFlag)
	if err != nil {
		return err
	}
	if *preview < 0 || *deadline < 0 {
		return errors.New("durations must not be negative")
	}
	var in io.Reader = os.Stdin
	if path := flag.Arg(0); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	events, err := parseTrace(in)
	if err != nil {
		return err
	}
	sim := simulation{
		area: area,
		config: gesture.TapConfig{
			RejectMode:         mode,
			PreviewMinDuration: *preview,
			AcceptableDuration: *deadline,
		},
		realtime: *realtime,
	}
	tracer().Infof("replaying %d events over %v, mode %v", len(events), area, mode)
	return sim.replay(os.Stdout, events)
}

// replay events through a router, arena and tap detector, and print
// the tap callbacks to w. Taps still live at the end are disposed.
func (s simulation) replay(w io.Writer, events []pointer.Event) error {
	var a arena.Arena
	router := input.NewRouter(&a)
	var end time.Duration
	if n := len(events); n > 0 {
		end = events[n-1].Time
	}
	end += s.config.PreviewMinDuration + s.config.AcceptableDuration + settle

	if !s.realtime {
		var clk clock.Manual
		d := s.detector(w, &a, router, &clk, clk.Now)
		for _, e := range events {
			clk.AdvanceTo(e.Time)
			router.Queue(e)
		}
		clk.AdvanceTo(end)
		d.Dispose()
		return nil
	}

	loop := clock.NewLoop()
	d := s.detector(w, &a, router, loop, func() time.Duration {
		return loop.Now().Round(time.Millisecond)
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	finish := func() {
		d.Dispose()
		cancel()
	}
	// Events are delivered by a chain of timers, one per distinct
	// timestamp, so that trace order is kept.
	var next func(i int)
	next = func(i int) {
		j := i + 1
		for j < len(events) && events[j].Time == events[i].Time {
			j++
		}
		router.Queue(events[i:j]...)
		if j < len(events) {
			loop.AfterFunc(events[j].Time-loop.Now(), func() { next(j) })
			return
		}
		loop.AfterFunc(end-loop.Now(), finish)
	}
	if len(events) > 0 {
		loop.AfterFunc(events[0].Time, func() { next(0) })
	} else {
		loop.AfterFunc(end, finish)
	}
	if err := loop.Run(ctx); !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (s simulation) detector(w io.Writer, a *arena.Arena, r *input.Router, sched clock.Scheduler, now func() time.Duration) *gesture.TapDetector {
	emit := func(format string, args ...interface{}) {
		fmt.Fprintf(w, "%v\t"+format+"\n", append([]interface{}{now()}, args...)...)
	}
	d := &gesture.TapDetector{
		Env: gesture.Env{
			Arena:   a,
			Router:  r,
			Clock:   sched,
			Surface: gesture.Area{Bounds: s.area},
		},
		Config: s.config,
		Callbacks: gesture.TapCallbacks{
			OnTap:           func(o f32.Point) { emit("tap %v", o) },
			OnTapRejectable: func(o f32.Point) { emit("rejectable %v", o) },
			OnTapAccept:     func() { emit("accept") },
			OnTapReject:     func() { emit("reject") },
			OnDispose:       func(*gesture.Tap) { emit("dispose") },
		},
	}
	r.Register(d)
	return d
}
