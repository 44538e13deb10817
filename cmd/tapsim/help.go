// SPDX-License-Identifier: Unlicense OR MIT

package main

const mainUsage = `The tapsim command replays a pointer trace against a tap gesture.

Usage:

	tapsim [flags] [trace file]

The trace is read from the named file, or from standard input. Each line
holds one pointer event:

	<time> <kind> <pointer id> <x> <y>

where time is a Go duration such as 150ms, and kind is one of press, move,
release or cancel. Blank lines and lines starting with # are ignored. Events
must be in time order.

A single tap area is registered with the router. Every tap callback is
printed with the time it fired.

The -area flag specifies the tap area as x0,y0,x1,y1 in trace coordinates.

The -mode flag selects when a tap rejects itself because its pointer moved:
none, leave (the pointer left the area) or slop (the pointer drifted past
the touch slop).

The -preview flag sets the dwell time after which an unresolved tap becomes
previewable. The -deadline flag sets the longest time a tap may stay
unresolved. Zero disables either timer.

The -realtime flag replays the trace in wall-clock time on an event loop
instead of on a virtual clock.

The -v flag enables debug tracing of the router, arena and recognizers.
`
