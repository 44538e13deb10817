// SPDX-License-Identifier: Unlicense OR MIT

/*
Package input implements routing of pointer events to gesture
recognizers.

The [Router] hit-tests each new pointer against its registered
[Target]s, which start recognizers for it. Recognizers track the
pointer by adding a route, and receive every further event of the
pointer until they remove it. The router also drives the gesture
arena: it closes the arena of a pointer once its Press has been
delivered, and sweeps it when the pointer is released or canceled.
*/
package input
