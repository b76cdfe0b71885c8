// Package viewer implements the windowed display logic for a filtered log,
// independent of any terminal or widget toolkit.
//
// # Model
//
// A Controller wraps the immutable filtered sequence and a Config. Session
// state (window start and the current counterpart callsign) lives in State
// and is threaded through Reduce:
//
//	state, frame, changed := ctrl.Reduce(state, viewer.Jump{Direction: viewer.Forward})
//	if changed {
//		draw(frame)
//	}
//
// The presentation layer only translates input into Actions and Frames into
// draw calls.
//
// # Window
//
// A window is WindowSize rows starting at WindowStart. The start is signed and
// unclamped; rows before the first line or after the last one are blank.
// With ClampWindow set, ShowFrom and Jump keep the start inside
// [0, len-WindowSize] instead.
//
// # Terminator Jumps
//
// Jumps search from the anchor row (AnchorOffset rows into the window,
// clamped to the sequence) for the nearest line containing the terminator,
// strictly after or before it. The hit is placed on the anchor row, and the
// counterpart callsign is taken from it when the line ends in
// "<call> <call> RR73" with the own callsign in exactly one slot.
//
// # Frames
//
// Every frame recomputes highlighting: all occurrences of the counterpart are
// emphasized segments, rows containing it are Marked, and Above/Below count
// counterpart lines outside the window. CanShiftBack/CanShiftForward mirror
// the shift affordance; Reduce itself accepts any Shift.
package viewer
