// Package domain holds the pure table state for a play-by-post game:
// participants and their sheets, the bounded action history, the round-robin
// turn state, and the Session aggregate that ties them together.
//
// Nothing in this package performs I/O. All mutation flows through the engine,
// which owns the single authoritative Session value; constructors accept a
// now func() time.Time so tests control every timestamp.
package domain
