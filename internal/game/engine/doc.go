// Package engine is the single serialized writer for the table.
//
// Every state-changing event (submit-action, skip, set-scene, reset,
// timeout) flows through one goroutine, so handlers never race and every
// event sees the state left by the previous one. Handlers mutate a deep
// copy of the session and persist it before it becomes authoritative: a
// failed write means the event never happened.
//
// A consistency fault (the turn pointer naming a participant the registry
// does not know) latches the engine into a halted state where only Reset is
// accepted. Reads are lock-free copies of the last persisted snapshot.
package engine
