// Package storage defines the persistence interfaces for the table engine.
//
// It separates the two durability concerns the engine has: the session
// snapshot (authoritative state, replaced wholesale on every accepted
// event) and the append-only journal and audit trails. Implementations
// live in subpackages: bbolt for snapshots, sqlite for journal rows and
// audit events.
package storage
