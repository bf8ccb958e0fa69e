// Package sqlite provides a SQLite-backed journal and audit store.
//
// It persists the append-only trails that outlive the bounded in-memory
// history window: one row per processed table event and one row per
// operational audit event.
package sqlite
