package domain

import "time"

// HistoryCapacity bounds the in-memory action window consumed as narrative
// generator context. Older entries are evicted FIFO; the durable journal
// keeps the full record.
const HistoryCapacity = 20

// HistoryEntry records one resolved action. Entries are immutable once
// appended.
type HistoryEntry struct {
	ParticipantID string    `json:"participant_id"`
	Action        string    `json:"action"`
	Narrative     string    `json:"narrative"`
	Timestamp     time.Time `json:"timestamp"`
}

// HistoryBuffer is a bounded, ordered log of the most recent resolved
// actions, oldest first.
type HistoryBuffer struct {
	Entries []HistoryEntry `json:"entries"`
}

// NewHistoryBuffer creates an empty history buffer.
func NewHistoryBuffer() HistoryBuffer {
	return HistoryBuffer{Entries: []HistoryEntry{}}
}

// Append inserts an entry, evicting the oldest when the buffer is at
// capacity.
func (b *HistoryBuffer) Append(entry HistoryEntry) {
	b.Entries = append(b.Entries, entry)
	if len(b.Entries) > HistoryCapacity {
		b.Entries = b.Entries[len(b.Entries)-HistoryCapacity:]
	}
}

// Recent returns up to n of the most recent entries, oldest first. The
// returned slice is a copy so callers can hold it across later appends.
func (b *HistoryBuffer) Recent(n int) []HistoryEntry {
	if n <= 0 || len(b.Entries) == 0 {
		return nil
	}
	if n > len(b.Entries) {
		n = len(b.Entries)
	}
	recent := make([]HistoryEntry, n)
	copy(recent, b.Entries[len(b.Entries)-n:])
	return recent
}

// Len returns the number of buffered entries.
func (b *HistoryBuffer) Len() int {
	return len(b.Entries)
}

// Clone returns a deep copy of the buffer.
func (b HistoryBuffer) Clone() HistoryBuffer {
	clone := HistoryBuffer{Entries: make([]HistoryEntry, len(b.Entries))}
	copy(clone.Entries, b.Entries)
	return clone
}
