package storage

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/roundtable/internal/game/domain"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// SessionStore persists the authoritative session snapshot.
type SessionStore interface {
	SaveSnapshot(ctx context.Context, session domain.Session) error
	LoadSnapshot(ctx context.Context) (domain.Session, error)
}

// ActionRecord is one durable journal row for a processed table event. The
// in-memory history window is bounded; the journal is not.
type ActionRecord struct {
	ID            string
	ParticipantID string
	Kind          string
	Action        string
	Narrative     string
	Round         int
	TurnIndex     int
	CreatedAt     time.Time
}

// Journal row kinds.
const (
	ActionKindSubmit  = "action"
	ActionKindSkip    = "skip"
	ActionKindScene   = "scene"
	ActionKindTimeout = "timeout"
	ActionKindReset   = "reset"
)

// JournalStore appends processed events to durable storage.
type JournalStore interface {
	AppendAction(ctx context.Context, record ActionRecord) error
	ListRecentActions(ctx context.Context, limit int) ([]ActionRecord, error)
}

// AuditEvent is one operational audit row.
type AuditEvent struct {
	EventName     string
	Severity      string
	ParticipantID string
	Outcome       string
	Detail        string
	TraceID       string
	SpanID        string
	Timestamp     time.Time
}

// AuditEventStore appends operational audit events.
type AuditEventStore interface {
	AppendAuditEvent(ctx context.Context, event AuditEvent) error
}
