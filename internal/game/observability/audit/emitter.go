package audit

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/roundtable/internal/game/storage"
)

// Severity describes the audit severity level.
type Severity string

const (
	SeverityInfo  Severity = "INFO"
	SeverityWarn  Severity = "WARN"
	SeverityError Severity = "ERROR"
)

// Event names emitted by the engine.
const (
	EventActionResolved   = "action.resolved"
	EventActionRejected   = "action.rejected"
	EventTurnSkipped      = "turn.skipped"
	EventTurnTimeout      = "turn.timeout"
	EventSceneChanged     = "scene.changed"
	EventSessionReset     = "session.reset"
	EventGeneratorFailed  = "generator.failed"
	EventEngineHalted     = "engine.halted"
	EventSnapshotDegraded = "snapshot.degraded"
)

// Emitter records operational audit events.
type Emitter struct {
	store storage.AuditEventStore
	clock func() time.Time
}

// NewEmitter creates a new audit event emitter.
func NewEmitter(store storage.AuditEventStore) *Emitter {
	return &Emitter{store: store, clock: time.Now}
}

// Emit records an audit event. It is a no-op when the store is nil. The
// active trace and span IDs are filled in from the context when the event
// does not carry them.
func (e *Emitter) Emit(ctx context.Context, evt storage.AuditEvent) error {
	if e == nil || e.store == nil {
		return nil
	}
	if evt.Timestamp.IsZero() {
		if e.clock == nil {
			evt.Timestamp = time.Now().UTC()
		} else {
			evt.Timestamp = e.clock().UTC()
		}
	}
	if evt.TraceID == "" || evt.SpanID == "" {
		spanCtx := trace.SpanContextFromContext(ctx)
		if spanCtx.IsValid() {
			if evt.TraceID == "" {
				evt.TraceID = spanCtx.TraceID().String()
			}
			if evt.SpanID == "" {
				evt.SpanID = spanCtx.SpanID().String()
			}
		}
	}
	return e.store.AppendAuditEvent(ctx, evt)
}
