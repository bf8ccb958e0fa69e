package audit

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/roundtable/internal/game/storage"
)

type fakeAuditStore struct {
	last  storage.AuditEvent
	count int
}

func (s *fakeAuditStore) AppendAuditEvent(ctx context.Context, evt storage.AuditEvent) error {
	s.last = evt
	s.count++
	return nil
}

func TestEmitterNoopWhenNil(t *testing.T) {
	var emitter *Emitter
	if err := emitter.Emit(context.Background(), storage.AuditEvent{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestEmitterNoopWhenStoreNil(t *testing.T) {
	emitter := &Emitter{}
	if err := emitter.Emit(context.Background(), storage.AuditEvent{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestEmitterAddsTimestamp(t *testing.T) {
	store := &fakeAuditStore{}
	clockTime := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	emitter := &Emitter{store: store, clock: func() time.Time { return clockTime }}

	if err := emitter.Emit(context.Background(), storage.AuditEvent{EventName: EventTurnTimeout, Severity: string(SeverityWarn)}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if store.count != 1 {
		t.Fatalf("expected 1 event, got %d", store.count)
	}
	if !store.last.Timestamp.Equal(clockTime) {
		t.Fatalf("expected timestamp %v, got %v", clockTime, store.last.Timestamp)
	}
}

func TestEmitterPreservesTimestamp(t *testing.T) {
	store := &fakeAuditStore{}
	clockTime := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	setTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	emitter := &Emitter{store: store, clock: func() time.Time { return clockTime }}

	if err := emitter.Emit(context.Background(), storage.AuditEvent{EventName: EventSessionReset, Severity: string(SeverityInfo), Timestamp: setTime}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if !store.last.Timestamp.Equal(setTime) {
		t.Fatalf("expected timestamp %v, got %v", setTime, store.last.Timestamp)
	}
}

func TestEmitterFillsTraceContext(t *testing.T) {
	store := &fakeAuditStore{}
	emitter := NewEmitter(store)

	traceID := trace.TraceID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10}
	spanID := trace.SpanID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID})
	ctx := trace.ContextWithSpanContext(context.Background(), spanCtx)

	if err := emitter.Emit(ctx, storage.AuditEvent{EventName: EventActionResolved, Severity: string(SeverityInfo)}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if store.last.TraceID != traceID.String() {
		t.Fatalf("trace id = %q, want %q", store.last.TraceID, traceID.String())
	}
	if store.last.SpanID != spanID.String() {
		t.Fatalf("span id = %q, want %q", store.last.SpanID, spanID.String())
	}
}

func TestEmitterKeepsExplicitTraceContext(t *testing.T) {
	store := &fakeAuditStore{}
	emitter := NewEmitter(store)

	if err := emitter.Emit(context.Background(), storage.AuditEvent{
		EventName: EventActionResolved,
		Severity:  string(SeverityInfo),
		TraceID:   "explicit-trace",
		SpanID:    "explicit-span",
	}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if store.last.TraceID != "explicit-trace" || store.last.SpanID != "explicit-span" {
		t.Fatalf("expected explicit ids preserved, got %q/%q", store.last.TraceID, store.last.SpanID)
	}
}
