package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/roundtable/internal/game/storage"
)

// AppendAuditEvent persists one audit row.
func (s *Store) AppendAuditEvent(ctx context.Context, event storage.AuditEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(event.EventName) == "" {
		return fmt.Errorf("event name is required")
	}
	if strings.TrimSpace(event.Severity) == "" {
		return fmt.Errorf("severity is required")
	}
	if event.Timestamp.IsZero() {
		return fmt.Errorf("timestamp is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO audit_events (
	event_name, severity, participant_id, outcome, detail, trace_id, span_id, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`,
		strings.TrimSpace(event.EventName),
		strings.TrimSpace(event.Severity),
		strings.TrimSpace(event.ParticipantID),
		strings.TrimSpace(event.Outcome),
		event.Detail,
		strings.TrimSpace(event.TraceID),
		strings.TrimSpace(event.SpanID),
		toMillis(event.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}
