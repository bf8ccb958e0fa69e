package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/roundtable/internal/game/storage"
)

// AppendAction persists one journal row.
func (s *Store) AppendAction(ctx context.Context, record storage.ActionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("record id is required")
	}
	if strings.TrimSpace(record.Kind) == "" {
		return fmt.Errorf("record kind is required")
	}
	if record.CreatedAt.IsZero() {
		return fmt.Errorf("created at is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO actions (
	id, participant_id, kind, action, narrative, round, turn_index, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`,
		strings.TrimSpace(record.ID),
		strings.TrimSpace(record.ParticipantID),
		strings.TrimSpace(record.Kind),
		record.Action,
		record.Narrative,
		record.Round,
		record.TurnIndex,
		toMillis(record.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("append action: %w", err)
	}
	return nil
}

// ListRecentActions returns the most recent journal rows, newest first.
func (s *Store) ListRecentActions(ctx context.Context, limit int) ([]storage.ActionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, participant_id, kind, action, narrative, round, turn_index, created_at
FROM actions
ORDER BY created_at DESC, rowid DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent actions: %w", err)
	}
	defer rows.Close()

	var records []storage.ActionRecord
	for rows.Next() {
		var (
			record    storage.ActionRecord
			createdAt int64
		)
		if err := rows.Scan(
			&record.ID,
			&record.ParticipantID,
			&record.Kind,
			&record.Action,
			&record.Narrative,
			&record.Round,
			&record.TurnIndex,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan action row: %w", err)
		}
		record.CreatedAt = fromMillis(createdAt)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate action rows: %w", err)
	}

	return records, nil
}
