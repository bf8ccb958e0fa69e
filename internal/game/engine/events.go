package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/roundtable/internal/game/domain"
	"github.com/louisbranch/roundtable/internal/game/narrative"
	"github.com/louisbranch/roundtable/internal/game/observability/audit"
	"github.com/louisbranch/roundtable/internal/game/storage"
	apperrors "github.com/louisbranch/roundtable/internal/platform/errors"
	"github.com/louisbranch/roundtable/internal/platform/id"
)

// ActionResult reports a resolved action.
type ActionResult struct {
	Joined          bool
	Narrative       string
	NextParticipant string
	Round           int
}

// SkipResult reports an advanced turn.
type SkipResult struct {
	Skipped         string
	NextParticipant string
	Round           int
}

// TimeoutResult reports the outcome of a timeout event. Fired is false when
// the deadline was stale and the event was discarded.
type TimeoutResult struct {
	Fired           bool
	Skipped         string
	NextParticipant string
	Round           int
}

// SubmitAction resolves one action for the submitting participant. Unknown
// identities join the table first; the action itself only resolves when the
// submitter holds the current turn.
func (e *Engine) SubmitAction(ctx context.Context, participantID, displayName, action string) (ActionResult, error) {
	value, err := e.do(ctx, submitAction{participantID: participantID, displayName: displayName, action: action})
	if err != nil {
		return ActionResult{}, err
	}
	return value.(ActionResult), nil
}

// Skip advances the turn without resolving an action.
func (e *Engine) Skip(ctx context.Context) (SkipResult, error) {
	value, err := e.do(ctx, manualSkip{})
	if err != nil {
		return SkipResult{}, err
	}
	return value.(SkipResult), nil
}

// SetScene overwrites the scene description.
func (e *Engine) SetScene(ctx context.Context, text string) error {
	_, err := e.do(ctx, setScene{text: text})
	return err
}

// Reset clears the whole table back to the fresh default session. Reset is
// the one event a halted engine still accepts.
func (e *Engine) Reset(ctx context.Context) error {
	_, err := e.do(ctx, resetSession{})
	return err
}

// FireTimeout delivers a turn deadline expiry. The deadline identifies the
// turn it was armed for; if the turn already moved on the event is stale and
// discarded without effect.
func (e *Engine) FireTimeout(ctx context.Context, deadline time.Time) (TimeoutResult, error) {
	value, err := e.do(ctx, timeoutFired{deadline: deadline})
	if err != nil {
		return TimeoutResult{}, err
	}
	return value.(TimeoutResult), nil
}

func (e *Engine) handleSubmit(ctx context.Context, ev submitAction) (ActionResult, error) {
	if e.halted.Load() {
		return ActionResult{}, e.haltedErr()
	}

	participantID := strings.TrimSpace(ev.participantID)
	if participantID == "" {
		return ActionResult{}, apperrors.New(apperrors.CodeParticipantEmptyID, "participant id is required")
	}
	displayName := strings.TrimSpace(ev.displayName)
	if displayName == "" {
		return ActionResult{}, apperrors.New(apperrors.CodeParticipantEmptyDisplayName, "display name is required")
	}
	action := strings.TrimSpace(ev.action)
	if action == "" {
		return ActionResult{}, apperrors.New(apperrors.CodeActionEmptyText, "action text is required")
	}

	working := e.session.Clone()
	participant, joined, err := working.Registry.GetOrCreate(participantID, displayName, e.now)
	if err != nil {
		return ActionResult{}, apperrors.Wrap(apperrors.CodeParticipantEmptyID, "register participant", err)
	}
	if joined {
		if err := working.Turn.AddParticipant(participantID, e.now, e.turnWindow); err != nil {
			return ActionResult{}, apperrors.Wrap(apperrors.CodeUnknown, "extend turn order", err)
		}
	}

	currentID, err := working.Turn.Current()
	if err != nil {
		return ActionResult{}, apperrors.New(apperrors.CodeNoParticipants, "no participants have joined yet")
	}
	if currentID != participantID {
		current, ok := working.Registry.Get(currentID)
		if !ok {
			return ActionResult{}, e.halt(ctx, fmt.Sprintf("turn pointer references unknown participant %q", currentID))
		}
		if joined {
			// The join sticks even though the action is rejected; new
			// participants wait for their slot like everyone else.
			if err := e.persist(ctx, working); err != nil {
				return ActionResult{}, err
			}
		}
		_ = e.audit.Emit(ctx, storage.AuditEvent{
			EventName:     audit.EventActionRejected,
			Severity:      string(audit.SeverityInfo),
			ParticipantID: participantID,
			Outcome:       "not_your_turn",
		})
		return ActionResult{}, apperrors.WithMetadata(
			apperrors.CodeNotYourTurn,
			"it is not your turn",
			map[string]string{"CurrentParticipant": current.DisplayName},
		)
	}

	genCtx, cancel := context.WithTimeout(ctx, e.genTimeout)
	defer cancel()
	result, err := e.generator.Narrate(genCtx, buildGeneratorRequest(working, participant.DisplayName, action))
	if err != nil {
		// The turn is not consumed, but a first-time join still sticks.
		if joined {
			if persistErr := e.persist(ctx, working); persistErr != nil {
				e.logger.Printf("persist join after generator failure: %v", persistErr)
			}
		}
		_ = e.audit.Emit(ctx, storage.AuditEvent{
			EventName:     audit.EventGeneratorFailed,
			Severity:      string(audit.SeverityError),
			ParticipantID: participantID,
			Detail:        err.Error(),
		})
		code := apperrors.CodeGeneratorFailed
		if errors.Is(err, context.DeadlineExceeded) {
			code = apperrors.CodeGeneratorTimeout
		}
		return ActionResult{}, apperrors.Wrap(code, "narrative generation failed", err)
	}

	resolvedAt := e.now().UTC()
	working.History.Append(domain.HistoryEntry{
		ParticipantID: participantID,
		Action:        action,
		Narrative:     result.Text,
		Timestamp:     resolvedAt,
	})
	working.LastAction = lastActionSummary(participant.DisplayName, action, result.Text)
	for _, delta := range e.policy.Decide(result.Text, action) {
		if err := working.Registry.ApplySkillDelta(participantID, delta.Skill, delta.Delta, e.now); err != nil {
			e.logger.Printf("apply skill delta %s%+d: %v", delta.Skill, delta.Delta, err)
		}
	}

	resolvedRound := working.Turn.Round
	resolvedIndex := working.Turn.Index
	if err := working.Turn.Advance(e.now, e.turnWindow); err != nil {
		return ActionResult{}, apperrors.Wrap(apperrors.CodeNoParticipants, "advance turn", err)
	}
	working.UpdatedAt = resolvedAt

	if err := e.persist(ctx, working); err != nil {
		return ActionResult{}, err
	}

	e.appendJournal(ctx, storage.ActionRecord{
		ID:            e.newRecordID(),
		ParticipantID: participantID,
		Kind:          storage.ActionKindSubmit,
		Action:        action,
		Narrative:     result.Text,
		Round:         resolvedRound,
		TurnIndex:     resolvedIndex,
		CreatedAt:     resolvedAt,
	})
	_ = e.audit.Emit(ctx, storage.AuditEvent{
		EventName:     audit.EventActionResolved,
		Severity:      string(audit.SeverityInfo),
		ParticipantID: participantID,
		Outcome:       "resolved",
	})

	next, err := e.session.CurrentParticipant()
	if err != nil {
		return ActionResult{}, e.halt(ctx, fmt.Sprintf("next turn pointer is invalid: %v", err))
	}

	return ActionResult{
		Joined:          joined,
		Narrative:       result.Text,
		NextParticipant: next.DisplayName,
		Round:           e.session.Turn.Round,
	}, nil
}

func (e *Engine) handleSkip(ctx context.Context) (SkipResult, error) {
	if e.halted.Load() {
		return SkipResult{}, e.haltedErr()
	}

	working := e.session.Clone()
	skipped, err := working.CurrentParticipant()
	if err != nil {
		if errors.Is(err, domain.ErrTurnParticipantMissing) {
			return SkipResult{}, e.halt(ctx, "turn pointer references unknown participant")
		}
		return SkipResult{}, apperrors.New(apperrors.CodeNoParticipants, "no participants have joined yet")
	}

	skippedAt := e.now().UTC()
	skippedRound := working.Turn.Round
	skippedIndex := working.Turn.Index
	if err := working.Turn.ForceAdvance(e.now, e.turnWindow); err != nil {
		return SkipResult{}, apperrors.Wrap(apperrors.CodeNoParticipants, "advance turn", err)
	}
	working.UpdatedAt = skippedAt

	if err := e.persist(ctx, working); err != nil {
		return SkipResult{}, err
	}

	e.appendJournal(ctx, storage.ActionRecord{
		ID:            e.newRecordID(),
		ParticipantID: skipped.ID,
		Kind:          storage.ActionKindSkip,
		Round:         skippedRound,
		TurnIndex:     skippedIndex,
		CreatedAt:     skippedAt,
	})
	_ = e.audit.Emit(ctx, storage.AuditEvent{
		EventName:     audit.EventTurnSkipped,
		Severity:      string(audit.SeverityInfo),
		ParticipantID: skipped.ID,
		Outcome:       "advanced",
	})

	next, err := e.session.CurrentParticipant()
	if err != nil {
		return SkipResult{}, e.halt(ctx, fmt.Sprintf("next turn pointer is invalid: %v", err))
	}

	return SkipResult{
		Skipped:         skipped.DisplayName,
		NextParticipant: next.DisplayName,
		Round:           e.session.Turn.Round,
	}, nil
}

func (e *Engine) handleSetScene(ctx context.Context, text string) error {
	if e.halted.Load() {
		return e.haltedErr()
	}

	working := e.session.Clone()
	if err := working.SetScene(text, e.now); err != nil {
		return apperrors.New(apperrors.CodeSceneEmptyText, "scene text is required")
	}

	if err := e.persist(ctx, working); err != nil {
		return err
	}

	e.appendJournal(ctx, storage.ActionRecord{
		ID:        e.newRecordID(),
		Kind:      storage.ActionKindScene,
		Action:    working.Scene,
		Round:     working.Turn.Round,
		TurnIndex: working.Turn.Index,
		CreatedAt: e.now().UTC(),
	})
	_ = e.audit.Emit(ctx, storage.AuditEvent{
		EventName: audit.EventSceneChanged,
		Severity:  string(audit.SeverityInfo),
	})
	return nil
}

func (e *Engine) handleReset(ctx context.Context) error {
	fresh := domain.NewSession(e.now)
	if err := e.persist(ctx, fresh); err != nil {
		return err
	}
	e.halted.Store(false)

	e.appendJournal(ctx, storage.ActionRecord{
		ID:        e.newRecordID(),
		Kind:      storage.ActionKindReset,
		Round:     fresh.Turn.Round,
		CreatedAt: e.now().UTC(),
	})
	_ = e.audit.Emit(ctx, storage.AuditEvent{
		EventName: audit.EventSessionReset,
		Severity:  string(audit.SeverityInfo),
	})
	return nil
}

func (e *Engine) handleTimeout(ctx context.Context, deadline time.Time) (TimeoutResult, error) {
	if e.halted.Load() {
		return TimeoutResult{}, nil
	}
	if len(e.session.Turn.Order) == 0 {
		return TimeoutResult{}, nil
	}
	// A deadline from a turn that already moved on is stale noise from the
	// monitor; discard it without touching state.
	if !e.session.Turn.Deadline.Equal(deadline) {
		return TimeoutResult{}, nil
	}
	firedAt := e.now().UTC()
	if firedAt.Before(deadline) {
		return TimeoutResult{}, nil
	}

	working := e.session.Clone()
	skipped, err := working.CurrentParticipant()
	if err != nil {
		return TimeoutResult{}, e.halt(ctx, "turn pointer references unknown participant")
	}

	working.Turn.CheckExpiry(firedAt)
	skippedRound := working.Turn.Round
	skippedIndex := working.Turn.Index
	if err := working.Turn.ForceAdvance(e.now, e.turnWindow); err != nil {
		return TimeoutResult{}, apperrors.Wrap(apperrors.CodeNoParticipants, "advance turn", err)
	}
	working.UpdatedAt = firedAt

	if err := e.persist(ctx, working); err != nil {
		return TimeoutResult{}, err
	}

	e.appendJournal(ctx, storage.ActionRecord{
		ID:            e.newRecordID(),
		ParticipantID: skipped.ID,
		Kind:          storage.ActionKindTimeout,
		Round:         skippedRound,
		TurnIndex:     skippedIndex,
		CreatedAt:     firedAt,
	})
	_ = e.audit.Emit(ctx, storage.AuditEvent{
		EventName:     audit.EventTurnTimeout,
		Severity:      string(audit.SeverityWarn),
		ParticipantID: skipped.ID,
		Outcome:       "advanced",
	})

	next, err := e.session.CurrentParticipant()
	if err != nil {
		return TimeoutResult{}, e.halt(ctx, fmt.Sprintf("next turn pointer is invalid: %v", err))
	}

	return TimeoutResult{
		Fired:           true,
		Skipped:         skipped.DisplayName,
		NextParticipant: next.DisplayName,
		Round:           e.session.Turn.Round,
	}, nil
}

func (e *Engine) newRecordID() string {
	recordID, err := id.NewID()
	if err != nil {
		// Collisions are acceptable for a fallback that should never run.
		e.logger.Printf("generate record id: %v", err)
		return fmt.Sprintf("fallback-%d", e.now().UnixNano())
	}
	return recordID
}

func buildGeneratorRequest(session domain.Session, actorName, action string) narrative.Request {
	currentID, _ := session.Turn.Current()

	order := make([]narrative.OrderEntry, 0, len(session.Turn.Order))
	for _, memberID := range session.Turn.Order {
		name := memberID
		if member, ok := session.Registry.Get(memberID); ok {
			name = member.DisplayName
		}
		order = append(order, narrative.OrderEntry{Name: name, Current: memberID == currentID})
	}

	characters := make([]narrative.CharacterSummary, 0, session.Registry.Len())
	for _, memberID := range session.Turn.Order {
		member, ok := session.Registry.Get(memberID)
		if !ok {
			continue
		}
		characters = append(characters, narrative.CharacterSummary{
			Name:   member.DisplayName,
			Sheet:  member.Sheet,
			Skills: member.Skills,
		})
	}

	entries := session.History.Recent(domain.HistoryCapacity)
	history := make([]narrative.Exchange, 0, len(entries))
	for _, entry := range entries {
		actor := entry.ParticipantID
		if member, ok := session.Registry.Get(entry.ParticipantID); ok {
			actor = member.DisplayName
		}
		history = append(history, narrative.Exchange{
			Actor:     actor,
			Action:    entry.Action,
			Narration: entry.Narrative,
		})
	}

	return narrative.Request{
		Scene:      session.Scene,
		Round:      session.Turn.Round,
		Order:      order,
		Characters: characters,
		History:    history,
		Actor:      actorName,
		Action:     action,
	}
}

func lastActionSummary(name, action, narration string) string {
	return fmt.Sprintf("%s: %s\n%s", name, truncateRunes(action, 100), truncateRunes(narration, 200))
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
