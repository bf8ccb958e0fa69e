package domain

import (
	"errors"
	"strings"
	"time"
)

// DefaultScene opens every fresh session.
const DefaultScene = "The adventure begins..."

var (
	// ErrEmptySceneText indicates a scene update with no content.
	ErrEmptySceneText = errors.New("scene text is required")
	// ErrEmptyActionText indicates an action submission with no content.
	ErrEmptyActionText = errors.New("action text is required")
)

// Session is the aggregate root for the whole table: registry, turn state,
// history window, and scene. It is the unit of persistence and of reset.
// Exactly one Session exists per running process, owned by the engine.
type Session struct {
	Registry   Registry      `json:"registry"`
	Turn       TurnState     `json:"turn"`
	History    HistoryBuffer `json:"history"`
	Scene      string        `json:"scene"`
	LastAction string        `json:"last_action"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// NewSession creates the fresh default session: empty registry and order,
// empty history, default scene.
func NewSession(now func() time.Time) Session {
	if now == nil {
		now = time.Now
	}
	createdAt := now().UTC()
	return Session{
		Registry:  NewRegistry(),
		Turn:      NewTurnState(),
		History:   NewHistoryBuffer(),
		Scene:     DefaultScene,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

// SetScene overwrites the scene description. Turn order is unaffected.
func (s *Session) SetScene(text string, now func() time.Time) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptySceneText
	}
	if now == nil {
		now = time.Now
	}
	s.Scene = text
	s.UpdatedAt = now().UTC()
	return nil
}

// CurrentParticipant resolves the turn pointer against the registry. A
// pointer at an unknown identity is a consistency fault: membership is
// append-only, so it should never occur.
func (s *Session) CurrentParticipant() (Participant, error) {
	currentID, err := s.Turn.Current()
	if err != nil {
		return Participant{}, err
	}
	participant, ok := s.Registry.Get(currentID)
	if !ok {
		return Participant{}, ErrTurnParticipantMissing
	}
	return participant, nil
}

// Clone returns a deep copy of the session, so the engine can mutate a
// working copy and discard it when persistence fails.
func (s Session) Clone() Session {
	clone := s
	clone.Registry = s.Registry.Clone()
	clone.Turn = s.Turn.Clone()
	clone.History = s.History.Clone()
	return clone
}
