package domain

import (
	"errors"
	"strings"
	"time"
)

// TurnPhase describes the scheduler's lifecycle state.
type TurnPhase int

const (
	// TurnPhaseEmpty indicates no participants have joined yet.
	TurnPhaseEmpty TurnPhase = iota
	// TurnPhaseActive indicates the turn order is populated and the deadline
	// has not been reached.
	TurnPhaseActive
	// TurnPhaseExpired indicates the deadline passed and the turn awaits a
	// forced advance.
	TurnPhaseExpired
)

// String returns a human-readable phase name.
func (p TurnPhase) String() string {
	switch p {
	case TurnPhaseEmpty:
		return "empty"
	case TurnPhaseActive:
		return "active"
	case TurnPhaseExpired:
		return "expired"
	default:
		return "unknown"
	}
}

var (
	// ErrNoParticipants indicates a turn operation against an empty order.
	ErrNoParticipants = errors.New("turn order has no participants")
	// ErrTurnParticipantMissing indicates the current turn points at an
	// identity absent from the registry. Membership is append-only, so this
	// is a consistency fault, never an expected state.
	ErrTurnParticipantMissing = errors.New("current turn participant missing from registry")
)

// TurnState owns the round-robin turn order, the current-turn pointer, the
// round counter, and the expiry deadline.
//
// Invariant: Index is a valid position in Order whenever Order is non-empty,
// and Round increments exactly once per full cycle through Order.
type TurnState struct {
	Order    []string  `json:"order"`
	Index    int       `json:"index"`
	Round    int       `json:"round"`
	Deadline time.Time `json:"deadline"`
	Expired  bool      `json:"expired"`
}

// NewTurnState creates an empty turn state at round 1.
func NewTurnState() TurnState {
	return TurnState{Order: []string{}, Round: 1}
}

// Phase reports the scheduler's lifecycle state.
func (t *TurnState) Phase() TurnPhase {
	if len(t.Order) == 0 {
		return TurnPhaseEmpty
	}
	if t.Expired {
		return TurnPhaseExpired
	}
	return TurnPhaseActive
}

// Current returns the participant ID holding the turn.
func (t *TurnState) Current() (string, error) {
	if len(t.Order) == 0 {
		return "", ErrNoParticipants
	}
	return t.Order[t.Index], nil
}

// Contains reports whether id is already part of the turn order.
func (t *TurnState) Contains(id string) bool {
	for _, existing := range t.Order {
		if existing == id {
			return true
		}
	}
	return false
}

// AddParticipant appends id to the turn order if absent. Joining an empty
// table makes the newcomer the current turn and arms a fresh deadline.
// Membership is additive only; removal is not supported.
func (t *TurnState) AddParticipant(id string, now func() time.Time, window time.Duration) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrEmptyParticipantID
	}
	if t.Contains(id) {
		return nil
	}
	if now == nil {
		now = time.Now
	}

	wasEmpty := len(t.Order) == 0
	t.Order = append(t.Order, id)
	if wasEmpty {
		t.Index = 0
		t.arm(now, window)
	}
	return nil
}

// Advance moves the turn to the next participant, incrementing the round
// when the pointer wraps past the end of the order, and arms a fresh
// deadline. Wraparound is normal flow, never an error.
func (t *TurnState) Advance(now func() time.Time, window time.Duration) error {
	if len(t.Order) == 0 {
		return ErrNoParticipants
	}
	if now == nil {
		now = time.Now
	}

	next := t.Index + 1
	if next >= len(t.Order) {
		next = 0
		t.Round++
	}
	t.Index = next
	t.arm(now, window)
	return nil
}

// ForceAdvance advances the turn regardless of the current phase. It is the
// recovery path for manual skips and fired timeouts.
func (t *TurnState) ForceAdvance(now func() time.Time, window time.Duration) error {
	return t.Advance(now, window)
}

// CheckExpiry marks the turn expired when now has reached the deadline.
// It is idempotent and reports whether the turn is expired.
func (t *TurnState) CheckExpiry(now time.Time) bool {
	if len(t.Order) == 0 || t.Deadline.IsZero() {
		return false
	}
	if !now.Before(t.Deadline) {
		t.Expired = true
	}
	return t.Expired
}

func (t *TurnState) arm(now func() time.Time, window time.Duration) {
	t.Deadline = now().UTC().Add(window)
	t.Expired = false
}

// Clone returns a deep copy of the turn state.
func (t TurnState) Clone() TurnState {
	clone := t
	clone.Order = make([]string, len(t.Order))
	copy(clone.Order, t.Order)
	return clone
}
