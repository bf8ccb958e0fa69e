package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrEmptyParticipantID indicates a missing participant ID.
	ErrEmptyParticipantID = errors.New("participant id is required")
	// ErrEmptyDisplayName indicates a missing display name.
	ErrEmptyDisplayName = errors.New("participant display name is required")
	// ErrEmptySkillName indicates a missing skill name.
	ErrEmptySkillName = errors.New("skill name is required")
	// ErrParticipantNotFound indicates an unknown participant ID.
	ErrParticipantNotFound = errors.New("participant not found")
)

// Participant is a player known to the table, keyed by a stable external
// identity. The sheet and skills grow dynamically as play unfolds; a
// participant is never deleted individually, only cleared by a full reset.
type Participant struct {
	ID          string            `json:"id"`
	DisplayName string            `json:"display_name"`
	Sheet       map[string]string `json:"sheet"`
	Skills      map[string]int    `json:"skills"`
	JoinedAt    time.Time         `json:"joined_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// Clone returns a deep copy of the participant.
func (p Participant) Clone() Participant {
	clone := p
	clone.Sheet = make(map[string]string, len(p.Sheet))
	for k, v := range p.Sheet {
		clone.Sheet[k] = v
	}
	clone.Skills = make(map[string]int, len(p.Skills))
	for k, v := range p.Skills {
		clone.Skills[k] = v
	}
	return clone
}

// Registry tracks every participant the table has ever seen.
type Registry struct {
	Participants map[string]Participant `json:"participants"`
}

// NewRegistry creates an empty participant registry.
func NewRegistry() Registry {
	return Registry{Participants: map[string]Participant{}}
}

// GetOrCreate returns the participant for id, creating one with an empty
// sheet and no skills when the identity has not been seen before. The second
// return reports whether a new participant was created. Appending the new id
// to the turn order is the scheduler's decision, not the registry's.
func (r *Registry) GetOrCreate(id, displayName string, now func() time.Time) (Participant, bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Participant{}, false, ErrEmptyParticipantID
	}
	if now == nil {
		now = time.Now
	}

	if existing, ok := r.Participants[id]; ok {
		return existing, false, nil
	}

	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return Participant{}, false, ErrEmptyDisplayName
	}

	createdAt := now().UTC()
	participant := Participant{
		ID:          id,
		DisplayName: displayName,
		Sheet:       map[string]string{},
		Skills:      map[string]int{},
		JoinedAt:    createdAt,
		UpdatedAt:   createdAt,
	}
	if r.Participants == nil {
		r.Participants = map[string]Participant{}
	}
	r.Participants[id] = participant
	return participant, true, nil
}

// Get returns the participant for id when present.
func (r *Registry) Get(id string) (Participant, bool) {
	participant, ok := r.Participants[strings.TrimSpace(id)]
	return participant, ok
}

// ApplySkillDelta adds delta to a participant's skill level, creating the
// skill at baseline 0 when absent. Levels are not clamped here; bounding is
// the progression policy's concern.
func (r *Registry) ApplySkillDelta(id, skill string, delta int, now func() time.Time) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrEmptyParticipantID
	}
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return ErrEmptySkillName
	}
	if now == nil {
		now = time.Now
	}

	participant, ok := r.Participants[id]
	if !ok {
		return ErrParticipantNotFound
	}
	if participant.Skills == nil {
		participant.Skills = map[string]int{}
	}
	participant.Skills[skill] += delta
	participant.UpdatedAt = now().UTC()
	r.Participants[id] = participant
	return nil
}

// Len returns the number of known participants.
func (r *Registry) Len() int {
	return len(r.Participants)
}

// Clone returns a deep copy of the registry.
func (r Registry) Clone() Registry {
	clone := NewRegistry()
	for id, participant := range r.Participants {
		clone.Participants[id] = participant.Clone()
	}
	return clone
}
