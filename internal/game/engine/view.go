package engine

import (
	"time"

	"github.com/louisbranch/roundtable/internal/game/domain"
)

// OrderView is one turn order position.
type OrderView struct {
	ID          string
	DisplayName string
	Current     bool
}

// HistoryView is one resolved exchange.
type HistoryView struct {
	ParticipantID string
	Action        string
	Narrative     string
	Timestamp     time.Time
}

// ParticipantView is a read-only copy of one participant.
type ParticipantView struct {
	ID          string
	DisplayName string
	Sheet       map[string]string
	Skills      map[string]int
	JoinedAt    time.Time
}

// StateView is a read-only copy of the table for presentation layers. It is
// taken from the last persisted snapshot, so concurrent reads never observe
// a half-applied event.
type StateView struct {
	Scene           string
	Round           int
	Phase           string
	Order           []OrderView
	CurrentID       string
	CurrentName     string
	Deadline        time.Time
	Expired         bool
	LastAction      string
	History         []HistoryView
	ParticipantsLen int
	Halted          bool
	UpdatedAt       time.Time
}

// State returns the current read view.
func (e *Engine) State() StateView {
	snapshot := e.view.Load()
	if snapshot == nil {
		return StateView{}
	}

	currentID, _ := snapshot.Turn.Current()
	view := StateView{
		Scene:           snapshot.Scene,
		Round:           snapshot.Turn.Round,
		Phase:           snapshot.Turn.Phase().String(),
		CurrentID:       currentID,
		Deadline:        snapshot.Turn.Deadline,
		Expired:         snapshot.Turn.Expired,
		LastAction:      snapshot.LastAction,
		ParticipantsLen: snapshot.Registry.Len(),
		Halted:          e.halted.Load(),
		UpdatedAt:       snapshot.UpdatedAt,
	}

	view.Order = make([]OrderView, 0, len(snapshot.Turn.Order))
	for _, memberID := range snapshot.Turn.Order {
		name := memberID
		if member, ok := snapshot.Registry.Get(memberID); ok {
			name = member.DisplayName
		}
		if memberID == currentID {
			view.CurrentName = name
		}
		view.Order = append(view.Order, OrderView{
			ID:          memberID,
			DisplayName: name,
			Current:     memberID == currentID,
		})
	}

	entries := snapshot.History.Recent(domain.HistoryCapacity)
	view.History = make([]HistoryView, 0, len(entries))
	for _, entry := range entries {
		view.History = append(view.History, HistoryView{
			ParticipantID: entry.ParticipantID,
			Action:        entry.Action,
			Narrative:     entry.Narrative,
			Timestamp:     entry.Timestamp,
		})
	}

	return view
}

// Participant returns a read-only copy of one participant by id.
func (e *Engine) Participant(participantID string) (ParticipantView, bool) {
	snapshot := e.view.Load()
	if snapshot == nil {
		return ParticipantView{}, false
	}
	found, ok := snapshot.Registry.Get(participantID)
	if !ok {
		return ParticipantView{}, false
	}
	member := found.Clone()
	return ParticipantView{
		ID:          member.ID,
		DisplayName: member.DisplayName,
		Sheet:       member.Sheet,
		Skills:      member.Skills,
		JoinedAt:    member.JoinedAt,
	}, true
}

// Participants returns read-only copies of every participant in turn order.
func (e *Engine) Participants() []ParticipantView {
	snapshot := e.view.Load()
	if snapshot == nil {
		return nil
	}
	views := make([]ParticipantView, 0, len(snapshot.Turn.Order))
	for _, memberID := range snapshot.Turn.Order {
		found, ok := snapshot.Registry.Get(memberID)
		if !ok {
			continue
		}
		member := found.Clone()
		views = append(views, ParticipantView{
			ID:          member.ID,
			DisplayName: member.DisplayName,
			Sheet:       member.Sheet,
			Skills:      member.Skills,
			JoinedAt:    member.JoinedAt,
		})
	}
	return views
}
