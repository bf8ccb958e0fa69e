package narrative

import "context"

// Exchange is one resolved action and its narration, oldest first in a
// Request history.
type Exchange struct {
	Actor     string
	Action    string
	Narration string
}

// OrderEntry is one position in the turn order as presented to the
// generator.
type OrderEntry struct {
	Name    string
	Current bool
}

// CharacterSummary is the generator-facing view of one participant.
type CharacterSummary struct {
	Name   string
	Sheet  map[string]string
	Skills map[string]int
}

// Request carries the full table context for one narration call.
type Request struct {
	Scene      string
	Round      int
	Order      []OrderEntry
	Characters []CharacterSummary
	History    []Exchange
	Actor      string
	Action     string
}

// Result is the generated narration.
type Result struct {
	Text string
}

// Generator produces narrative text for a submitted action. Implementations
// must honor context cancellation; the engine bounds every call with a
// deadline.
type Generator interface {
	Narrate(ctx context.Context, req Request) (Result, error)
}
