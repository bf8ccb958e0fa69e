package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/roundtable/internal/game/engine"
)

// StateResourceURI addresses the current table snapshot.
const StateResourceURI = "table://state"

// StateOrderEntry is one turn order position in the state payload.
type StateOrderEntry struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Current     bool   `json:"current"`
}

// StateHistoryEntry is one resolved exchange in the state payload.
type StateHistoryEntry struct {
	ParticipantID string `json:"participant_id"`
	Action        string `json:"action"`
	Narrative     string `json:"narrative"`
	Timestamp     string `json:"timestamp"`
}

// StatePayload is the JSON body of the table://state resource.
type StatePayload struct {
	Scene       string              `json:"scene"`
	Round       int                 `json:"round"`
	Phase       string              `json:"phase"`
	CurrentTurn string              `json:"current_turn"`
	Deadline    string              `json:"deadline,omitempty"`
	Expired     bool                `json:"expired"`
	Halted      bool                `json:"halted"`
	LastAction  string              `json:"last_action"`
	Order       []StateOrderEntry   `json:"order"`
	History     []StateHistoryEntry `json:"history"`
}

// StateResource defines the MCP resource for the table snapshot.
func StateResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "table_state",
		Title:       "Table State",
		Description: "Readable table state with scene, turn order, deadline, and recent history",
		MIMEType:    "application/json",
		URI:         StateResourceURI,
	}
}

// StateResourceHandler serves the table snapshot as JSON.
func StateResourceHandler(eng *engine.Engine) mcp.ResourceHandler {
	return func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := StateResourceURI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}

		state := eng.State()
		payload := StatePayload{
			Scene:       state.Scene,
			Round:       state.Round,
			Phase:       state.Phase,
			CurrentTurn: state.CurrentName,
			Expired:     state.Expired,
			Halted:      state.Halted,
			LastAction:  state.LastAction,
			Order:       make([]StateOrderEntry, 0, len(state.Order)),
			History:     make([]StateHistoryEntry, 0, len(state.History)),
		}
		if !state.Deadline.IsZero() {
			payload.Deadline = state.Deadline.Format(time.RFC3339)
		}
		for _, entry := range state.Order {
			payload.Order = append(payload.Order, StateOrderEntry{
				ID:          entry.ID,
				DisplayName: entry.DisplayName,
				Current:     entry.Current,
			})
		}
		for _, entry := range state.History {
			payload.History = append(payload.History, StateHistoryEntry{
				ParticipantID: entry.ParticipantID,
				Action:        entry.Action,
				Narrative:     entry.Narrative,
				Timestamp:     entry.Timestamp.Format(time.RFC3339),
			})
		}

		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal table state: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}
