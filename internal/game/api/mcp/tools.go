package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"

	"github.com/louisbranch/roundtable/internal/game/engine"
	apperrors "github.com/louisbranch/roundtable/internal/platform/errors"
)

// ActionSubmitInput represents the MCP tool input for submitting an action.
type ActionSubmitInput struct {
	ParticipantID string `json:"participant_id" jsonschema:"stable identity of the acting participant"`
	DisplayName   string `json:"display_name" jsonschema:"name shown at the table"`
	Action        string `json:"action" jsonschema:"what the participant attempts to do"`
}

// ActionSubmitResult represents the MCP tool output for a resolved action.
type ActionSubmitResult struct {
	Joined          bool   `json:"joined" jsonschema:"whether this submission also joined the table"`
	Narrative       string `json:"narrative" jsonschema:"generated story text"`
	NextParticipant string `json:"next_participant" jsonschema:"who acts next"`
	Round           int    `json:"round" jsonschema:"round number after the action"`
}

// TurnSkipInput represents the MCP tool input for a manual skip.
type TurnSkipInput struct{}

// TurnSkipResult represents the MCP tool output for a manual skip.
type TurnSkipResult struct {
	Skipped         string `json:"skipped" jsonschema:"participant whose turn was skipped"`
	NextParticipant string `json:"next_participant" jsonschema:"who acts next"`
	Round           int    `json:"round" jsonschema:"round number after the skip"`
}

// SceneSetInput represents the MCP tool input for a scene change.
type SceneSetInput struct {
	Text string `json:"text" jsonschema:"new scene description"`
}

// SceneSetResult represents the MCP tool output for a scene change.
type SceneSetResult struct {
	Scene string `json:"scene" jsonschema:"scene description now in effect"`
}

// GameResetInput represents the MCP tool input for a full reset.
type GameResetInput struct{}

// GameResetResult represents the MCP tool output for a full reset.
type GameResetResult struct {
	Scene string `json:"scene" jsonschema:"fresh default scene"`
	Round int    `json:"round" jsonschema:"round number after the reset"`
}

// CharacterShowInput represents the MCP tool input for a sheet lookup.
type CharacterShowInput struct {
	ParticipantID string `json:"participant_id" jsonschema:"identity of the participant to show"`
}

// CharacterShowResult represents the MCP tool output for a sheet lookup.
type CharacterShowResult struct {
	ID          string            `json:"id" jsonschema:"participant identity"`
	DisplayName string            `json:"display_name" jsonschema:"name shown at the table"`
	Sheet       map[string]string `json:"sheet" jsonschema:"free-form character sheet"`
	Skills      map[string]int    `json:"skills" jsonschema:"skill proficiency levels"`
	JoinedAt    string            `json:"joined_at" jsonschema:"when the participant joined"`
}

// ParticipantListInput represents the MCP tool input for listing the table.
type ParticipantListInput struct{}

// ParticipantEntry is one participant in a list result.
type ParticipantEntry struct {
	ID          string `json:"id" jsonschema:"participant identity"`
	DisplayName string `json:"display_name" jsonschema:"name shown at the table"`
	Current     bool   `json:"current" jsonschema:"whether this participant holds the turn"`
}

// ParticipantListResult represents the MCP tool output for listing the table.
type ParticipantListResult struct {
	Participants []ParticipantEntry `json:"participants" jsonschema:"participants in turn order"`
}

// ActionSubmitTool defines the MCP tool schema for submitting an action.
func ActionSubmitTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "action_submit",
		Description: "Submits an action for the current turn and returns the narration",
	}
}

// TurnSkipTool defines the MCP tool schema for a manual skip.
func TurnSkipTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "turn_skip",
		Description: "Advances the turn without resolving an action",
	}
}

// SceneSetTool defines the MCP tool schema for a scene change.
func SceneSetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "scene_set",
		Description: "Overwrites the scene description",
	}
}

// GameResetTool defines the MCP tool schema for a full reset.
func GameResetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "game_reset",
		Description: "Clears participants, characters, history, and scene back to defaults",
	}
}

// CharacterShowTool defines the MCP tool schema for a sheet lookup.
func CharacterShowTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "character_show",
		Description: "Shows a participant's character sheet and skills",
	}
}

// ParticipantListTool defines the MCP tool schema for listing the table.
func ParticipantListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "participant_list",
		Description: "Lists participants in turn order with the current turn marked",
	}
}

// ActionSubmitHandler resolves an action through the engine.
func ActionSubmitHandler(eng *engine.Engine) mcp.ToolHandlerFor[ActionSubmitInput, ActionSubmitResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ActionSubmitInput) (*mcp.CallToolResult, ActionSubmitResult, error) {
		result, err := eng.SubmitAction(ctx, input.ParticipantID, input.DisplayName, input.Action)
		if err != nil {
			return nil, ActionSubmitResult{}, toolError(err)
		}
		return nil, ActionSubmitResult{
			Joined:          result.Joined,
			Narrative:       result.Narrative,
			NextParticipant: result.NextParticipant,
			Round:           result.Round,
		}, nil
	}
}

// TurnSkipHandler advances the turn through the engine.
func TurnSkipHandler(eng *engine.Engine) mcp.ToolHandlerFor[TurnSkipInput, TurnSkipResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ TurnSkipInput) (*mcp.CallToolResult, TurnSkipResult, error) {
		result, err := eng.Skip(ctx)
		if err != nil {
			return nil, TurnSkipResult{}, toolError(err)
		}
		return nil, TurnSkipResult{
			Skipped:         result.Skipped,
			NextParticipant: result.NextParticipant,
			Round:           result.Round,
		}, nil
	}
}

// SceneSetHandler changes the scene through the engine.
func SceneSetHandler(eng *engine.Engine) mcp.ToolHandlerFor[SceneSetInput, SceneSetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SceneSetInput) (*mcp.CallToolResult, SceneSetResult, error) {
		if err := eng.SetScene(ctx, input.Text); err != nil {
			return nil, SceneSetResult{}, toolError(err)
		}
		return nil, SceneSetResult{Scene: eng.State().Scene}, nil
	}
}

// GameResetHandler resets the whole table through the engine.
func GameResetHandler(eng *engine.Engine) mcp.ToolHandlerFor[GameResetInput, GameResetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ GameResetInput) (*mcp.CallToolResult, GameResetResult, error) {
		if err := eng.Reset(ctx); err != nil {
			return nil, GameResetResult{}, toolError(err)
		}
		state := eng.State()
		return nil, GameResetResult{Scene: state.Scene, Round: state.Round}, nil
	}
}

// CharacterShowHandler looks up one participant's sheet.
func CharacterShowHandler(eng *engine.Engine) mcp.ToolHandlerFor[CharacterShowInput, CharacterShowResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input CharacterShowInput) (*mcp.CallToolResult, CharacterShowResult, error) {
		member, ok := eng.Participant(input.ParticipantID)
		if !ok {
			return nil, CharacterShowResult{}, toolError(
				apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("participant %q not found", input.ParticipantID)))
		}
		return nil, CharacterShowResult{
			ID:          member.ID,
			DisplayName: member.DisplayName,
			Sheet:       member.Sheet,
			Skills:      member.Skills,
			JoinedAt:    member.JoinedAt.Format(time.RFC3339),
		}, nil
	}
}

// ParticipantListHandler lists the table in turn order.
func ParticipantListHandler(eng *engine.Engine) mcp.ToolHandlerFor[ParticipantListInput, ParticipantListResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ ParticipantListInput) (*mcp.CallToolResult, ParticipantListResult, error) {
		state := eng.State()
		result := ParticipantListResult{Participants: make([]ParticipantEntry, 0, len(state.Order))}
		for _, entry := range state.Order {
			result.Participants = append(result.Participants, ParticipantEntry{
				ID:          entry.ID,
				DisplayName: entry.DisplayName,
				Current:     entry.Current,
			})
		}
		return nil, result, nil
	}
}

// toolError converts engine errors into the message an MCP client should
// see. Coded errors go through the shared status conversion so clients get
// the machine-readable reason alongside the localized text; other errors
// pass through untouched.
func toolError(err error) error {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		return err
	}
	st := status.Convert(apperrors.HandleError(err, apperrors.DefaultLocale))
	reason := string(appErr.Code)
	message := st.Message()
	for _, detail := range st.Details() {
		switch d := detail.(type) {
		case *errdetails.ErrorInfo:
			reason = d.Reason
		case *errdetails.LocalizedMessage:
			message = d.Message
		}
	}
	return fmt.Errorf("%s: %s", reason, message)
}
