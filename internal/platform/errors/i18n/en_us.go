package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeNotYourTurn                 = "TURN_NOT_YOURS"
	CodeNoParticipants              = "TURN_NO_PARTICIPANTS"
	CodeTurnParticipantMissing      = "TURN_PARTICIPANT_MISSING"
	CodeParticipantEmptyID          = "PARTICIPANT_EMPTY_ID"
	CodeParticipantEmptyDisplayName = "PARTICIPANT_EMPTY_DISPLAY_NAME"
	CodeActionEmptyText             = "ACTION_EMPTY_TEXT"
	CodeSceneEmptyText              = "SCENE_EMPTY_TEXT"
	CodeGeneratorFailed             = "GENERATOR_FAILED"
	CodeGeneratorTimeout            = "GENERATOR_TIMEOUT"
	CodeNotFound                    = "NOT_FOUND"
	CodeSnapshotSaveFailed          = "SNAPSHOT_SAVE_FAILED"
	CodeEngineHalted                = "ENGINE_HALTED"
	CodeEngineStopped               = "ENGINE_STOPPED"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		// Turn errors
		CodeNotYourTurn:            "It is not your turn. Current turn: {{.CurrentParticipant}}",
		CodeNoParticipants:         "No participants have joined the table yet",
		CodeTurnParticipantMissing: "The current turn references an unknown participant",

		// Participant errors
		CodeParticipantEmptyID:          "Participant ID cannot be empty",
		CodeParticipantEmptyDisplayName: "Participant display name cannot be empty",

		// Action errors
		CodeActionEmptyText: "Action text cannot be empty",

		// Scene errors
		CodeSceneEmptyText: "Scene text cannot be empty",

		// Generator errors
		CodeGeneratorFailed:  "The narrator is unavailable; your turn was not consumed, resubmit to retry",
		CodeGeneratorTimeout: "The narrator timed out; your turn was not consumed, resubmit to retry",

		// Storage errors
		CodeNotFound:           "The requested resource was not found",
		CodeSnapshotSaveFailed: "The game state could not be saved; the event was not applied",

		// Engine errors
		CodeEngineHalted:  "The table is halted by a consistency error; reset to continue",
		CodeEngineStopped: "The game engine is not running",
	},
}
