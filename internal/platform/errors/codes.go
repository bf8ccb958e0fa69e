// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Turn errors
	CodeNotYourTurn            Code = "TURN_NOT_YOURS"
	CodeNoParticipants         Code = "TURN_NO_PARTICIPANTS"
	CodeTurnParticipantMissing Code = "TURN_PARTICIPANT_MISSING"

	// Participant errors
	CodeParticipantEmptyID          Code = "PARTICIPANT_EMPTY_ID"
	CodeParticipantEmptyDisplayName Code = "PARTICIPANT_EMPTY_DISPLAY_NAME"

	// Action errors
	CodeActionEmptyText Code = "ACTION_EMPTY_TEXT"

	// Scene errors
	CodeSceneEmptyText Code = "SCENE_EMPTY_TEXT"

	// Generator errors
	CodeGeneratorFailed  Code = "GENERATOR_FAILED"
	CodeGeneratorTimeout Code = "GENERATOR_TIMEOUT"

	// Storage errors
	CodeNotFound           Code = "NOT_FOUND"
	CodeSnapshotSaveFailed Code = "SNAPSHOT_SAVE_FAILED"

	// Engine errors
	CodeEngineHalted  Code = "ENGINE_HALTED"
	CodeEngineStopped Code = "ENGINE_STOPPED"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeParticipantEmptyID,
		CodeParticipantEmptyDisplayName,
		CodeActionEmptyText,
		CodeSceneEmptyText:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeNotYourTurn,
		CodeNoParticipants,
		CodeEngineHalted:
		return codes.FailedPrecondition

	// NotFound
	case CodeNotFound:
		return codes.NotFound

	// Unavailable - external collaborator failures, retry is sensible
	case CodeGeneratorFailed,
		CodeEngineStopped:
		return codes.Unavailable

	// DeadlineExceeded
	case CodeGeneratorTimeout:
		return codes.DeadlineExceeded

	// DataLoss - consistency violations that must not be masked
	case CodeTurnParticipantMissing:
		return codes.DataLoss

	// Internal - persistence failures
	case CodeSnapshotSaveFailed:
		return codes.Internal

	default:
		return codes.Unknown
	}
}
