package errors

// Error codes surfaced in API responses.
const (
	CodeConnectionNotFound = "CONNECTION_NOT_FOUND"
	CodeMomentNotFound     = "MOMENT_NOT_FOUND"
	CodeInvalidCycleWindow = "INVALID_CYCLE_WINDOW"
	CodeInvalidPhase       = "INVALID_PHASE"
	CodeInvalidID          = "INVALID_ID"
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeMissingToken       = "MISSING_TOKEN"
	CodeInvalidToken       = "INVALID_TOKEN"
)

// ConnectionNotFound reports a connection missing for the user.
func ConnectionNotFound(id string) *AppError {
	return NewNotFoundError("connection").
		WithCode(CodeConnectionNotFound).
		WithDetail("connectionId", id)
}

// MomentNotFound reports a moment missing for the user.
func MomentNotFound(id string) *AppError {
	return NewNotFoundError("moment").
		WithCode(CodeMomentNotFound).
		WithDetail("momentId", id)
}

// InvalidCycleWindow reports a cycle whose end precedes its start.
func InvalidCycleWindow() *AppError {
	return NewValidationError("cycle end date must not be before period start date").
		WithCode(CodeInvalidCycleWindow)
}

// InvalidPhase reports an unknown phase name.
func InvalidPhase(name string) *AppError {
	return NewValidationError("unknown cycle phase").
		WithCode(CodeInvalidPhase).
		WithDetail("phase", name)
}

// InvalidID reports a malformed identifier.
func InvalidID(kind, value string) *AppError {
	return NewValidationError(kind+" must be a valid UUID").
		WithCode(CodeInvalidID).
		WithDetail("value", value)
}
