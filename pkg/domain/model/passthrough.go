package model

// PassthroughError is a failure relayed to a pass-through API client as
// StatusCode with {"error": Message}.
type PassthroughError struct {
	StatusCode int
	Message    string
	cause      error
}

// NewPassthroughError creates a PassthroughError wrapping cause
func NewPassthroughError(status int, message string, cause error) *PassthroughError {
	return &PassthroughError{StatusCode: status, Message: message, cause: cause}
}

func (e *PassthroughError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *PassthroughError) Unwrap() error {
	return e.cause
}
