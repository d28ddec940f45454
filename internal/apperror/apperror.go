package apperror

import (
	"fmt"
	"net/http"
)

// Error is the typed failure returned by every service operation. Status is
// the HTTP status the transport layer should answer with, Message is safe to
// show to the client, and Err (optional) carries the internal cause for logs.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// BadRequest reports missing or malformed input.
func BadRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// Conflict reports a duplicate identity. Answered with 400, matching the
// register flow's observed behavior.
func Conflict(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// Unauthorized reports a missing, invalid, expired or superseded credential.
func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

// Internal wraps an infrastructure fault. The message is what the client
// sees; cause stays internal.
func Internal(message string, cause error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message, Err: cause}
}
