package notegrab

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"
	ENETWORK  = "network"

	// Extraction failures. Each one is terminal for a single parse call.
	ESTATENOTFOUND = "state_not_found"
	EUNBALANCED    = "unbalanced_object"
	EMALFORMED     = "malformed_object"
	ENOENTITY      = "entity_not_found"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// MalformedError reports an embedded object that still failed strict parsing
// after sanitization. Context holds at most ContextRadius characters on each
// side of Offset.
type MalformedError struct {
	Offset  int64
	Context string
	Err     error
}

// ContextRadius is the number of characters kept on each side of the failing
// offset in MalformedError.Context.
const ContextRadius = 200

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed embedded object at offset %d: %v (near %q)", e.Offset, e.Err, e.Context)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var m *MalformedError
	if errors.As(err, &m) {
		return EMALFORMED
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	var m *MalformedError
	if errors.As(err, &m) {
		return m.Error()
	}
	return "Internal error"
}
