// Package errors defines the coded errors shared by every delvemap layer.
//
// Each error carries a machine-readable [Code] next to its human-readable
// message. The CLI maps codes to exit behavior, the HTTP server maps them
// to status codes, and tests assert on them without string matching.
//
// Codes group by prefix: INVALID_* for rejected input, *_NOT_FOUND for
// missing resources, DUNGEON_* for graphs that fail the acceptance gate,
// and the remainder for rendering and infrastructure failures.
//
// Construct errors with [New], or [Wrap] when there is an underlying
// cause to preserve:
//
//	err := errors.New(errors.ErrCodeInvalidRoom, "invalid room id: %s", id)
//	err = errors.Wrap(errors.ErrCodeRenderFailed, cause, "render %s", format)
//
// and branch on them with [Is]:
//
//	if errors.Is(err, errors.ErrCodeNotConnected) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Code identifies an error category. Codes are stable across releases;
// clients and tests may depend on them.
type Code string

const (
	// Rejected input
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidRoom   Code = "INVALID_ROOM"
	ErrCodeInvalidGraph  Code = "INVALID_GRAPH"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Missing resources
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeRoomNotFound    Code = "ROOM_NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"
	ErrCodeDungeonNotFound Code = "DUNGEON_NOT_FOUND"

	// Failed acceptance gate
	ErrCodeNotConnected     Code = "DUNGEON_NOT_CONNECTED"
	ErrCodeGenerationFailed Code = "GENERATION_FAILED"

	// Layout and rendering
	ErrCodeLayoutUnavailable Code = "LAYOUT_UNAVAILABLE"
	ErrCodeRenderFailed      Code = "RENDER_FAILED"

	// Persistence
	ErrCodeStore   Code = "STORE_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	// Everything else
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error pairs a code with a message and an optional underlying cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error renders as "CODE: message" with the cause appended when present.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the cause to the errors.Is/As machinery.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds an Error from a code and a printf-style message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error that records cause, so the chain stays visible to
// errors.Is/As while callers branch on the code.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the first coded error in err's chain carries code.
func Is(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// GetCode returns the code of the first coded error in err's chain, or ""
// when the chain has none.
func GetCode(err error) Code {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Code
}

// UserMessage returns the message without the code prefix for display to
// end users; non-coded errors pass through unchanged.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	return e.Message
}
