package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies engine errors into a closed set of categories.
// The HTTP layer maps kinds to status codes; no other layer inspects them.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindProvider   ErrorKind = "provider"
	KindConflict   ErrorKind = "conflict"
)

// Error is the tagged error type used across the engine.
type Error struct {
	Kind    ErrorKind
	Code    string // optional machine code, e.g. a GSP error code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validationf creates a validation error with a formatted message.
func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf creates a not-found error with a formatted message.
func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflictf creates a conflict error with a formatted message.
func Conflictf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// ProviderError wraps a GSP failure, keeping the provider-supplied code when present.
func ProviderError(code, message string, err error) *Error {
	return &Error{Kind: KindProvider, Code: code, Message: message, Err: err}
}

// KindOf returns the kind of err, or an empty kind for untagged errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
