// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package compiler

import "errors"

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	// ErrTypeValidation is a local precondition failure; no request was sent.
	ErrTypeValidation
	// ErrTypeCompile is a failure reported by the compile service.
	ErrTypeCompile
	// ErrTypeTransport covers network errors and malformed responses.
	ErrTypeTransport
)

// String returns the error type name.
func (t ErrorType) String() string {
	switch t {
	case ErrTypeValidation:
		return "validation"
	case ErrTypeCompile:
		return "compile"
	case ErrTypeTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// ClientError represents an error from the compile client.
type ClientError struct {
	Type    ErrorType
	Message string
	// Detail is the optional "mensaje" summary sent along with a compile
	// failure. It is meant for logs, not for the user.
	Detail string
	Cause  error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is matches sentinel errors by type and message.
func (e *ClientError) Is(target error) bool {
	t, ok := target.(*ClientError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// ErrEmptySource is returned when the source is empty or whitespace-only.
var ErrEmptySource = &ClientError{
	Type:    ErrTypeValidation,
	Message: "the editor is empty, write something to compile",
}

// TypeOf returns the ErrorType of err, or ErrTypeUnknown.
func TypeOf(err error) ErrorType {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Type
	}
	return ErrTypeUnknown
}

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool { return TypeOf(err) == ErrTypeValidation }

// IsCompile reports whether err was reported by the compile service.
func IsCompile(err error) bool { return TypeOf(err) == ErrTypeCompile }

// IsTransport reports whether err is a network or decoding failure.
func IsTransport(err error) bool { return TypeOf(err) == ErrTypeTransport }

func transportError(msg string, cause error) *ClientError {
	return &ClientError{Type: ErrTypeTransport, Message: msg, Cause: cause}
}
