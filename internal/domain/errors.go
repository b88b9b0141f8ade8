package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies failures surfaced to callers. Codes are stable and
// safe to map onto transport status codes.
type ErrorCode string

const (
	CodeNotFound        ErrorCode = "not_found"
	CodeConflict        ErrorCode = "conflict"
	CodeValidation      ErrorCode = "validation"
	CodeGatewayDeclined ErrorCode = "gateway_declined"
	CodeInternal        ErrorCode = "internal"
)

// Error is the typed failure returned by every service operation.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches two domain errors by code so callers can compare against the
// sentinel constructors without caring about the message.
func (e *Error) Is(target error) bool {
	var de *Error
	if errors.As(target, &de) {
		return de.Code == e.Code
	}
	return false
}

func NotFound(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// GatewayDeclined carries the gateway's decline code as the message prefix so
// the renter can resubmit with different card material.
func GatewayDeclined(declineCode, message string) *Error {
	return &Error{Code: CodeGatewayDeclined, Message: fmt.Sprintf("%s: %s", declineCode, message)}
}

// Internal wraps storage/encryption failures. The cause is kept for logging
// but the message stays opaque to callers.
func Internal(err error) *Error {
	return &Error{Code: CodeInternal, Message: "internal error", Err: err}
}

// CodeOf extracts the error code, defaulting to internal for untyped errors.
func CodeOf(err error) ErrorCode {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
