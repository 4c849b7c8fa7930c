// Package apperror defines the error taxonomy shared by every layer.
//
// ERROR KINDS:
// Each sentinel below is one kind of failure the API reports. Services wrap a
// sentinel in an *AppError with a human-readable message; the HTTP layer
// walks the chain with errors.Is to pick the status code and the "type"
// string of the response body. Anything that does not wrap a sentinel is an
// internal error (500).
package apperror

import (
	"errors"
	"strings"
)

// The sentinel text doubles as the "type" field of error responses.
var (
	ErrValidation   = errors.New("Validation Error")
	ErrParam        = errors.New("Parameter Error")
	ErrNotFound     = errors.New("Fetch Error")
	ErrUnauthorized = errors.New("unauthorized")
)

// FieldViolation is one failed rule of an input shape.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type AppError struct {
	Err        error            // sentinel kind
	Message    string           // Human-readable error message
	Field      string           // Optional: field causing the error
	Violations []FieldViolation // Optional: every failed field rule
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports that a single record lookup found nothing.
func NotFound(message string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: message,
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Invalid bundles schema violations into one validation error. The message
// lists every violation so clients that only read "message" still see them.
func Invalid(violations []FieldViolation) *AppError {
	msgs := make([]string, 0, len(violations))
	for _, v := range violations {
		msgs = append(msgs, v.Message)
	}
	e := &AppError{
		Err:        ErrValidation,
		Message:    strings.Join(msgs, ", "),
		Violations: violations,
	}
	if len(violations) > 0 {
		e.Field = violations[0].Field
	}
	return e
}

// Param reports a missing or unusable identifier in the request.
func Param(message string) *AppError {
	return &AppError{
		Err:     ErrParam,
		Message: message,
	}
}

// Unauthorized reports failed credentials or a missing/invalid session token.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}
