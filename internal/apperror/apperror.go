// Package apperror defines the typed errors shared by the service, repository
// and handler layers.
//
// Every error kind is a sentinel (ErrNotFound, ErrStorage, ...) carried by an
// *AppError. Callers test the kind with errors.Is and read the human-readable
// message with errors.As. Only the handler package turns kinds into HTTP
// status codes.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("Validation Error")
	ErrConflict         = errors.New("conflict")
	ErrInvalidReference = errors.New("invalid reference")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrStorage          = errors.New("storage failure")
)

type AppError struct {
	Err     error  // actual error
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
	Cause   error  // Optional: underlying driver/library error, never shown to clients
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes both the sentinel and the cause, so errors.Is matches
// ErrStorage as well as e.g. context.DeadlineExceeded.
func (e *AppError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(resource, id string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict with id %s", resource, id),
	}
}

// InvalidReference reports that a request cites a resource that does not
// exist, e.g. an answer for an unknown question.
func InvalidReference(resource, id string) *AppError {
	return &AppError{
		Err:     ErrInvalidReference,
		Message: fmt.Sprintf("unknown %s %s", resource, id),
		Field:   resource,
	}
}

// Unauthenticated is returned when an identity cannot be resolved from the
// presented credentials or token.
func Unauthenticated(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthenticated,
		Message: message,
	}
}

// Storage wraps a database failure. op describes what was being attempted
// ("saving check-in"); cause is kept for logs and errors.Is.
func Storage(op string, cause error) *AppError {
	return &AppError{
		Err:     ErrStorage,
		Message: fmt.Sprintf("storage: %s: %v", op, cause),
		Cause:   cause,
	}
}
