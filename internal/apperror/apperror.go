// Package apperror defines the application's error taxonomy.
//
// Every failure that can reach a user is one of a small set of tagged
// variants, each carrying a deterministic HTTP status and a human-readable
// message. Handlers never invent status codes — they extract the pair from
// the error and render it. There is no optional-field fallback: if an error
// is not an *AppError, it renders as a generic 500.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for each variant. Use errors.Is against these to branch on
// the kind of failure without caring about the message.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// AppError pairs an underlying sentinel with the status and message shown to
// the user. Status is always set by the constructors below — callers never
// see a zero status.
type AppError struct {
	Err     error  // one of the sentinels above
	Message string // human-readable, safe to render
	Status  int    // HTTP status code
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ValidationFailed reports a bad submitted payload. The message is the
// comma-joined aggregate of every field failure found in one pass.
func ValidationFailed(message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// NotFound reports a missing entity.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
		Status:  http.StatusNotFound,
	}
}

// NotFoundPage reports an unmatched route.
func NotFoundPage() *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: "Page Not Found",
		Status:  http.StatusNotFound,
	}
}

// Unauthorized reports a missing or invalid identity.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
		Status:  http.StatusUnauthorized,
	}
}

// Forbidden reports an identity that exists but does not own the target.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
		Status:  http.StatusForbidden,
	}
}

// Conflict reports a uniqueness violation (e.g. a taken username).
func Conflict(message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
		Status:  http.StatusConflict,
	}
}

// StatusAndMessage extracts the (status, message) pair to render for any
// error. Unknown errors map to 500 with a generic message — internal details
// (SQL, file paths) must never leak to a page.
func StatusAndMessage(err error) (int, string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status, appErr.Message
	}
	return http.StatusInternalServerError, "Oh No, Something went wrong!"
}
