package domain

import (
	"errors"
	"fmt"
)

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the caller tried to act on another tenant's data
	ErrForbidden = errors.New("forbidden")

	// ErrUploadInFlight indicates a submission is already being dispatched
	// for this workspace
	ErrUploadInFlight = errors.New("upload already in flight")

	// ErrBulkInFlight indicates a bulk operation is already running for
	// this workspace
	ErrBulkInFlight = errors.New("bulk operation already in flight")

	// ErrTimeout indicates a backend call exceeded the configured deadline
	ErrTimeout = errors.New("backend call timed out")

	// ErrBackendUnavailable indicates the processing backend could not be reached
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrTokenExpired indicates the session token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the session token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")
)

// ValidationError is a local, pre-dispatch rejection. It never reaches the
// network layer and its message is shown to the operator verbatim.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NewValidationError creates a ValidationError with the given reason.
func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

// BackendError carries an error payload returned by the processing backend.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// BackendMessage extracts the backend-supplied message from an error chain,
// or returns fallback when none is present.
func BackendMessage(err error, fallback string) string {
	var be *BackendError
	if errors.As(err, &be) && be.Message != "" {
		return be.Message
	}
	return fallback
}
