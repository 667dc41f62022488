package errors

import "errors"

// This package defines the sentinel errors shared across the application.
// Services return these (usually wrapped with fmt.Errorf and %w) without
// knowing anything about HTTP; the API layer checks them with errors.Is()
// and maps each one to a status code.

var (
	// ErrNotFound signifies that a requested resource could not be located.
	// Mapped to 404 Not Found.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that client-supplied input failed a business
	// rule (empty message, bad coordinates, oversized name, ...).
	// Mapped to 400 Bad Request.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized signifies a missing or invalid authentication token,
	// or bad credentials on login.
	// Mapped to 401 Unauthorized.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrConflict signifies that an operation conflicts with the current
	// state of a resource (e.g. uploading a document name that is already
	// attached to the chat).
	// Mapped to 409 Conflict.
	ErrConflict = errors.New("resource conflict")

	// ErrCompletion signifies that the upstream completion API call failed.
	// The orchestrator persists an apology turn before surfacing this.
	// Mapped to 500 Internal Server Error.
	ErrCompletion = errors.New("completion request failed")

	// ErrInternal signifies an unexpected server-side error. Used to avoid
	// leaking implementation details to the client.
	// Mapped to 500 Internal Server Error.
	ErrInternal = errors.New("internal server error")
)
