package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrNotConfigured = errors.New("not configured")
)

// Sentinel errors for the generation pipelines. Transport maps each to a
// distinct caller-visible status; raw provider detail is logged, never returned.
var (
	// ErrTimeout: the text-generation call lost the race against the deadline.
	ErrTimeout = errors.New("generation timeout")
	// ErrEmptyResponse: the provider returned success but no text payload.
	ErrEmptyResponse = errors.New("empty model response")
	// ErrMalformedAnalysis: model output is not parseable JSON.
	ErrMalformedAnalysis = errors.New("malformed analysis response")
	// ErrIncompleteAnalysis: parsed JSON is missing required scalar fields.
	ErrIncompleteAnalysis = errors.New("incomplete analysis response")
	// ErrProvider: non-success transport status from a generation provider.
	ErrProvider = errors.New("provider error")
	// ErrSafetyRejected: the image provider's content-safety system refused
	// the prompt. Recoverable exactly once via the safer prompt variant.
	ErrSafetyRejected = errors.New("safety system rejection")
	// ErrQuotaExceeded: provider quota or rate limit hit.
	ErrQuotaExceeded = errors.New("quota exceeded")
	// ErrPersistence: the primary record write failed.
	ErrPersistence = errors.New("persistence error")
	// ErrDownloadFailed / ErrUploadFailed / ErrRecordUpdateFailed keep the
	// image asset sub-steps distinguishable: an operator can tell whether a
	// generated image exists unlinked versus was never stored.
	ErrDownloadFailed     = errors.New("image download failed")
	ErrUploadFailed       = errors.New("image upload failed")
	ErrRecordUpdateFailed = errors.New("record update failed")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s — %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}
