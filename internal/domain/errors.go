package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound            = errors.New("not found")
	ErrAlreadyExists       = errors.New("already exists")
	ErrValidation          = errors.New("validation error")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrConflict            = errors.New("conflict")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrInconsistentState   = errors.New("inconsistent state")
	ErrPartialBatchFailure = errors.New("partial batch failure")
	ErrOrphanedLexeme      = errors.New("lexeme created but not linked")

	// ErrRejected is returned when the remote store answers with an error
	// envelope whose code maps to none of the other sentinels.
	ErrRejected = errors.New("rejected by remote store")
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
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
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

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// APIError is an error envelope returned by a MediaWiki/Wikibase endpoint.
// Kind is the sentinel the remote code was mapped to.
type APIError struct {
	Code string
	Info string
	Kind error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("remote api error %s: %s", e.Code, e.Info)
}

func (e *APIError) Unwrap() error {
	if e.Kind == nil {
		return ErrRejected
	}
	return e.Kind
}

// PartialBatchError reports that some items of a batch failed while others
// succeeded.
type PartialBatchError struct {
	Failed int
	Total  int
}

func (e *PartialBatchError) Error() string {
	return fmt.Sprintf("%d of %d items failed", e.Failed, e.Total)
}

func (e *PartialBatchError) Unwrap() error { return ErrPartialBatchFailure }

// OrphanError reports that a lexeme was created but the follow-up link
// write failed, leaving the new lexeme unlinked on the remote store.
// errors.Is matches both ErrOrphanedLexeme and the underlying cause.
type OrphanError struct {
	LexemeID   string
	RevisionID int64
	Err        error
}

func (e *OrphanError) Error() string {
	return fmt.Sprintf("lexeme %s created (rev %d) but not linked: %v", e.LexemeID, e.RevisionID, e.Err)
}

func (e *OrphanError) Unwrap() []error { return []error{ErrOrphanedLexeme, e.Err} }
