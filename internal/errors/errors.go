// internal/errors/errors.go
package appErrors

import (
	"errors"
	"fmt"
)

// Sentinels for the failure classes surfaced to dashboard clients.
var (
	ErrUnauthenticated  = errors.New("not authenticated")
	ErrForbidden        = errors.New("forbidden")
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("already exists")
	ErrBusy             = errors.New("generation already in progress")
	ErrGenerationFailed = errors.New("generation failed")
	ErrNotImplemented   = errors.New("not implemented")
)

// ValidationError reports a missing or malformed input field. It is raised
// before any remote call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidation builds a ValidationError for field.
func NewValidation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError is returned when a row does not exist or is not visible to
// the caller.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFound builds a NotFoundError.
func NewNotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// Helper constructor
func NewCampaignNotFound(id string) error {
	return NewNotFound("campaign", id)
}
