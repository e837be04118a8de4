package models

import (
	"errors"
	"fmt"
	"strings"
)

// Domain failure taxonomy. Handlers translate these into HTTP responses;
// nothing below is retried by the core.
var (
	ErrDuplicateEmail         = errors.New("attorney already registered with this email")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrDuplicateCaseNumber    = errors.New("case number already in use")
	ErrNotFoundOrUnauthorized = errors.New("not found or unauthorized")
	ErrCaseNotFound           = errors.New("case not found")
	ErrDocumentNotFound       = errors.New("document not found")
)

// ValidationError reports missing or malformed fields on create/update.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Fields, ", "))
}

// NewValidationError builds a ValidationError from field messages.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}
