package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnbalanced indicates that a journal entry's debits do not equal its credits.
var ErrUnbalanced = errors.New("journal entry is not balanced")

// ErrConflict indicates that a write collides with existing state (overlapping periods, numbering races).
var ErrConflict = errors.New("conflict with existing resource")

// ErrInvalidState indicates that the current status of a resource forbids the operation.
var ErrInvalidState = errors.New("operation not allowed in current state")

// ErrForbidden indicates that the caller may not perform the operation.
var ErrForbidden = errors.New("forbidden")

// ValidationError describes malformed input. Field and Value identify what to fix.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Message)
	}
	if e.Value == "" {
		return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s %q: %s", ErrValidation, e.Field, e.Value, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// BalanceError reports a journal entry whose debit and credit totals differ.
type BalanceError struct {
	TotalDebit  string
	TotalCredit string
}

func (e *BalanceError) Error() string {
	return fmt.Sprintf("%s: debits sum is %s and credits sum is %s", ErrUnbalanced, e.TotalDebit, e.TotalCredit)
}

func (e *BalanceError) Unwrap() error { return ErrUnbalanced }

// ConflictError reports a collision with an existing resource.
type ConflictError struct {
	Resource   string
	ExistingID string
	Message    string
}

func (e *ConflictError) Error() string {
	if e.ExistingID == "" {
		return fmt.Sprintf("%s: %s: %s", ErrConflict, e.Resource, e.Message)
	}
	return fmt.Sprintf("%s: %s %s: %s", ErrConflict, e.Resource, e.ExistingID, e.Message)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// NotFoundError reports a missing account, period or entry.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s %q", ErrNotFound, e.Resource, e.Key)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFoundError creates a NotFoundError for the given resource and lookup key.
func NewNotFoundError(resource, key string) *NotFoundError {
	return &NotFoundError{Resource: resource, Key: key}
}

// StateError reports an operation disallowed by the current status of a resource.
type StateError struct {
	Resource string
	ID       string
	State    string
	Message  string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %s %s is %s: %s", ErrInvalidState, e.Resource, e.ID, e.State, e.Message)
}

func (e *StateError) Unwrap() error { return ErrInvalidState }

// ImportError is the aggregate failure of a bulk import. The itemized record
// failures travel alongside it in the import result.
type ImportError struct {
	Count int
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("CSV import failed with %d errors", e.Count)
}

func (e *ImportError) Unwrap() error { return ErrValidation }
