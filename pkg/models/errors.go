package models

import (
	"errors"
	"fmt"
)

var (
	ErrStorage          = errors.New("a storage error occurred during your request")
	ErrResourceNotFound = errors.New("there is no")
	ErrConflict         = errors.New("the request conflicts with existing data")
	ErrValidation       = errors.New("invalid input")

	ErrBudgetPeriodNotUnique       = fmt.Errorf("%w: a budget for this month and year already exists", ErrConflict)
	ErrGlobalCategoryNameNotUnique = fmt.Errorf("%w: a global category with this name already exists", ErrConflict)
	ErrReferenceNotFound           = fmt.Errorf("%w resource for an ID referenced by your request", ErrResourceNotFound)
)

// NotFoundError is returned when an operation targets an ID that does not exist.
type NotFoundError struct {
	Resource string
	ID       uint64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s with ID %d", ErrResourceNotFound, e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrResourceNotFound
}

// NotFound returns a *NotFoundError for the resource and ID.
func NotFound(resource string, id uint64) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError carries a user facing message for a uniqueness violation.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// Invalid returns an error wrapping ErrValidation.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
