package commands

import (
	"errors"

	"github.com/budgetbook/backend/pkg/models"
)

// Kind classifies why a command failed.
type Kind string

const (
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindValidation Kind = "validation"
	KindStorage    Kind = "storage"
)

// Error is the failure of a command as reported to the caller.
type Error struct {
	Kind    Kind   `json:"kind" example:"not_found"`
	Message string `json:"error" example:"there is no budget with ID 7"`
	err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.err
}

// Classify converts an error returned by the store into an *Error.
//
// Storage failures are reported with a generic message. Their cause stays
// reachable through errors.Unwrap for whoever logs them.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}

	switch {
	case errors.Is(err, models.ErrResourceNotFound):
		return &Error{Kind: KindNotFound, Message: err.Error(), err: err}
	case errors.Is(err, models.ErrConflict):
		return &Error{Kind: KindConflict, Message: err.Error(), err: err}
	case errors.Is(err, models.ErrValidation):
		return &Error{Kind: KindValidation, Message: err.Error(), err: err}
	}

	return &Error{Kind: KindStorage, Message: models.ErrStorage.Error(), err: err}
}
