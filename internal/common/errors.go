// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Common application errors.
var (
	// Validation errors. All of them match ErrValidation with errors.Is.
	ErrValidation        = errors.New("validation failed")
	ErrInvalidAmount     = fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	ErrEmptyCategoryName = fmt.Errorf("%w: category name is required", ErrValidation)
	ErrMissingDate       = fmt.Errorf("%w: date is required", ErrValidation)
	ErrInvalidDateRange  = fmt.Errorf("%w: start date must not be after end date", ErrValidation)

	// Data consistency errors.
	ErrUnresolvedCategory = errors.New("transaction references an unknown category")

	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UnresolvedCategoryError reports a transaction whose category is missing from
// the category collection. It means the data files were corrupted or edited by hand.
type UnresolvedCategoryError struct {
	TransactionID uuid.UUID
	CategoryID    uuid.UUID
}

func (e *UnresolvedCategoryError) Error() string {
	return fmt.Sprintf("%v: transaction %s, category %s", ErrUnresolvedCategory, e.TransactionID, e.CategoryID)
}

func (e *UnresolvedCategoryError) Unwrap() error {
	return ErrUnresolvedCategory
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsValidation reports whether err is a caller-recoverable validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
