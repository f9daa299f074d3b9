package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation signals invalid request parameters.
	ErrValidation = errors.New("validation failed")
	// ErrStorage signals a failed post store query.
	ErrStorage = errors.New("storage error")
)

// ValidationError wraps ErrValidation with the rejected parameter.
type ValidationError struct {
	Param  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrValidation.Error(), e.Param, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a validation error for param.
func NewValidationError(param, reason string) error {
	return &ValidationError{Param: param, Reason: reason}
}
