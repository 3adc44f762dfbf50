package utils

import "fmt"

// EclError represents a structured codec error.
type EclError struct {
	Context string
	Cause   error
}

// Error implements the error interface.
func (e *EclError) Error() string {
	return fmt.Sprintf("%s: %v", e.Context, e.Cause)
}

// WrapError creates a contextual error.
func WrapError(context string, cause error) error {
	if cause == nil {
		return nil
	}
	return &EclError{
		Context: context,
		Cause:   cause,
	}
}

// Unwrap provides compatibility with errors.Unwrap().
func (e *EclError) Unwrap() error {
	return e.Cause
}
