package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors. Missing fields and degenerate arithmetic
// are NOT errors: they surface as unavailable metrics instead.
var (
	// ErrUnsupportedFormat is returned for file extensions the tabular
	// or statement decoders do not recognize. Fatal per file, isolated
	// at the batch level by the caller.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrNoValidFiles is the batch-level failure when no file of a
	// required document type could be decoded.
	ErrNoValidFiles = errors.New("no valid files of this type were provided")

	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
