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
	ErrRoomFull            = errors.New("room is full")
	ErrProviderUnavailable = errors.New("generative provider unavailable")
)

// Machine-readable codes returned to API clients.
const (
	CodeInvalidCapacity = "INVALID_CAPACITY"
	CodeMissingFields   = "MISSING_FIELDS"
	CodeMissingAnswers  = "MISSING_ANSWERS"
	CodeInvalidInput    = "INVALID_INPUT"
	CodeValidation      = "VALIDATION_ERROR"
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
// Code classifies the failure for API clients; empty means CodeValidation.
type ValidationError struct {
	Code   string
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ErrorCode returns the client-facing code, defaulting to CodeValidation.
func (e *ValidationError) ErrorCode() string {
	if e.Code == "" {
		return CodeValidation
	}
	return e.Code
}

// Message joins the field messages into one human-readable sentence.
func (e *ValidationError) Message() string {
	switch len(e.Errors) {
	case 0:
		return "invalid input"
	case 1:
		return e.Errors[0].Field + ": " + e.Errors[0].Message
	}
	msg := ""
	for i, fe := range e.Errors {
		if i > 0 {
			msg += "; "
		}
		msg += fe.Field + ": " + fe.Message
	}
	return msg
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(code string, errs []FieldError) *ValidationError {
	return &ValidationError{Code: code, Errors: errs}
}
