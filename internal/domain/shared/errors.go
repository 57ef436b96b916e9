package shared

import (
	"errors"
	"fmt"
	"strings"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches any DomainError carrying the same code, so callers can use
// errors.Is(err, shared.ErrNotFound) against errors built with NewDomainError.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes
const (
	CodeNotFound      = "NOT_FOUND"
	CodeAlreadyExists = "ALREADY_EXISTS"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeConflict      = "CONFLICT"
	CodeInvalidState  = "INVALID_STATE"
	CodeValidation    = "VALIDATION_ERROR"
)

// Common domain errors
var (
	ErrNotFound            = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists       = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput        = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError(CodeConflict, "Resource was modified by another process")
	ErrInvalidState        = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
)

// NewNotFoundError names the missing resource
func NewNotFoundError(resource string, id any) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s %v not found", resource, id))
}

// NewConflictError reports a state conflict with a message that names the
// conflicting record
func NewConflictError(format string, args ...any) *DomainError {
	return NewDomainError(CodeConflict, fmt.Sprintf(format, args...))
}

// FieldError is one failed check on one input field
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError carries every field-level failure of an input
type ValidationError struct {
	Message string
	Fields  []FieldError
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return e.Message + ": " + strings.Join(parts, "; ")
}

// NewValidationError builds a ValidationError from field failures
func NewValidationError(message string, fields ...FieldError) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

// ErrorCode returns the domain code of err, or "" for infrastructure errors
func ErrorCode(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return CodeValidation
	}
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
