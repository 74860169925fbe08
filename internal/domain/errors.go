package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Generation pipeline errors
	ErrGenerationFailed ErrorCode = "GENERATION_FAILED"
	ErrParseFailed      ErrorCode = "PARSE_FAILED"
	ErrRateLimited      ErrorCode = "RATE_LIMITED"
	ErrContentTooLarge  ErrorCode = "CONTENT_TOO_LARGE"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper functions for common errors
func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

// NewGenerationError wraps an upstream model failure after retries are exhausted.
// The underlying error is kept for diagnostics.
func NewGenerationError(err error) *DomainError {
	return NewError(ErrGenerationFailed, "Failed to generate content with the language model", err)
}

// NewParseError wraps a model response that could not be coerced into valid
// records after all fallback stages.
func NewParseError(err error) *DomainError {
	return NewError(ErrParseFailed, "Failed to parse the model response", err)
}

func NewRateLimitedError(retryAfterSeconds int) *DomainError {
	return NewError(ErrRateLimited,
		fmt.Sprintf("Rate limit exceeded. Try again in %d seconds", retryAfterSeconds), nil)
}

func NewContentTooLargeError(length, max int) *DomainError {
	return NewError(ErrContentTooLarge,
		fmt.Sprintf("Material is too large: %d characters (maximum %d)", length, max), nil)
}

// ValidationError describes a single invalid request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of field-level validation failures.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return e[0].Error()
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}

func NewInvalidFormatError(field, value string) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("has invalid value: %s", value)}
}

func NewOutOfRangeError(field string, value, min, max int) ValidationError {
	return ValidationError{
		Field:   field,
		Message: fmt.Sprintf("is out of range: %d (allowed %d-%d)", value, min, max),
	}
}
