package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Quiz generation errors
	ErrEmptyContent      ErrorCode = "EMPTY_CONTENT"
	ErrModelUnavailable  ErrorCode = "MODEL_UNAVAILABLE"
	ErrMalformedResponse ErrorCode = "MALFORMED_RESPONSE"
	ErrStorage           ErrorCode = "STORAGE_ERROR"
	ErrLLMServiceError   ErrorCode = "LLM_SERVICE_ERROR"
)

// ErrEmptyCompletion is returned by completion clients when the model produced no text.
var ErrEmptyCompletion = errors.New("completion service returned no text")

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// IsClientError reports whether the error was caused by the caller's input.
func (e *DomainError) IsClientError() bool {
	return e.Code == ErrInvalidInput
}

// PublicMessage is the text returned to API callers. Unexpected downstream
// failures include their cause; classified failures return only the message.
func (e *DomainError) PublicMessage() string {
	switch e.Code {
	case ErrStorage, ErrLLMServiceError, ErrInternal:
		return e.Error()
	default:
		return e.Message
	}
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewMissingFieldError(field string) *DomainError {
	return NewError(ErrInvalidInput, fmt.Sprintf("Missing required field: %s", field), nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewEmptyContentError() *DomainError {
	return NewError(ErrEmptyContent, "No text data found in Firebase Storage", nil)
}

func NewModelUnavailableError(err error) *DomainError {
	return NewError(ErrModelUnavailable, "No response from AI model", err)
}

// NewMalformedResponseError reports model output that does not fit the quiz schema.
func NewMalformedResponseError(format string, args ...any) *DomainError {
	return NewError(ErrMalformedResponse, fmt.Sprintf(format, args...), nil)
}

func NewStorageError(err error) *DomainError {
	return NewError(ErrStorage, "Error generating questions", err)
}

func NewLLMServiceError(err error) *DomainError {
	return NewError(ErrLLMServiceError, "Error generating questions", err)
}

// AsDomainError unwraps err into a *DomainError when possible.
func AsDomainError(err error) (*DomainError, bool) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}
