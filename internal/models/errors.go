package models

import (
	"errors"
	"fmt"
)

// Error codes used across the core. Validation errors are raised before any
// remote call; transport errors wrap opaque failures from the persistence
// collaborator.
const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeDepthExceeded  = "DEPTH_EXCEEDED"
	CodeParentNotFound = "PARENT_NOT_FOUND"
	CodeNotFound       = "NOT_FOUND"
	CodeTransport      = "TRANSPORT_ERROR"
	CodeInvalidData    = "INVALID_DATA"
)

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewDepthExceededError(parentID uint) *AppError {
	return &AppError{
		Code:    CodeDepthExceeded,
		Message: fmt.Sprintf("reply %d is at the maximum thread depth", parentID),
	}
}

func NewParentNotFoundError(parentID uint) *AppError {
	return &AppError{
		Code:    CodeParentNotFound,
		Message: fmt.Sprintf("parent reply %d not found", parentID),
	}
}

func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewTransportError(operation string, err error) *AppError {
	return &AppError{
		Code:    CodeTransport,
		Message: fmt.Sprintf("%s failed", operation),
		Err:     err,
	}
}

func NewInvalidDataError(message string) *AppError {
	return &AppError{
		Code:    CodeInvalidData,
		Message: message,
	}
}

// ErrorCode returns the AppError code carried by err, or empty string.
func ErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// IsValidation reports whether err is a validation failure (including the
// depth and parent checks that run before any remote call).
func IsValidation(err error) bool {
	switch ErrorCode(err) {
	case CodeValidation, CodeDepthExceeded, CodeParentNotFound:
		return true
	}
	return false
}

// IsNotFound reports whether err refers to an unknown reply or post.
func IsNotFound(err error) bool {
	return ErrorCode(err) == CodeNotFound
}

// IsTransport reports whether err wraps a persistence-collaborator failure.
func IsTransport(err error) bool {
	return ErrorCode(err) == CodeTransport
}
