package util

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// Error codes surfaced in response bodies.
const (
	CodeValidation             = "VALIDATION_FAILED"
	CodeUnauthorized           = "UNAUTHORIZED"
	CodeNotFound               = "NOT_FOUND"
	CodePersistence            = "PERSISTENCE_FAILED"
	CodeInventoryUpdate        = "INVENTORY_UPDATE_FAILED"
	CodeOrderPersistence       = "ORDER_PERSISTENCE_FAILED"
	CodeUpstream               = "UPSTREAM_FAILURE"
	CodeStorageTimeout         = "STORAGE_TIMEOUT"
	CodeInternal               = "INTERNAL_ERROR"
	unauthorizedMessage        = "unauthorized"
	internalServerErrorMessage = "internal server error"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
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

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidation, message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

// NewUnauthorized keeps the public message generic so callers cannot tell
// which check rejected them. The cause is kept for logs.
func NewUnauthorized(cause error) error {
	return &DomainError{
		Code:       CodeUnauthorized,
		Message:    unauthorizedMessage,
		HTTPStatus: http.StatusUnauthorized,
		Err:        cause,
	}
}

func NewPersistenceError(code, message string, err error) error {
	if code == "" {
		code = CodePersistence
	}
	return &DomainError{
		Code:       code,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewUpstreamError(delegate string, err error) error {
	return &DomainError{
		Code:       CodeUpstream,
		Message:    fmt.Sprintf("%s failed", delegate),
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewStorageTimeout(err error) error {
	return &DomainError{
		Code:       CodeStorageTimeout,
		Message:    "storage timed out",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    internalServerErrorMessage,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NewNotFound("resource", nil).(*DomainError)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewStorageTimeout(err).(*DomainError)
	}
	return NewInternalError(err).(*DomainError)
}

// MapError converts err to a *DomainError while keeping the error interface.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	return ToDomainError(err)
}

// IsCode reports whether err carries the given domain error code.
func IsCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
