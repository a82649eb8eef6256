package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/feral-file/world-conquest/internal/domain"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	ErrCodeBadRequest       ErrorCode = "bad_request"
	ErrCodeNotFound         ErrorCode = "not_found"
	ErrCodeValidationFailed ErrorCode = "validation_failed"
	ErrCodeConflict         ErrorCode = "conflict"
	ErrCodeRateLimited      ErrorCode = "rate_limited"

	// Server errors (5xx)
	ErrCodeInternalError ErrorCode = "internal_error"
	ErrCodeDatabaseError ErrorCode = "database_error"
	ErrCodeUnavailable   ErrorCode = "unavailable"
)

// APIError represents a structured API error that carries error code and details
// This is the shared error type used by the REST handlers and the websocket feed
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	jsonErr, _ := json.Marshal(e)
	return string(jsonErr)
}

// Error constructors for common error types
func NewBadRequestError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewNotFoundError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeNotFound,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewValidationError(details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeValidationFailed,
		Message: "Validation failed",
		Details: strings.Join(details, ", "),
	}
}

func NewConflictError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeConflict,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewInternalError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeInternalError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewDatabaseError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeDatabaseError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewUnavailableError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeUnavailable,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewRateLimitedError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeRateLimited,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

// FromDomainError maps an error returned by the executor to an HTTP status and API error.
// message is used for errors that carry no client-facing detail.
func FromDomainError(err error, message string) (int, *APIError) {
	var apiErr *APIError
	var validationErr *domain.ValidationError
	var notFoundErr *domain.NotFoundError

	switch {
	case errors.As(err, &apiErr):
		return statusFor(apiErr.Code), apiErr
	case errors.As(err, &validationErr):
		details := make([]string, 0, len(validationErr.Violations))
		for _, v := range validationErr.Violations {
			details = append(details, v.Message)
		}
		return http.StatusUnprocessableEntity, NewValidationError(details...)
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, NewNotFoundError(notFoundErr.Error())
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, NewNotFoundError(message)
	case errors.Is(err, domain.ErrInsufficientInventory):
		return http.StatusConflict, NewConflictError("Insufficient inventory", err.Error())
	case domain.IsPersistence(err):
		return http.StatusServiceUnavailable, NewDatabaseError(message)
	default:
		return http.StatusInternalServerError, NewInternalError(message)
	}
}

func statusFor(code ErrorCode) int {
	switch code {
	case ErrCodeBadRequest:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeValidationFailed:
		return http.StatusUnprocessableEntity
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case ErrCodeDatabaseError, ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
