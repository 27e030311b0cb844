package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard sentinel errors for common cases.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrUnsupported        = errors.New("unsupported operation")
	ErrInternal           = errors.New("internal error")
)

// AppError represents a structured application error with HTTP status mapping.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound creates a 404 error.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with id %s not found", resource, id),
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// AlreadyExists creates a 409 error.
func AlreadyExists(resource, field, value string) *AppError {
	return &AppError{
		Code:    "ALREADY_EXISTS",
		Message: fmt.Sprintf("%s with %s %q already exists", resource, field, value),
		Status:  http.StatusConflict,
		Err:     ErrAlreadyExists,
	}
}

// InvalidInput creates a 400 error.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// InvalidCredentials creates a 401 error for a failed login attempt.
// The same error is used for an unknown email and a wrong password so the
// response does not reveal which one occurred.
func InvalidCredentials() *AppError {
	return &AppError{
		Code:    "INVALID_CREDENTIALS",
		Message: "invalid email or password",
		Status:  http.StatusUnauthorized,
		Err:     ErrInvalidCredentials,
	}
}

// MissingCredential creates a 401 error for a request with no authorization header.
func MissingCredential() *AppError {
	return &AppError{
		Code:    "MISSING_CREDENTIAL",
		Message: "missing authorization header",
		Status:  http.StatusUnauthorized,
		Err:     ErrUnauthorized,
	}
}

// MalformedCredential creates a 401 error for an authorization header that is
// not in the form "Bearer <token>".
func MalformedCredential() *AppError {
	return &AppError{
		Code:    "MALFORMED_CREDENTIAL",
		Message: "invalid authorization header format",
		Status:  http.StatusUnauthorized,
		Err:     ErrUnauthorized,
	}
}

// InvalidOrExpiredToken creates a 401 error for a token that fails signature or
// expiry verification.
func InvalidOrExpiredToken() *AppError {
	return &AppError{
		Code:    "INVALID_OR_EXPIRED_TOKEN",
		Message: "invalid or expired token",
		Status:  http.StatusUnauthorized,
		Err:     ErrUnauthorized,
	}
}

// Forbidden creates a 403 error.
func Forbidden(message string) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
		Status:  http.StatusForbidden,
		Err:     ErrForbidden,
	}
}

// Unsupported creates a 501 error for operations that are intentionally not
// implemented and must fail loudly rather than silently no-op.
func Unsupported(operation string) *AppError {
	return &AppError{
		Code:    "UNSUPPORTED_OPERATION",
		Message: fmt.Sprintf("%s is not supported", operation),
		Status:  http.StatusNotImplemented,
		Err:     ErrUnsupported,
	}
}

// Internal creates a 500 error.
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUnsupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
