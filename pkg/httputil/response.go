package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	apperrors "github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/errors"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/logger"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/validator"
)

// ErrorBody is the standard JSON error envelope: {"error": {"code": ..., "message": ...}}.
type ErrorBody struct {
	Error *ErrorResponse `json:"error"`
}

// ErrorResponse represents an error in the standard response format.
type ErrorResponse struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing meaningful can be done if encoding fails.
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a standardized error response based on the error type.
// Typed AppErrors map to their own status and code; anything else is reported
// as a generic internal error so storage-layer detail never reaches the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	// Prefer the request-scoped logger (enriched with correlation_id, user_id,
	// trace_id, span_id) if the RequestLogging middleware has been mounted.
	l := logger.FromContext(r.Context())
	if l == slog.Default() {
		l = fallback
	}

	requestID := logger.CorrelationIDFromContext(r.Context())

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		WriteJSON(w, appErr.Status, ErrorBody{
			Error: &ErrorResponse{Code: appErr.Code, Message: appErr.Message, RequestID: requestID},
		})
		return
	}

	status := apperrors.HTTPStatus(err)
	code := "INTERNAL_ERROR"
	message := "an internal error occurred"

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		code = "NOT_FOUND"
		message = "resource not found"
	case errors.Is(err, apperrors.ErrAlreadyExists):
		code = "ALREADY_EXISTS"
		message = "resource already exists"
	case errors.Is(err, apperrors.ErrInvalidInput):
		code = "INVALID_INPUT"
		message = err.Error()
	}

	if status == http.StatusInternalServerError {
		l.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}

	WriteJSON(w, status, ErrorBody{
		Error: &ErrorResponse{Code: code, Message: message, RequestID: requestID},
	})
}

// WriteValidationError writes a standardized validation error response with
// field-level messages when available.
func WriteValidationError(w http.ResponseWriter, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		WriteJSON(w, http.StatusBadRequest, ErrorBody{
			Error: &ErrorResponse{
				Code:    "VALIDATION_ERROR",
				Message: "request validation failed",
				Fields:  valErr.Fields(),
			},
		})
		return
	}

	WriteJSON(w, http.StatusBadRequest, ErrorBody{
		Error: &ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()},
	})
}

// ParseUUID validates that the given string is a valid UUID and returns it.
// If invalid, it writes a 400 Bad Request response and returns false,
// signaling the caller to return early.
func ParseUUID(w http.ResponseWriter, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(param)
	if err != nil {
		WriteJSON(w, http.StatusBadRequest, ErrorBody{
			Error: &ErrorResponse{
				Code:    "INVALID_PARAMETER",
				Message: "invalid UUID: " + param,
			},
		})
		return uuid.Nil, false
	}
	return id, true
}
