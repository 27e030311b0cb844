package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/service"
	apperrors "github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/errors"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/httputil"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/middleware"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/validator"
)

// UserHandler handles HTTP requests for user account management.
type UserHandler struct {
	service *service.AuthService
	logger  *slog.Logger
}

// NewUserHandler creates a new user HTTP handler.
func NewUserHandler(svc *service.AuthService, logger *slog.Logger) *UserHandler {
	return &UserHandler{service: svc, logger: logger}
}

// UpdateProfileRequest is the JSON request body for profile updates. Omitted
// fields are left unchanged; a blank password keeps the current one.
type UpdateProfileRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=255"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password"`
}

// UpdateProfile handles PUT /api/users/profile
// The target account is always the caller's own, taken from the token.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.MissingCredential(), h.logger)
		return
	}

	var req UpdateProfileRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	result, err := h.service.UpdateProfile(r.Context(), identity.UserID, service.UpdateProfileInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// List handles GET /api/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, users)
}

// Delete handles DELETE /api/users/{id}
// Account deletion is not supported; the service reports 501.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"id": id})
}
