package http

import (
	"log/slog"
	"net/http"

	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/service"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/httputil"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/validator"
)

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	service *service.AuthService
	logger  *slog.Logger
}

// NewAuthHandler creates a new auth HTTP handler.
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{service: svc, logger: logger}
}

// --- Request DTOs ---

// RegisterRequest is the JSON request body for user registration.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=patient doctor admin"`
}

// LoginRequest is the JSON request body for user login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// --- Handlers ---

// Register handles POST /api/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req RegisterRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	result, err := h.service.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req LoginRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	result, err := h.service.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}
