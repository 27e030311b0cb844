package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/service"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/httputil"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/validator"
)

// PatientHandler handles HTTP requests for patient records.
type PatientHandler struct {
	service *service.PatientService
	logger  *slog.Logger
}

// NewPatientHandler creates a new patient HTTP handler.
func NewPatientHandler(svc *service.PatientService, logger *slog.Logger) *PatientHandler {
	return &PatientHandler{service: svc, logger: logger}
}

// CreatePatientRequest is the JSON request body for registering a patient.
type CreatePatientRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=255"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"omitempty,max=50"`
	Address string `json:"address"`
}

// UpdatePatientRequest is the JSON request body for a partial patient update.
type UpdatePatientRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=255"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=50"`
	Address *string `json:"address"`
}

// List handles GET /api/patients
func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	patients, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, patients)
}

// Create handles POST /api/patients
func (h *PatientHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req CreatePatientRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	patient, err := h.service.Create(r.Context(), service.CreatePatientInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, patient)
}

// Update handles PUT /api/patients/{id}
func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit
	id := chi.URLParam(r, "id")

	var req UpdatePatientRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	patient, err := h.service.Update(r.Context(), id, service.UpdatePatientInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, patient)
}

// Delete handles DELETE /api/patients/{id}
func (h *PatientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"id": id})
}
