package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/service"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/httputil"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/validator"
)

// RecordHandler handles HTTP requests for medical records.
type RecordHandler struct {
	service *service.RecordService
	logger  *slog.Logger
}

// NewRecordHandler creates a new medical record HTTP handler.
func NewRecordHandler(svc *service.RecordService, logger *slog.Logger) *RecordHandler {
	return &RecordHandler{service: svc, logger: logger}
}

// CreateRecordRequest is the JSON request body for adding a medical record.
type CreateRecordRequest struct {
	PatientID    string `json:"patientId" validate:"required"`
	Details      string `json:"details"`
	Diagnosis    string `json:"diagnosis"`
	Prescription string `json:"prescription"`
}

// UpdateRecordRequest is the JSON request body for a partial record update.
type UpdateRecordRequest struct {
	Details      *string `json:"details"`
	Diagnosis    *string `json:"diagnosis"`
	Prescription *string `json:"prescription"`
}

// List handles GET /api/records
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, records)
}

// Create handles POST /api/records
func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req CreateRecordRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	record, err := h.service.Create(r.Context(), service.CreateRecordInput{
		PatientID:    req.PatientID,
		Details:      req.Details,
		Diagnosis:    req.Diagnosis,
		Prescription: req.Prescription,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, record)
}

// Update handles PUT /api/records/{id}
func (h *RecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit
	id := chi.URLParam(r, "id")

	var req UpdateRecordRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	record, err := h.service.Update(r.Context(), id, service.UpdateRecordInput{
		Details:      req.Details,
		Diagnosis:    req.Diagnosis,
		Prescription: req.Prescription,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, record)
}

// Delete handles DELETE /api/records/{id}
func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"id": id})
}
