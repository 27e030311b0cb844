package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/service"
	apperrors "github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/errors"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/httputil"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/validator"
)

// AppointmentHandler handles HTTP requests for appointments.
type AppointmentHandler struct {
	service *service.AppointmentService
	logger  *slog.Logger
}

// NewAppointmentHandler creates a new appointment HTTP handler.
func NewAppointmentHandler(svc *service.AppointmentService, logger *slog.Logger) *AppointmentHandler {
	return &AppointmentHandler{service: svc, logger: logger}
}

// dateFormats are the accepted layouts for appointment dates, most specific first.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateFormats {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// CreateAppointmentRequest is the JSON request body for booking an appointment.
// The patient and doctor IDs are accepted in both camelCase and snake_case.
type CreateAppointmentRequest struct {
	PatientID      string `json:"patientId"`
	PatientIDSnake string `json:"patient_id"`
	DoctorID       string `json:"doctorId"`
	DoctorIDSnake  string `json:"doctor_id"`
	Date           string `json:"date" validate:"required"`
	Reason         string `json:"reason"`
	Status         string `json:"status" validate:"omitempty,oneof=scheduled completed cancelled"`
}

// UpdateAppointmentRequest is the JSON request body for a partial appointment update.
type UpdateAppointmentRequest struct {
	Status *string `json:"status" validate:"omitempty,oneof=scheduled completed cancelled"`
	Date   *string `json:"date"`
	Reason *string `json:"reason"`
}

// List handles GET /api/appointments
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, appointments)
}

// Create handles POST /api/appointments
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req CreateAppointmentRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	patientID := req.PatientID
	if patientID == "" {
		patientID = req.PatientIDSnake
	}
	doctorID := req.DoctorID
	if doctorID == "" {
		doctorID = req.DoctorIDSnake
	}

	date, err := parseDate(req.Date)
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("date must be a valid timestamp"), h.logger)
		return
	}

	appointment, err := h.service.Create(r.Context(), service.CreateAppointmentInput{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      date,
		Reason:    req.Reason,
		Status:    req.Status,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, appointment)
}

// Update handles PUT /api/appointments/{id}
func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit
	id := chi.URLParam(r, "id")

	var req UpdateAppointmentRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input := service.UpdateAppointmentInput{
		Status: req.Status,
		Reason: req.Reason,
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			httputil.WriteError(w, r, apperrors.InvalidInput("date must be a valid timestamp"), h.logger)
			return
		}
		input.Date = &date
	}

	appointment, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, appointment)
}

// Delete handles DELETE /api/appointments/{id}
func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"id": id})
}
