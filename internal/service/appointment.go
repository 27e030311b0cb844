package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/domain"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/event"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/repository"
	apperrors "github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/errors"
)

// AppointmentService implements the business logic for appointments.
type AppointmentService struct {
	appointmentRepo repository.AppointmentRepository
	producer        *event.Producer
	logger          *slog.Logger
}

// NewAppointmentService creates a new appointment service.
func NewAppointmentService(
	appointmentRepo repository.AppointmentRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		producer:        producer,
		logger:          logger,
	}
}

// CreateAppointmentInput holds the parameters for booking an appointment.
type CreateAppointmentInput struct {
	PatientID string
	DoctorID  string
	Date      time.Time
	Reason    string
	Status    string
}

// UpdateAppointmentInput holds the optional fields for a partial appointment update.
type UpdateAppointmentInput struct {
	Status *string
	Date   *time.Time
	Reason *string
}

// Create books a new appointment. An omitted status defaults to scheduled.
func (s *AppointmentService) Create(ctx context.Context, input CreateAppointmentInput) (*domain.Appointment, error) {
	if input.PatientID == "" {
		return nil, apperrors.InvalidInput("patient id is required")
	}
	if input.DoctorID == "" {
		return nil, apperrors.InvalidInput("doctor id is required")
	}
	if input.Date.IsZero() {
		return nil, apperrors.InvalidInput("date is required")
	}

	status := input.Status
	if status == "" {
		status = domain.AppointmentScheduled
	}

	appointment := &domain.Appointment{
		ID:        uuid.New().String(),
		PatientID: input.PatientID,
		DoctorID:  input.DoctorID,
		Date:      input.Date,
		Reason:    input.Reason,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	// Publish booking event (non-blocking on failure).
	if err := s.producer.PublishAppointmentCreated(ctx, appointment); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish appointment.created event",
			slog.String("appointment_id", appointment.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "appointment created",
		slog.String("appointment_id", appointment.ID),
		slog.String("patient_id", appointment.PatientID),
	)

	return appointment, nil
}

// List returns all appointments.
func (s *AppointmentService) List(ctx context.Context) ([]domain.Appointment, error) {
	appointments, err := s.appointmentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appointments, nil
}

// Update applies a partial update to an appointment.
func (s *AppointmentService) Update(ctx context.Context, id string, input UpdateAppointmentInput) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.Update(ctx, id, repository.AppointmentUpdate{
		Status: input.Status,
		Date:   input.Date,
		Reason: input.Reason,
	})
	if err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}

	s.logger.InfoContext(ctx, "appointment updated",
		slog.String("appointment_id", id),
	)

	return appointment, nil
}

// Delete removes an appointment by ID.
func (s *AppointmentService) Delete(ctx context.Context, id string) error {
	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}

	s.logger.InfoContext(ctx, "appointment deleted",
		slog.String("appointment_id", id),
	)

	return nil
}
