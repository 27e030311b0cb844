package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/domain"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/repository"
	apperrors "github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/errors"
)

// PatientService implements the business logic for patient records.
type PatientService struct {
	patientRepo repository.PatientRepository
	logger      *slog.Logger
}

// NewPatientService creates a new patient service.
func NewPatientService(patientRepo repository.PatientRepository, logger *slog.Logger) *PatientService {
	return &PatientService{
		patientRepo: patientRepo,
		logger:      logger,
	}
}

// CreatePatientInput holds the parameters for registering a new patient.
type CreatePatientInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// UpdatePatientInput holds the optional fields for a partial patient update.
type UpdatePatientInput struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
}

// Create registers a new patient.
func (s *PatientService) Create(ctx context.Context, input CreatePatientInput) (*domain.Patient, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("name is required")
	}

	patient := &domain.Patient{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Address:   input.Address,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}

	s.logger.InfoContext(ctx, "patient created",
		slog.String("patient_id", patient.ID),
	)

	return patient, nil
}

// List returns all patients.
func (s *PatientService) List(ctx context.Context) ([]domain.Patient, error) {
	patients, err := s.patientRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return patients, nil
}

// Update applies a partial update to a patient.
func (s *PatientService) Update(ctx context.Context, id string, input UpdatePatientInput) (*domain.Patient, error) {
	if input.Name != nil && *input.Name == "" {
		return nil, apperrors.InvalidInput("name must not be empty")
	}

	patient, err := s.patientRepo.Update(ctx, id, repository.PatientUpdate{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
	})
	if err != nil {
		return nil, fmt.Errorf("update patient: %w", err)
	}

	s.logger.InfoContext(ctx, "patient updated",
		slog.String("patient_id", id),
	)

	return patient, nil
}

// Delete removes a patient by ID.
func (s *PatientService) Delete(ctx context.Context, id string) error {
	if err := s.patientRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}

	s.logger.InfoContext(ctx, "patient deleted",
		slog.String("patient_id", id),
	)

	return nil
}
