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

// RecordService implements the business logic for medical records.
type RecordService struct {
	recordRepo repository.RecordRepository
	logger     *slog.Logger
}

// NewRecordService creates a new medical record service.
func NewRecordService(recordRepo repository.RecordRepository, logger *slog.Logger) *RecordService {
	return &RecordService{
		recordRepo: recordRepo,
		logger:     logger,
	}
}

// CreateRecordInput holds the parameters for adding a medical record.
type CreateRecordInput struct {
	PatientID    string
	Details      string
	Diagnosis    string
	Prescription string
}

// UpdateRecordInput holds the optional fields for a partial record update.
type UpdateRecordInput struct {
	Details      *string
	Diagnosis    *string
	Prescription *string
}

// Create adds a new medical record for a patient.
func (s *RecordService) Create(ctx context.Context, input CreateRecordInput) (*domain.Record, error) {
	if input.PatientID == "" {
		return nil, apperrors.InvalidInput("patient id is required")
	}

	record := &domain.Record{
		ID:           uuid.New().String(),
		PatientID:    input.PatientID,
		Details:      input.Details,
		Diagnosis:    input.Diagnosis,
		Prescription: input.Prescription,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.recordRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}

	s.logger.InfoContext(ctx, "medical record created",
		slog.String("record_id", record.ID),
		slog.String("patient_id", record.PatientID),
	)

	return record, nil
}

// List returns all medical records.
func (s *RecordService) List(ctx context.Context) ([]domain.Record, error) {
	records, err := s.recordRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

// Update applies a partial update to a medical record.
func (s *RecordService) Update(ctx context.Context, id string, input UpdateRecordInput) (*domain.Record, error) {
	record, err := s.recordRepo.Update(ctx, id, repository.RecordUpdate{
		Details:      input.Details,
		Diagnosis:    input.Diagnosis,
		Prescription: input.Prescription,
	})
	if err != nil {
		return nil, fmt.Errorf("update record: %w", err)
	}

	s.logger.InfoContext(ctx, "medical record updated",
		slog.String("record_id", id),
	)

	return record, nil
}

// Delete removes a medical record by ID.
func (s *RecordService) Delete(ctx context.Context, id string) error {
	if err := s.recordRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	s.logger.InfoContext(ctx, "medical record deleted",
		slog.String("record_id", id),
	)

	return nil
}
