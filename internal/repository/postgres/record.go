package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/domain"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/repository"
	apperrors "github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/errors"
)

// RecordRepository implements repository.RecordRepository using PostgreSQL.
type RecordRepository struct {
	db DB
}

// NewRecordRepository creates a new PostgreSQL-backed medical record repository.
func NewRecordRepository(db DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// Create inserts a new medical record into the database.
func (r *RecordRepository) Create(ctx context.Context, rec *domain.Record) error {
	query := `
		INSERT INTO records (id, patient_id, details, diagnosis, prescription, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		rec.ID,
		rec.PatientID,
		rec.Details,
		rec.Diagnosis,
		rec.Prescription,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}

	return nil
}

// GetByID retrieves a medical record by its ID.
func (r *RecordRepository) GetByID(ctx context.Context, id string) (*domain.Record, error) {
	query := `
		SELECT id, patient_id, details, diagnosis, prescription, created_at
		FROM records
		WHERE id = $1`

	var rec domain.Record
	err := r.db.QueryRow(ctx, query, id).Scan(
		&rec.ID,
		&rec.PatientID,
		&rec.Details,
		&rec.Diagnosis,
		&rec.Prescription,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("record", id)
		}
		return nil, fmt.Errorf("scan record: %w", err)
	}

	return &rec, nil
}

// List returns all medical records ordered by creation time.
func (r *RecordRepository) List(ctx context.Context) ([]domain.Record, error) {
	query := `
		SELECT id, patient_id, details, diagnosis, prescription, created_at
		FROM records
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		var rec domain.Record
		if err := rows.Scan(
			&rec.ID,
			&rec.PatientID,
			&rec.Details,
			&rec.Diagnosis,
			&rec.Prescription,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan record row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate record rows: %w", err)
	}

	if records == nil {
		records = []domain.Record{}
	}

	return records, nil
}

// Update applies a partial update via COALESCE and returns the stored record.
func (r *RecordRepository) Update(ctx context.Context, id string, update repository.RecordUpdate) (*domain.Record, error) {
	query := `
		UPDATE records
		SET details = COALESCE($1, details),
		    diagnosis = COALESCE($2, diagnosis),
		    prescription = COALESCE($3, prescription)
		WHERE id = $4
		RETURNING id, patient_id, details, diagnosis, prescription, created_at`

	var rec domain.Record
	err := r.db.QueryRow(ctx, query,
		update.Details,
		update.Diagnosis,
		update.Prescription,
		id,
	).Scan(
		&rec.ID,
		&rec.PatientID,
		&rec.Details,
		&rec.Diagnosis,
		&rec.Prescription,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("record", id)
		}
		return nil, fmt.Errorf("update record: %w", err)
	}

	return &rec, nil
}

// Delete removes a medical record from the database by its ID.
func (r *RecordRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM records WHERE id = $1`

	ct, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("record", id)
	}

	return nil
}
