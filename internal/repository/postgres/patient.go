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

// PatientRepository implements repository.PatientRepository using PostgreSQL.
type PatientRepository struct {
	db DB
}

// NewPatientRepository creates a new PostgreSQL-backed patient repository.
func NewPatientRepository(db DB) *PatientRepository {
	return &PatientRepository{db: db}
}

// Create inserts a new patient into the database.
func (r *PatientRepository) Create(ctx context.Context, p *domain.Patient) error {
	query := `
		INSERT INTO patients (id, name, email, phone, address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		p.ID,
		p.Name,
		p.Email,
		p.Phone,
		p.Address,
		p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert patient: %w", err)
	}

	return nil
}

// GetByID retrieves a patient by their ID.
func (r *PatientRepository) GetByID(ctx context.Context, id string) (*domain.Patient, error) {
	query := `
		SELECT id, name, email, phone, address, created_at
		FROM patients
		WHERE id = $1`

	var p domain.Patient
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.Phone,
		&p.Address,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("patient", id)
		}
		return nil, fmt.Errorf("scan patient: %w", err)
	}

	return &p, nil
}

// List returns all patients ordered by creation time.
func (r *PatientRepository) List(ctx context.Context) ([]domain.Patient, error) {
	query := `
		SELECT id, name, email, phone, address, created_at
		FROM patients
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()

	var patients []domain.Patient
	for rows.Next() {
		var p domain.Patient
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Email,
			&p.Phone,
			&p.Address,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan patient row: %w", err)
		}
		patients = append(patients, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate patient rows: %w", err)
	}

	if patients == nil {
		patients = []domain.Patient{}
	}

	return patients, nil
}

// Update applies a partial update via COALESCE and returns the stored patient.
func (r *PatientRepository) Update(ctx context.Context, id string, update repository.PatientUpdate) (*domain.Patient, error) {
	query := `
		UPDATE patients
		SET name = COALESCE($1, name),
		    email = COALESCE($2, email),
		    phone = COALESCE($3, phone),
		    address = COALESCE($4, address)
		WHERE id = $5
		RETURNING id, name, email, phone, address, created_at`

	var p domain.Patient
	err := r.db.QueryRow(ctx, query,
		update.Name,
		update.Email,
		update.Phone,
		update.Address,
		id,
	).Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.Phone,
		&p.Address,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("patient", id)
		}
		return nil, fmt.Errorf("update patient: %w", err)
	}

	return &p, nil
}

// Delete removes a patient from the database by their ID.
func (r *PatientRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM patients WHERE id = $1`

	ct, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("patient", id)
	}

	return nil
}
