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

// AppointmentRepository implements repository.AppointmentRepository using PostgreSQL.
type AppointmentRepository struct {
	db DB
}

// NewAppointmentRepository creates a new PostgreSQL-backed appointment repository.
func NewAppointmentRepository(db DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// Create inserts a new appointment into the database.
func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	query := `
		INSERT INTO appointments (id, patient_id, doctor_id, date, reason, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		a.ID,
		a.PatientID,
		a.DoctorID,
		a.Date,
		a.Reason,
		a.Status,
		a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}

	return nil
}

// GetByID retrieves an appointment by its ID.
func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	query := `
		SELECT id, patient_id, doctor_id, date, reason, status, created_at
		FROM appointments
		WHERE id = $1`

	var a domain.Appointment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.PatientID,
		&a.DoctorID,
		&a.Date,
		&a.Reason,
		&a.Status,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("appointment", id)
		}
		return nil, fmt.Errorf("scan appointment: %w", err)
	}

	return &a, nil
}

// List returns all appointments ordered by date.
func (r *AppointmentRepository) List(ctx context.Context) ([]domain.Appointment, error) {
	query := `
		SELECT id, patient_id, doctor_id, date, reason, status, created_at
		FROM appointments
		ORDER BY date`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var appointments []domain.Appointment
	for rows.Next() {
		var a domain.Appointment
		if err := rows.Scan(
			&a.ID,
			&a.PatientID,
			&a.DoctorID,
			&a.Date,
			&a.Reason,
			&a.Status,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan appointment row: %w", err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate appointment rows: %w", err)
	}

	if appointments == nil {
		appointments = []domain.Appointment{}
	}

	return appointments, nil
}

// Update applies a partial update via COALESCE and returns the stored appointment.
func (r *AppointmentRepository) Update(ctx context.Context, id string, update repository.AppointmentUpdate) (*domain.Appointment, error) {
	query := `
		UPDATE appointments
		SET status = COALESCE($1, status),
		    date = COALESCE($2, date),
		    reason = COALESCE($3, reason)
		WHERE id = $4
		RETURNING id, patient_id, doctor_id, date, reason, status, created_at`

	var a domain.Appointment
	err := r.db.QueryRow(ctx, query,
		update.Status,
		update.Date,
		update.Reason,
		id,
	).Scan(
		&a.ID,
		&a.PatientID,
		&a.DoctorID,
		&a.Date,
		&a.Reason,
		&a.Status,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("appointment", id)
		}
		return nil, fmt.Errorf("update appointment: %w", err)
	}

	return &a, nil
}

// Delete removes an appointment from the database by its ID.
func (r *AppointmentRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM appointments WHERE id = $1`

	ct, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("appointment", id)
	}

	return nil
}
