package repository

import (
	"context"
	"time"

	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/domain"
)

// UserUpdate carries the optional profile fields for a partial user update.
// Nil fields keep their stored value.
type UserUpdate struct {
	Name         *string
	Email        *string
	PasswordHash *string
}

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create inserts a new user into the store.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique identifier.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns all users.
	List(ctx context.Context) ([]domain.User, error)

	// UpdateProfile applies a partial update and returns the stored user.
	UpdateProfile(ctx context.Context, id string, update UserUpdate) (*domain.User, error)
}

// PatientUpdate carries the optional fields for a partial patient update.
type PatientUpdate struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
}

// PatientRepository defines the interface for patient persistence operations.
type PatientRepository interface {
	// Create inserts a new patient into the store.
	Create(ctx context.Context, patient *domain.Patient) error

	// GetByID retrieves a patient by their unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Patient, error)

	// List returns all patients.
	List(ctx context.Context) ([]domain.Patient, error)

	// Update applies a partial update and returns the stored patient.
	Update(ctx context.Context, id string, update PatientUpdate) (*domain.Patient, error)

	// Delete removes a patient from the store by their identifier.
	Delete(ctx context.Context, id string) error
}

// AppointmentUpdate carries the optional fields for a partial appointment update.
type AppointmentUpdate struct {
	Status *string
	Date   *time.Time
	Reason *string
}

// AppointmentRepository defines the interface for appointment persistence operations.
type AppointmentRepository interface {
	// Create inserts a new appointment into the store.
	Create(ctx context.Context, appointment *domain.Appointment) error

	// GetByID retrieves an appointment by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)

	// List returns all appointments.
	List(ctx context.Context) ([]domain.Appointment, error)

	// Update applies a partial update and returns the stored appointment.
	Update(ctx context.Context, id string, update AppointmentUpdate) (*domain.Appointment, error)

	// Delete removes an appointment from the store by its identifier.
	Delete(ctx context.Context, id string) error
}

// RecordUpdate carries the optional fields for a partial medical record update.
type RecordUpdate struct {
	Details      *string
	Diagnosis    *string
	Prescription *string
}

// RecordRepository defines the interface for medical record persistence operations.
type RecordRepository interface {
	// Create inserts a new medical record into the store.
	Create(ctx context.Context, record *domain.Record) error

	// GetByID retrieves a medical record by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Record, error)

	// List returns all medical records.
	List(ctx context.Context) ([]domain.Record, error)

	// Update applies a partial update and returns the stored record.
	Update(ctx context.Context, id string, update RecordUpdate) (*domain.Record, error)

	// Delete removes a medical record from the store by its identifier.
	Delete(ctx context.Context, id string) error
}
