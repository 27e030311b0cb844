package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/domain"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/repository"
	apperrors "github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/errors"
)

func newPatientTestFixture(t *testing.T) (*PatientRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := NewPatientRepository(mock)
	return repo, mock
}

func samplePatient() *domain.Patient {
	return &domain.Patient{
		ID:        "p-1",
		Name:      "John Doe",
		Email:     "john@example.com",
		Phone:     "+251911000000",
		Address:   "Addis Ababa",
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func patientColumns() []string {
	return []string{"id", "name", "email", "phone", "address", "created_at"}
}

func patientRow(p *domain.Patient) *pgxmock.Rows {
	return pgxmock.NewRows(patientColumns()).AddRow(
		p.ID, p.Name, p.Email, p.Phone, p.Address, p.CreatedAt,
	)
}

func TestPatientRepository_Create_Success(t *testing.T) {
	repo, mock := newPatientTestFixture(t)
	defer mock.Close()

	p := samplePatient()

	mock.ExpectExec("INSERT INTO patients").
		WithArgs(p.ID, p.Name, p.Email, p.Phone, p.Address, p.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), p)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newPatientTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM patients WHERE id =").
		WithArgs("p-missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "p-missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientRepository_List_Success(t *testing.T) {
	repo, mock := newPatientTestFixture(t)
	defer mock.Close()

	p := samplePatient()

	mock.ExpectQuery("SELECT .+ FROM patients ORDER BY created_at").
		WillReturnRows(patientRow(p))

	patients, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, p.Name, patients[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientRepository_Update_CoalescesNilFields(t *testing.T) {
	repo, mock := newPatientTestFixture(t)
	defer mock.Close()

	p := samplePatient()
	newPhone := "+251922000000"

	mock.ExpectQuery("UPDATE patients").
		WithArgs((*string)(nil), (*string)(nil), &newPhone, (*string)(nil), p.ID).
		WillReturnRows(pgxmock.NewRows(patientColumns()).AddRow(
			p.ID, p.Name, p.Email, newPhone, p.Address, p.CreatedAt,
		))

	got, err := repo.Update(context.Background(), p.ID, repository.PatientUpdate{Phone: &newPhone})
	require.NoError(t, err)
	assert.Equal(t, newPhone, got.Phone)
	assert.Equal(t, p.Name, got.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientRepository_Update_NotFound(t *testing.T) {
	repo, mock := newPatientTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("UPDATE patients").
		WithArgs((*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil), "p-missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.Update(context.Background(), "p-missing", repository.PatientUpdate{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientRepository_Delete_Success(t *testing.T) {
	repo, mock := newPatientTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM patients").
		WithArgs("p-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.Delete(context.Background(), "p-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newPatientTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM patients").
		WithArgs("p-missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "p-missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
