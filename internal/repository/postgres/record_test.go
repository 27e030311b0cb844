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

func newRecordTestFixture(t *testing.T) (*RecordRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := NewRecordRepository(mock)
	return repo, mock
}

func sampleRecord() *domain.Record {
	return &domain.Record{
		ID:           "r-1",
		PatientID:    "p-1",
		Details:      "routine visit",
		Diagnosis:    "healthy",
		Prescription: "none",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

func recordColumns() []string {
	return []string{"id", "patient_id", "details", "diagnosis", "prescription", "created_at"}
}

func TestRecordRepository_Create_Success(t *testing.T) {
	repo, mock := newRecordTestFixture(t)
	defer mock.Close()

	rec := sampleRecord()

	mock.ExpectExec("INSERT INTO records").
		WithArgs(rec.ID, rec.PatientID, rec.Details, rec.Diagnosis, rec.Prescription, rec.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), rec)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_List_Success(t *testing.T) {
	repo, mock := newRecordTestFixture(t)
	defer mock.Close()

	rec := sampleRecord()

	mock.ExpectQuery("SELECT .+ FROM records ORDER BY created_at").
		WillReturnRows(pgxmock.NewRows(recordColumns()).AddRow(
			rec.ID, rec.PatientID, rec.Details, rec.Diagnosis, rec.Prescription, rec.CreatedAt,
		))

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, rec.Diagnosis, records[0].Diagnosis)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_Update_DiagnosisOnly(t *testing.T) {
	repo, mock := newRecordTestFixture(t)
	defer mock.Close()

	rec := sampleRecord()
	diagnosis := "seasonal flu"

	mock.ExpectQuery("UPDATE records").
		WithArgs((*string)(nil), &diagnosis, (*string)(nil), rec.ID).
		WillReturnRows(pgxmock.NewRows(recordColumns()).AddRow(
			rec.ID, rec.PatientID, rec.Details, diagnosis, rec.Prescription, rec.CreatedAt,
		))

	got, err := repo.Update(context.Background(), rec.ID, repository.RecordUpdate{Diagnosis: &diagnosis})
	require.NoError(t, err)
	assert.Equal(t, diagnosis, got.Diagnosis)
	assert.Equal(t, rec.Details, got.Details)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_Update_NotFound(t *testing.T) {
	repo, mock := newRecordTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("UPDATE records").
		WithArgs((*string)(nil), (*string)(nil), (*string)(nil), "r-missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.Update(context.Background(), "r-missing", repository.RecordUpdate{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newRecordTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM records").
		WithArgs("r-missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "r-missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
