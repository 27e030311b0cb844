package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/domain"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/repository"
	apperrors "github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/errors"
)

// --- Mock Record Repository ---

type mockRecordRepository struct {
	mock.Mock
}

func (m *mockRecordRepository) Create(ctx context.Context, r *domain.Record) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *mockRecordRepository) GetByID(ctx context.Context, id string) (*domain.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Record), args.Error(1)
}

func (m *mockRecordRepository) List(ctx context.Context) ([]domain.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}

func (m *mockRecordRepository) Update(ctx context.Context, id string, update repository.RecordUpdate) (*domain.Record, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Record), args.Error(1)
}

func (m *mockRecordRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Tests ---

func TestRecordService_Create_RequiresPatientID(t *testing.T) {
	repo := new(mockRecordRepository)
	svc := NewRecordService(repo, newTestLogger())

	_, err := svc.Create(context.Background(), CreateRecordInput{Diagnosis: "flu"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordService_Create_Success(t *testing.T) {
	repo := new(mockRecordRepository)
	svc := NewRecordService(repo, newTestLogger())

	repo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Record) bool {
		return r.ID != "" && r.PatientID == "p-1"
	})).Return(nil)

	record, err := svc.Create(context.Background(), CreateRecordInput{
		PatientID: "p-1",
		Diagnosis: "flu",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	repo.AssertExpectations(t)
}

func TestRecordService_Update_PartialFields(t *testing.T) {
	repo := new(mockRecordRepository)
	svc := NewRecordService(repo, newTestLogger())

	prescription := "rest and fluids"
	stored := &domain.Record{ID: "r-1", PatientID: "p-1", Prescription: prescription}

	repo.On("Update", mock.Anything, "r-1", mock.MatchedBy(func(u repository.RecordUpdate) bool {
		return u.Prescription != nil && u.Details == nil && u.Diagnosis == nil
	})).Return(stored, nil)

	got, err := svc.Update(context.Background(), "r-1", UpdateRecordInput{Prescription: &prescription})
	require.NoError(t, err)
	assert.Equal(t, prescription, got.Prescription)
	repo.AssertExpectations(t)
}

func TestRecordService_Delete_NotFound(t *testing.T) {
	repo := new(mockRecordRepository)
	svc := NewRecordService(repo, newTestLogger())

	repo.On("Delete", mock.Anything, "r-missing").Return(apperrors.NotFound("record", "r-missing"))

	err := svc.Delete(context.Background(), "r-missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
