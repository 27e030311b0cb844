package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/auth"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/domain"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/event"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/repository"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/service"
	apperrors "github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/errors"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/health"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/httputil"
	pkgkafka "github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/kafka"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, id string, update repository.UserUpdate) (*domain.User, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockPatientRepo struct {
	mock.Mock
}

func (m *mockPatientRepo) Create(ctx context.Context, p *domain.Patient) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockPatientRepo) GetByID(ctx context.Context, id string) (*domain.Patient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Patient), args.Error(1)
}

func (m *mockPatientRepo) List(ctx context.Context) ([]domain.Patient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Patient), args.Error(1)
}

func (m *mockPatientRepo) Update(ctx context.Context, id string, update repository.PatientUpdate) (*domain.Patient, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Patient), args.Error(1)
}

func (m *mockPatientRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockAppointmentRepo struct {
	mock.Mock
}

func (m *mockAppointmentRepo) Create(ctx context.Context, a *domain.Appointment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockAppointmentRepo) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *mockAppointmentRepo) List(ctx context.Context) ([]domain.Appointment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *mockAppointmentRepo) Update(ctx context.Context, id string, update repository.AppointmentUpdate) (*domain.Appointment, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *mockAppointmentRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockRecordRepo struct {
	mock.Mock
}

func (m *mockRecordRepo) Create(ctx context.Context, r *domain.Record) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *mockRecordRepo) GetByID(ctx context.Context, id string) (*domain.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Record), args.Error(1)
}

func (m *mockRecordRepo) List(ctx context.Context) ([]domain.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}

func (m *mockRecordRepo) Update(ctx context.Context, id string, update repository.RecordUpdate) (*domain.Record, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Record), args.Error(1)
}

func (m *mockRecordRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ============================================================================
// Test Helpers
// ============================================================================

const routerTestSecret = "router-test-secret"

type routerFixture struct {
	router      http.Handler
	tokens      *auth.TokenManager
	userRepo    *mockUserRepo
	patientRepo *mockPatientRepo
	apptRepo    *mockAppointmentRepo
	recordRepo  *mockRecordRepo
}

func routerTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func routerTestEventProducer() *event.Producer {
	logger := routerTestLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:19092"})
	return event.NewProducer(pkgkafka.NewProducer(kafkaCfg, logger), logger)
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	logger := routerTestLogger()
	producer := routerTestEventProducer()
	tokens := auth.NewTokenManager(routerTestSecret)

	userRepo := new(mockUserRepo)
	patientRepo := new(mockPatientRepo)
	apptRepo := new(mockAppointmentRepo)
	recordRepo := new(mockRecordRepo)

	router := NewRouter(RouterDeps{
		AuthService:        service.NewAuthService(userRepo, tokens, producer, logger),
		PatientService:     service.NewPatientService(patientRepo, logger),
		AppointmentService: service.NewAppointmentService(apptRepo, producer, logger),
		RecordService:      service.NewRecordService(recordRepo, logger),
		TokenManager:       tokens,
		HealthHandler:      health.NewHandler(),
		Logger:             logger,
		CORS:               CORSConfig{Environment: "development"},
	})

	return &routerFixture{
		router:      router,
		tokens:      tokens,
		userRepo:    userRepo,
		patientRepo: patientRepo,
		apptRepo:    apptRepo,
		recordRepo:  recordRepo,
	}
}

func (f *routerFixture) tokenFor(t *testing.T, role string) string {
	t.Helper()
	token, err := f.tokens.Issue(&domain.User{
		ID:    "u-" + role,
		Email: role + "@example.com",
		Role:  role,
	})
	require.NoError(t, err)
	return token
}

func doJSON(f *routerFixture, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) httputil.ErrorBody {
	t.Helper()
	var body httputil.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.NotNil(t, body.Error)
	return body
}

// ============================================================================
// Auth endpoints
// ============================================================================

func TestRouter_Register_ReturnsUserAndToken(t *testing.T) {
	f := newRouterFixture(t)

	f.userRepo.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, apperrors.ErrNotFound)
	f.userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	rec := doJSON(f, http.MethodPost, "/api/register", "", map[string]string{
		"email":    "new@example.com",
		"name":     "New User",
		"password": "secret123",
	})

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		User  map[string]any `json:"user"`
		Token string         `json:"token"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "new@example.com", resp.User["email"])
	assert.Equal(t, "patient", resp.User["role"])
	assert.NotContains(t, resp.User, "password")
	assert.NotEmpty(t, resp.Token)
}

func TestRouter_Register_MissingFields(t *testing.T) {
	f := newRouterFixture(t)

	rec := doJSON(f, http.MethodPost, "/api/register", "", map[string]string{
		"email": "new@example.com",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorBody(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
}

func TestRouter_Login_InvalidCredentials(t *testing.T) {
	f := newRouterFixture(t)

	f.userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, apperrors.ErrNotFound)

	rec := doJSON(f, http.MethodPost, "/api/login", "", map[string]string{
		"email":    "ghost@example.com",
		"password": "whatever",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeErrorBody(t, rec)
	assert.Equal(t, "INVALID_CREDENTIALS", body.Error.Code)
}

func TestRouter_Login_Success(t *testing.T) {
	f := newRouterFixture(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{
		ID:           "u-1",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
		Name:         "Alice",
		Role:         domain.RolePatient,
	}
	f.userRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(user, nil)

	rec := doJSON(f, http.MethodPost, "/api/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "correct",
	})

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		User  map[string]any `json:"user"`
		Token string         `json:"token"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "u-1", resp.User["id"])
	assert.NotEmpty(t, resp.Token)
}

// ============================================================================
// Authentication and role gating
// ============================================================================

func TestRouter_MissingToken(t *testing.T) {
	f := newRouterFixture(t)

	rec := doJSON(f, http.MethodGet, "/api/patients", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeErrorBody(t, rec)
	assert.Equal(t, "MISSING_CREDENTIAL", body.Error.Code)
}

func TestRouter_MalformedAuthorizationHeader(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/patients", nil)
	req.Header.Set("Authorization", "Token abc123")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeErrorBody(t, rec)
	assert.Equal(t, "MALFORMED_CREDENTIAL", body.Error.Code)
}

func TestRouter_ExpiredOrInvalidToken(t *testing.T) {
	f := newRouterFixture(t)

	rec := doJSON(f, http.MethodGet, "/api/patients", "not-a-real-token", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeErrorBody(t, rec)
	assert.Equal(t, "INVALID_OR_EXPIRED_TOKEN", body.Error.Code)
}

func TestRouter_PatientRoleCannotReadClinicalData(t *testing.T) {
	f := newRouterFixture(t)
	token := f.tokenFor(t, domain.RolePatient)

	for _, path := range []string{"/api/patients", "/api/records"} {
		rec := doJSON(f, http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code, "path %s", path)
		body := decodeErrorBody(t, rec)
		assert.Equal(t, "FORBIDDEN", body.Error.Code)
	}
}

func TestRouter_DoctorCanReadClinicalData(t *testing.T) {
	f := newRouterFixture(t)
	token := f.tokenFor(t, domain.RoleDoctor)

	f.patientRepo.On("List", mock.Anything).Return([]domain.Patient{}, nil)
	f.recordRepo.On("List", mock.Anything).Return([]domain.Record{}, nil)

	for _, path := range []string{"/api/patients", "/api/records"} {
		rec := doJSON(f, http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusOK, rec.Code, "path %s", path)
	}
}

func TestRouter_UserListIsAdminOnly(t *testing.T) {
	f := newRouterFixture(t)

	f.userRepo.On("List", mock.Anything).Return([]domain.User{{ID: "u-1"}}, nil)

	rec := doJSON(f, http.MethodGet, "/api/users", f.tokenFor(t, domain.RoleDoctor), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(f, http.MethodGet, "/api/users", f.tokenFor(t, domain.RoleAdmin), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_AppointmentsOpenToAnyAuthenticatedRole(t *testing.T) {
	f := newRouterFixture(t)

	f.apptRepo.On("List", mock.Anything).Return([]domain.Appointment{}, nil)

	for _, role := range domain.ValidRoles() {
		rec := doJSON(f, http.MethodGet, "/api/appointments", f.tokenFor(t, role), nil)
		assert.Equal(t, http.StatusOK, rec.Code, "role %s", role)
	}
}

func TestRouter_DeleteUserNotImplemented(t *testing.T) {
	f := newRouterFixture(t)

	rec := doJSON(f, http.MethodDelete, "/api/users/u-123", f.tokenFor(t, domain.RoleAdmin), nil)

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	body := decodeErrorBody(t, rec)
	assert.Equal(t, "UNSUPPORTED_OPERATION", body.Error.Code)
}

// ============================================================================
// Profile update
// ============================================================================

func TestRouter_UpdateProfile_ReturnsFreshToken(t *testing.T) {
	f := newRouterFixture(t)

	me := &domain.User{ID: "u-patient", Email: "renamed@example.com", Name: "Renamed", Role: domain.RolePatient}
	f.userRepo.On("UpdateProfile", mock.Anything, "u-patient", mock.Anything).Return(me, nil)

	rec := doJSON(f, http.MethodPut, "/api/users/profile", f.tokenFor(t, domain.RolePatient), map[string]string{
		"name": "Renamed",
	})

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		User  map[string]any `json:"user"`
		Token string         `json:"token"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Renamed", resp.User["name"])

	claims, err := f.tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "renamed@example.com", claims.Email)
}

// ============================================================================
// Appointments
// ============================================================================

func TestRouter_CreateAppointment_AcceptsSnakeAndCamelIDs(t *testing.T) {
	f := newRouterFixture(t)
	token := f.tokenFor(t, domain.RolePatient)

	f.apptRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Appointment) bool {
		return a.PatientID == "p-1" && a.DoctorID == "d-1" && a.Status == domain.AppointmentScheduled
	})).Return(nil).Twice()

	date := time.Now().Add(24 * time.Hour).Format(time.RFC3339)

	rec := doJSON(f, http.MethodPost, "/api/appointments", token, map[string]string{
		"patientId": "p-1",
		"doctorId":  "d-1",
		"date":      date,
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(f, http.MethodPost, "/api/appointments", token, map[string]string{
		"patient_id": "p-1",
		"doctor_id":  "d-1",
		"date":       date,
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	f.apptRepo.AssertExpectations(t)
}

func TestRouter_CreateAppointment_RejectsBadDate(t *testing.T) {
	f := newRouterFixture(t)

	rec := doJSON(f, http.MethodPost, "/api/appointments", f.tokenFor(t, domain.RolePatient), map[string]string{
		"patientId": "p-1",
		"doctorId":  "d-1",
		"date":      "next tuesday",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ============================================================================
// Content type and health
// ============================================================================

func TestRouter_RejectsNonJSONBody(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader([]byte("email=x")))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestRouter_HealthLive(t *testing.T) {
	f := newRouterFixture(t)

	rec := doJSON(f, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
