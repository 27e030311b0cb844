package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidRoles_ContainsAll(t *testing.T) {
	roles := ValidRoles()
	expected := []string{RolePatient, RoleDoctor, RoleAdmin}
	assert.ElementsMatch(t, expected, roles)
}

func TestIsValidRole_ValidRoles(t *testing.T) {
	for _, r := range ValidRoles() {
		assert.True(t, IsValidRole(r), "expected %q to be valid", r)
	}
}

func TestIsValidRole_Invalid(t *testing.T) {
	assert.False(t, IsValidRole("unknown"))
	assert.False(t, IsValidRole(""))
	assert.False(t, IsValidRole("ADMIN"))
	assert.False(t, IsValidRole("nurse"))
}

func TestUser_PasswordHashExcludedFromJSON(t *testing.T) {
	u := User{
		ID:           "user-1",
		Email:        "doc@example.com",
		PasswordHash: "$2a$10$secret",
		Name:         "Dr. Smith",
		Role:         RoleDoctor,
	}

	data, err := json.Marshal(u)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.NotContains(t, string(data), "secret")
	assert.NotContains(t, decoded, "password")
	assert.NotContains(t, decoded, "PasswordHash")
	assert.Equal(t, "doc@example.com", decoded["email"])
}

func TestAuthResult_Shape(t *testing.T) {
	ar := AuthResult{
		User:  &User{ID: "user-1", Email: "a@b.com", Role: RolePatient},
		Token: "token-123",
	}

	data, err := json.Marshal(ar)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Contains(t, decoded, "user")
	assert.Equal(t, "token-123", decoded["token"])
}

func TestAppointment_JSONFieldNames(t *testing.T) {
	a := Appointment{
		ID:        "appt-1",
		PatientID: "pat-1",
		DoctorID:  "doc-1",
		Date:      time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		Status:    AppointmentScheduled,
	}

	data, err := json.Marshal(a)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "pat-1", decoded["patientId"])
	assert.Equal(t, "doc-1", decoded["doctorId"])
	assert.Equal(t, "scheduled", decoded["status"])
}

func TestRecord_JSONFieldNames(t *testing.T) {
	r := Record{ID: "rec-1", PatientID: "pat-1", Diagnosis: "flu"}

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "pat-1", decoded["patientId"])
	assert.Equal(t, "flu", decoded["diagnosis"])
}
