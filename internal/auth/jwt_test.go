package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/domain"
)

const testSecret = "test-secret-key-for-unit-tests"

func testUser() *domain.User {
	return &domain.User{
		ID:    "user-1",
		Email: "doc@example.com",
		Name:  "Dr. Smith",
		Role:  domain.RoleDoctor,
	}
}

func TestTokenManager_IssueAndVerify(t *testing.T) {
	m := NewTokenManager(testSecret)

	token, err := m.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "doc@example.com", claims.Email)
	assert.Equal(t, domain.RoleDoctor, claims.Role)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestTokenManager_TokenExpiryIsOneHour(t *testing.T) {
	m := NewTokenManager(testSecret)

	token, err := m.Issue(testUser())
	require.NoError(t, err)

	claims, err := m.Verify(token)
	require.NoError(t, err)

	ttl := claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time)
	assert.Equal(t, TokenTTL, ttl)
}

func TestTokenManager_RejectsExpiredToken(t *testing.T) {
	m := NewTokenManager(testSecret)

	now := time.Now().UTC()
	claims := &Claims{
		UserID: "user-1",
		Email:  "doc@example.com",
		Role:   domain.RoleDoctor,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
			Issuer:    issuer,
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = m.Verify(expired)
	assert.Error(t, err)
}

func TestTokenManager_RejectsWrongKey(t *testing.T) {
	issuing := NewTokenManager(testSecret)
	verifying := NewTokenManager("a-completely-different-secret")

	token, err := issuing.Issue(testUser())
	require.NoError(t, err)

	_, err = verifying.Verify(token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsTamperedToken(t *testing.T) {
	m := NewTokenManager(testSecret)

	token, err := m.Issue(testUser())
	require.NoError(t, err)

	tampered := token[:len(token)-4] + "xxxx"
	_, err = m.Verify(tampered)
	assert.Error(t, err)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	m := NewTokenManager(testSecret)

	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := m.Verify(tok)
		assert.Error(t, err, "token %q should be rejected", tok)
	}
}
