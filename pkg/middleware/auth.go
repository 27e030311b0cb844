package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	apperrors "github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/errors"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/logger"
)

type contextKeyType string

const identityKey contextKeyType = "identity"

// Identity is the verified, request-scoped result of authenticating a bearer
// token: the claims the token carried at mint time.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// HasRole reports whether the identity's role is one of the allowed roles.
func (id Identity) HasRole(allowed ...string) bool {
	for _, role := range allowed {
		if id.Role == role {
			return true
		}
	}
	return false
}

// TokenVerifier validates a raw bearer token and returns the identity it
// carries. Verification is a pure function of (token, current time, signing
// key); implementations must not touch storage.
type TokenVerifier func(token string) (*Identity, error)

// Authenticate middleware extracts the bearer token from the Authorization
// header, verifies it, and injects the resulting Identity into the request
// context. The three failure modes are reported with distinct codes: missing
// header, malformed header, and invalid or expired token.
func Authenticate(verify TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAuthError(w, apperrors.MissingCredential())
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				writeAuthError(w, apperrors.MalformedCredential())
				return
			}

			identity, err := verify(parts[1])
			if err != nil {
				writeAuthError(w, apperrors.InvalidOrExpiredToken())
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, *identity)
			ctx = logger.WithUserID(ctx, identity.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole middleware checks that the authenticated identity has one of the
// required roles. A failed check is always a visible 403, never a silent no-op.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				writeAuthError(w, apperrors.MissingCredential())
				return
			}
			if !identity.HasRole(roles...) {
				writeAuthError(w, apperrors.Forbidden("insufficient permissions"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IdentityFromContext extracts the authenticated identity from the request context.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

func writeAuthError(w http.ResponseWriter, err *apperrors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    err.Code,
			"message": err.Message,
		},
	})
}
