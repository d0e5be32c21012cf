package auth

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	pkgerrors "github.com/honeynil/TokenWalletPayments/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "super-secret-jwt-token"
	testIssuer = "https://project.supabase.co/auth/v1"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func userClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   "6c1e2f4e-4a4e-4d8e-9a57-0e9f1c2b3a4d",
		"email": "buyer@example.com",
		"role":  "authenticated",
		"iss":   testIssuer,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
}

func TestSupabaseAuthenticator_Authenticate(t *testing.T) {
	ctx := context.Background()
	anonKey := signToken(t, testSecret, jwt.MapClaims{
		"role": "anon",
		"iss":  "supabase",
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	})
	authenticator := NewSupabaseAuthenticator(testSecret, testIssuer, anonKey)

	t.Run("valid user token", func(t *testing.T) {
		identity, err := authenticator.Authenticate(ctx, signToken(t, testSecret, userClaims()))
		require.NoError(t, err)
		assert.Equal(t, "6c1e2f4e-4a4e-4d8e-9a57-0e9f1c2b3a4d", identity.ID)
		assert.Equal(t, "buyer@example.com", identity.Email)
		assert.Equal(t, "authenticated", identity.Role)
		assert.Equal(t, "authenticated", identity.Claims["role"])
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := authenticator.Authenticate(ctx, "")
		assert.ErrorIs(t, err, pkgerrors.ErrMissingCredential)
	})

	t.Run("anon key", func(t *testing.T) {
		_, err := authenticator.Authenticate(ctx, anonKey)
		assert.ErrorIs(t, err, pkgerrors.ErrAuthFailure)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := authenticator.Authenticate(ctx, signToken(t, "other-secret", userClaims()))
		assert.ErrorIs(t, err, pkgerrors.ErrAuthFailure)
	})

	t.Run("expired", func(t *testing.T) {
		claims := userClaims()
		claims["exp"] = time.Now().Add(-time.Minute).Unix()
		_, err := authenticator.Authenticate(ctx, signToken(t, testSecret, claims))
		assert.ErrorIs(t, err, pkgerrors.ErrAuthFailure)
	})

	t.Run("foreign issuer", func(t *testing.T) {
		claims := userClaims()
		claims["iss"] = "https://other.supabase.co/auth/v1"
		_, err := authenticator.Authenticate(ctx, signToken(t, testSecret, claims))
		assert.ErrorIs(t, err, pkgerrors.ErrAuthFailure)
	})

	t.Run("missing subject", func(t *testing.T) {
		claims := userClaims()
		delete(claims, "sub")
		_, err := authenticator.Authenticate(ctx, signToken(t, testSecret, claims))
		assert.ErrorIs(t, err, pkgerrors.ErrAuthFailure)
	})

	t.Run("anon role", func(t *testing.T) {
		claims := userClaims()
		claims["role"] = "anon"
		_, err := authenticator.Authenticate(ctx, signToken(t, testSecret, claims))
		assert.ErrorIs(t, err, pkgerrors.ErrAuthFailure)
	})
}

func TestBearerToken(t *testing.T) {
	r := httptest.NewRequest("POST", "/verify-payment", nil)
	_, ok := BearerToken(r)
	assert.False(t, ok)

	r.Header.Set("Authorization", "Bearer abc.def.ghi")
	token, ok := BearerToken(r)
	assert.True(t, ok)
	assert.Equal(t, "abc.def.ghi", token)
}

func TestIdentityContext(t *testing.T) {
	assert.Nil(t, IdentityFromContext(context.Background()))
}
