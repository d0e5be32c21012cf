package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/golang-jwt/jwt/v5"
	"github.com/honeynil/TokenWalletPayments/internal/models"
	pkgerrors "github.com/honeynil/TokenWalletPayments/pkg/errors"
)

// Authenticator resolves a bearer token to the calling identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Identity, error)
}

// SupabaseAuthenticator verifies Supabase Auth access tokens locally with the project's
// JWT secret.
type SupabaseAuthenticator struct {
	secret  []byte
	issuer  string
	anonKey string
}

func NewSupabaseAuthenticator(jwtSecret, issuer, anonKey string) *SupabaseAuthenticator {
	return &SupabaseAuthenticator{
		secret:  []byte(jwtSecret),
		issuer:  issuer,
		anonKey: anonKey,
	}
}

func (a *SupabaseAuthenticator) Authenticate(ctx context.Context, token string) (*models.Identity, error) {
	if token == "" {
		return nil, pkgerrors.ErrMissingCredential
	}
	// The anon key is a valid project JWT but carries no user.
	if token == a.anonKey {
		slog.Warn("anon key presented as user token")
		return nil, pkgerrors.ErrAuthFailure
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Method.Alg())
		}
		return a.secret, nil
	}, opts...)
	if err != nil || !parsed.Valid {
		slog.Warn("invalid access token", "error", err)
		return nil, pkgerrors.ErrAuthFailure
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		slog.Warn("access token without subject")
		return nil, pkgerrors.ErrAuthFailure
	}

	role, _ := claims["role"].(string)
	if role == "anon" {
		slog.Warn("anonymous access token rejected", "sub", sub)
		return nil, pkgerrors.ErrAuthFailure
	}
	email, _ := claims["email"].(string)

	return &models.Identity{
		ID:     sub,
		Email:  email,
		Role:   role,
		Claims: claims,
	}, nil
}
