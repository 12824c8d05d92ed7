package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenPair is what a successful login, registration or refresh hands back.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenClaims identifies the user a token was issued to.
type TokenClaims struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// TokenService issues and checks the tokens that scope every request to one user.
type TokenService interface {
	// GenerateTokenPair issues a new pair. rememberMe selects the longer refresh lifetime.
	GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string, rememberMe bool) (*TokenPair, error)

	// ValidateAccessToken checks signature and expiry. Expired tokens fail with ErrExpiredToken.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)

	// ValidateRefreshToken checks signature and expiry without consulting revocations.
	ValidateRefreshToken(ctx context.Context, token string) (*TokenClaims, error)

	// InvalidateRefreshToken revokes a refresh token on rotation or logout.
	InvalidateRefreshToken(ctx context.Context, token string) error

	// IsRefreshTokenValid reports whether the refresh token was issued here and not revoked.
	IsRefreshTokenValid(ctx context.Context, token string) (bool, error)
}
