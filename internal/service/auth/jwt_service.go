package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/taskhub/taskhub-api/internal/domain"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT for an already-authenticated user.
	// The caller must have verified credentials first; this method never
	// validates them. The token embeds the user's email, username, and - as
	// the mandatory identity claim - the user's unique ID, which is the sole
	// mechanism by which later requests recover caller identity.
	// Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, user *domain.User) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// claims. Returns the claims containing user information if the token is
	// valid, or an error if validation fails (expired, invalid signature,
	// wrong algorithm, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the custom claims structure for the JWT tokens.
// It extends standard JWT registered claims with application-specific fields.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	// This claim is mandatory: the auth middleware derives caller identity
	// from it on every protected request.
	UserID uuid.UUID `json:"uid"`

	// Username is the display name embedded at issuance.
	Username string `json:"name,omitempty"`

	// Email of the user at issuance.
	Email string `json:"email,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
