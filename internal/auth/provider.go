package auth

import (
	"errors"
	"time"
)

// Identity is the authenticated caller extracted from a token
type Identity struct {
	UserID    int64     `json:"user_id"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Provider validates bearer tokens. Token issuance belongs to the identity
// system; this service only needs validation plus an issuer for tooling
// and tests.
type Provider interface {
	Validate(token string) (*Identity, error)
}

var (
	// ErrInvalidToken is returned for malformed or tampered tokens
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned when the token's expiry has passed
	ErrTokenExpired = errors.New("token expired")
)
