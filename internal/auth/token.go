package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// HMACProvider validates opaque HMAC-SHA256 signed tokens of the form
// base64url(payload).base64url(signature).
type HMACProvider struct {
	secret []byte
	now    func() time.Time
}

type tokenPayload struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	Exp    int64  `json:"exp"`
}

// NewHMACProvider creates a provider signing with the given secret
func NewHMACProvider(secret string) *HMACProvider {
	return &HMACProvider{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Issue creates a signed token for the given identity
func (p *HMACProvider) Issue(userID int64, role string, ttl time.Duration) (string, error) {
	payload, err := json.Marshal(tokenPayload{
		UserID: userID,
		Role:   role,
		Exp:    p.now().Add(ttl).Unix(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode token payload: %w", err)
	}

	encoded := base64.RawURLEncoding.EncodeToString(payload)
	return encoded + "." + p.sign(encoded), nil
}

// Validate checks signature and expiry and returns the embedded identity
func (p *HMACProvider) Validate(token string) (*Identity, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		return nil, ErrInvalidToken
	}

	if !hmac.Equal([]byte(p.sign(parts[0])), []byte(parts[1])) {
		return nil, ErrInvalidToken
	}

	raw, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, ErrInvalidToken
	}

	var payload tokenPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, ErrInvalidToken
	}

	exp := time.Unix(payload.Exp, 0)
	if p.now().After(exp) {
		return nil, ErrTokenExpired
	}

	return &Identity{
		UserID:    payload.UserID,
		Role:      payload.Role,
		ExpiresAt: exp,
	}, nil
}

func (p *HMACProvider) sign(encodedPayload string) string {
	mac := hmac.New(sha256.New, p.secret)
	mac.Write([]byte(encodedPayload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
