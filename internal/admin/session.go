// Package admin authenticates clinic administrators against the password
// stored in clinic settings and issues short-lived session tokens for the
// admin-only routes.
package admin

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionIssuer mints HMAC-signed admin session tokens.
type SessionIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionIssuer constructs an issuer. TTL falls back to 12 hours.
func NewSessionIssuer(secret string, ttl time.Duration) *SessionIssuer {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &SessionIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue returns a signed token for an authenticated administrator.
func (i *SessionIssuer) Issue(now time.Time) (string, error) {
	if len(i.secret) == 0 {
		return "", fmt.Errorf("admin: session secret not configured")
	}
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("admin: sign session token: %w", err)
	}
	return signed, nil
}
