package auth

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Error messages are surfaced verbatim in 401 response bodies.
var (
	// ErrNoToken is returned when the request carries no authorization header.
	ErrNoToken = errors.New("No token provided")
	// ErrUnauthorized is returned when the token fails signature or expiry checks.
	ErrUnauthorized = errors.New("Unauthorized")
)

// Verifier validates bearer tokens signed with a shared HMAC secret.
type Verifier struct {
	secret []byte
}

// NewVerifier builds a Verifier for the given shared secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify extracts the bearer token from the request headers and validates
// it. On success it returns the decoded claims, opaque to the caller.
// Pure: no side effects beyond reading the current time for expiry checks.
func (v *Verifier) Verify(headers map[string]string) (jwt.MapClaims, error) {
	token := TokenFromHeaders(headers)
	if token == "" {
		return nil, ErrNoToken
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrUnauthorized
	}
	return claims, nil
}

// TokenFromHeaders looks up the authorization header under both its
// canonical and lowercase forms (API Gateway does not normalize header
// casing) and strips an optional "Bearer " prefix.
func TokenFromHeaders(headers map[string]string) string {
	token := headers["Authorization"]
	if token == "" {
		token = headers["authorization"]
	}
	token = strings.TrimSpace(token)
	if len(token) > 7 && strings.EqualFold(token[:7], "Bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	return token
}
