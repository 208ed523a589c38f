package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestVerifyValidToken(t *testing.T) {
	v := NewVerifier(testSecret)
	token := signedToken(t, testSecret, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	claims, err := v.Verify(map[string]string{"Authorization": token})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims["sub"] != "user-1" {
		t.Fatalf("expected sub user-1, got %v", claims["sub"])
	}
}

func TestVerifyLowercaseHeader(t *testing.T) {
	v := NewVerifier(testSecret)
	token := signedToken(t, testSecret, jwt.MapClaims{"sub": "user-2"})

	if _, err := v.Verify(map[string]string{"authorization": token}); err != nil {
		t.Fatalf("unexpected error for lowercase header: %v", err)
	}
}

func TestVerifyBearerPrefix(t *testing.T) {
	v := NewVerifier(testSecret)
	token := signedToken(t, testSecret, jwt.MapClaims{"sub": "user-3"})

	if _, err := v.Verify(map[string]string{"Authorization": "Bearer " + token}); err != nil {
		t.Fatalf("unexpected error for Bearer-prefixed token: %v", err)
	}
}

func TestVerifyMissingToken(t *testing.T) {
	v := NewVerifier(testSecret)

	_, err := v.Verify(map[string]string{})
	if !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
	if err.Error() != "No token provided" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	v := NewVerifier(testSecret)
	token := signedToken(t, testSecret, jwt.MapClaims{
		"sub": "user-4",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err := v.Verify(map[string]string{"Authorization": token})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if err.Error() != "Unauthorized" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	v := NewVerifier(testSecret)
	token := signedToken(t, "other-secret", jwt.MapClaims{"sub": "user-5"})

	if _, err := v.Verify(map[string]string{"Authorization": token}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestVerifyGarbageToken(t *testing.T) {
	v := NewVerifier(testSecret)

	if _, err := v.Verify(map[string]string{"Authorization": "not-a-jwt"}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
