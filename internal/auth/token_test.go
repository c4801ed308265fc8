package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func mintToken(t *testing.T, secret, issuer string, subject string) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	return signed
}

// TestVerify проверяет извлечение идентификатора субъекта из валидного токена.
func TestVerify(t *testing.T) {
	verifier := NewTokenVerifier("test-secret", "identity-provider")
	userID := uuid.New()

	token := mintToken(t, "test-secret", "identity-provider", userID.String())

	got, err := verifier.Verify(token)
	if err != nil {
		t.Fatalf("expected valid token, got %v", err)
	}
	if got != userID {
		t.Fatalf("expected %s, got %s", userID, got)
	}
}

// TestVerifyRejects проверяет отказ при чужом issuer, секрете и мусорном subject.
func TestVerifyRejects(t *testing.T) {
	verifier := NewTokenVerifier("test-secret", "identity-provider")

	wrongIssuer := mintToken(t, "test-secret", "someone-else", uuid.New().String())
	if _, err := verifier.Verify(wrongIssuer); err == nil {
		t.Fatal("expected error for wrong issuer")
	}

	wrongSecret := mintToken(t, "other-secret", "identity-provider", uuid.New().String())
	if _, err := verifier.Verify(wrongSecret); err == nil {
		t.Fatal("expected error for wrong secret")
	}

	badSubject := mintToken(t, "test-secret", "identity-provider", "not-a-uuid")
	if _, err := verifier.Verify(badSubject); err == nil {
		t.Fatal("expected error for invalid subject")
	}
}
