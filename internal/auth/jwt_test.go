package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestGenerateAndParseJWT(t *testing.T) {
	secret := "test-secret"
	accountID := uuid.New()

	token, err := GenerateJWT(secret, accountID, "beneficiary", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(secret, token)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}

	if claims.AccountID != accountID {
		t.Errorf("account id = %s, want %s", claims.AccountID, accountID)
	}
	if claims.Role != "beneficiary" {
		t.Errorf("role = %q, want %q", claims.Role, "beneficiary")
	}
}

func TestParseJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT("secret-a", uuid.New(), "donor", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ParseJWT("secret-b", token); err == nil {
		t.Error("expected error for wrong secret, got nil")
	}
}

func TestParseJWT_Expired(t *testing.T) {
	// GenerateJWT refuses non-positive expirations, so mint directly.
	claims := Claims{
		AccountID: uuid.New(),
		Role:      "donor",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ParseJWT("secret", token); err == nil {
		t.Error("expected error for expired token, got nil")
	}
}
