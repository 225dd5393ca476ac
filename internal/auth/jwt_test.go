package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestSessionJWTRoundTrip(t *testing.T) {
	secret := "test-secret"
	sessionID := uuid.New()

	token, err := GenerateSessionJWT(secret, sessionID, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseSessionJWT(secret, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.SessionID != sessionID {
		t.Errorf("session id = %s, want %s", claims.SessionID, sessionID)
	}
}

func TestParseSessionJWT_WrongSecret(t *testing.T) {
	token, err := GenerateSessionJWT("secret-a", uuid.New(), time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseSessionJWT("secret-b", token); err == nil {
		t.Error("expected parse to fail with the wrong secret")
	}
}

func TestParseSessionJWT_Expired(t *testing.T) {
	claims := Claims{
		SessionID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			Issuer:    "adforge",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseSessionJWT("secret", token); err == nil {
		t.Error("expected parse to fail for an expired token")
	}
}

func TestParseSessionJWT_Garbage(t *testing.T) {
	if _, err := ParseSessionJWT("secret", "not-a-token"); err == nil {
		t.Error("expected parse to fail for garbage input")
	}
}
