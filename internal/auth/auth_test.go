package auth

import (
	"testing"
	"time"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "hunter22" {
		t.Fatalf("hash must not equal the password")
	}
	if !CheckPassword(hash, "hunter22") {
		t.Fatalf("expected password to verify")
	}
	if CheckPassword(hash, "hunter23") {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("secret", "user-1", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("unexpected user id: %s", claims.UserID)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", "user-1", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseToken("other", token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseTokenExpired(t *testing.T) {
	token, err := GenerateToken("secret", "user-1", -time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseToken("secret", token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
