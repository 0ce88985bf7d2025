package auth

import (
	"errors"
	"testing"
	"time"
)

func testJWTConfig() JWTConfig {
	return JWTConfig{
		SecretKey:     "test-secret-key",
		TokenDuration: time.Hour,
		Issuer:        "test-issuer",
	}
}

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	token, err := manager.Generate("user-123", "test@example.com")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if token == "" {
		t.Error("Generate() returned empty token")
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if claims.UserID != "user-123" {
		t.Errorf("claims.UserID = %v, want %v", claims.UserID, "user-123")
	}
	if claims.Email != "test@example.com" {
		t.Errorf("claims.Email = %v, want %v", claims.Email, "test@example.com")
	}
	if claims.Subject != "user-123" {
		t.Errorf("claims.Subject = %v, want %v", claims.Subject, "user-123")
	}
	if claims.Issuer != "test-issuer" {
		t.Errorf("claims.Issuer = %v, want %v", claims.Issuer, "test-issuer")
	}
}

func TestJWTManager_FixedLifetime(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	before := time.Now()
	token, err := manager.Generate("user-123", "test@example.com")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if lifetime != time.Hour {
		t.Errorf("token lifetime = %v, want %v", lifetime, time.Hour)
	}
	if claims.ExpiresAt.Before(before.Add(59 * time.Minute)) {
		t.Errorf("ExpiresAt = %v, expected about one hour from now", claims.ExpiresAt)
	}
}

func TestJWTManager_InvalidToken(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "random string", token: "not.a.valid.token"},
		{name: "malformed jwt", token: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.Validate(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Validate() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestJWTManager_WrongSecretKey(t *testing.T) {
	manager1 := NewJWTManager(testJWTConfig())

	config2 := testJWTConfig()
	config2.SecretKey = "a-different-secret"
	manager2 := NewJWTManager(config2)

	token, err := manager1.Generate("user-123", "test@example.com")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := manager2.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate() with wrong key error = %v, want ErrInvalidToken", err)
	}
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	config := testJWTConfig()
	config.TokenDuration = time.Millisecond
	manager := NewJWTManager(config)

	token, err := manager.Generate("user-123", "test@example.com")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if _, err := manager.Validate(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("Validate() error = %v, want ErrExpiredToken", err)
	}
}

func TestJWTManager_TokenDuration(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	if got := manager.TokenDuration(); got != 3600 {
		t.Errorf("TokenDuration() = %v, want 3600", got)
	}
}
