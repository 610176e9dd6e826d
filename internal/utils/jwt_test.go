package utils

import (
	"testing"

	"ai-doctor-server/internal/config"
	"ai-doctor-server/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:                 "access-secret",
		JWTRefreshSecret:          "refresh-secret",
		JWTExpirationMinutes:      15,
		JWTRefreshExpirationHours: 168,
	}
}

func TestGenerateAndValidateTokens(t *testing.T) {
	cfg := testConfig()
	user := &models.User{}
	user.ID = "3f3e7a10-2f7e-4a4e-9b3c-0d3f54c2a111"

	access, refresh, err := GenerateTokens(user, cfg)
	if err != nil {
		t.Fatalf("GenerateTokens failed: %v", err)
	}

	claims, err := ValidateToken(access, cfg.JWTSecret)
	if err != nil {
		t.Fatalf("ValidateToken(access) failed: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("access claims.UserID = %s, want %s", claims.UserID, user.ID)
	}

	claims, err = ValidateToken(refresh, cfg.JWTRefreshSecret)
	if err != nil {
		t.Fatalf("ValidateToken(refresh) failed: %v", err)
	}
	if claims.Subject != user.ID {
		t.Errorf("refresh claims.Subject = %s, want %s", claims.Subject, user.ID)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	cfg := testConfig()
	user := &models.User{}
	user.ID = "3f3e7a10-2f7e-4a4e-9b3c-0d3f54c2a111"

	access, _, err := GenerateTokens(user, cfg)
	if err != nil {
		t.Fatalf("GenerateTokens failed: %v", err)
	}

	if _, err := ValidateToken(access, "some-other-secret"); err == nil {
		t.Error("token validated with wrong secret")
	}
	if _, err := ValidateToken("not-a-token", cfg.JWTSecret); err == nil {
		t.Error("garbage token validated")
	}
}
