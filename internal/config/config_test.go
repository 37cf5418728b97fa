package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/chart")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "3001" {
		t.Errorf("port %q, want 3001", cfg.Port)
	}
	if !cfg.IsDev() {
		t.Errorf("env %q, want development default", cfg.Env)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("token ttl %v, want 1h", cfg.TokenTTL)
	}
	if cfg.JWTSecret == "" {
		t.Error("expected the development secret fallback")
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:3000" {
		t.Errorf("cors origins %v", cfg.CORSOrigins)
	}
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Error("expected error when DATABASE_URL is unset")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/chart")
	t.Setenv("PORT", "8080")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("port %q, want 8080", cfg.Port)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Errorf("token ttl %v, want 30m", cfg.TokenTTL)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("cors origins %v, want two entries", cfg.CORSOrigins)
	}
}

func TestValidate_RejectsDevSecretInProduction(t *testing.T) {
	cfg := &Config{Env: "production", JWTSecret: devJWTSecret, TokenTTL: time.Hour}
	if err := cfg.Validate(); err == nil {
		t.Error("expected the development secret to be rejected in production")
	}

	cfg.JWTSecret = "a-real-secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_RejectsNonPositiveTTL(t *testing.T) {
	cfg := &Config{Env: "development", JWTSecret: "s", TokenTTL: 0}
	if err := cfg.Validate(); err == nil {
		t.Error("expected zero TTL to be rejected")
	}
}
