package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/portfolio")

	_, err := Load()
	if !errors.Is(err, ErrMissingJWTSecret) {
		t.Fatalf("expected ErrMissingJWTSecret, got %v", err)
	}
}

func TestLoad_WhitespaceSecretRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "   ")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/portfolio")

	if _, err := Load(); !errors.Is(err, ErrMissingJWTSecret) {
		t.Fatalf("expected ErrMissingJWTSecret, got %v", err)
	}
}

func TestLoad_RequiresPostgresDSN(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("POSTGRES_DSN", "")

	if _, err := Load(); !errors.Is(err, ErrMissingPostgresDSN) {
		t.Fatalf("expected ErrMissingPostgresDSN, got %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/portfolio")
	t.Setenv("AUTH_ENFORCE_ADMIN_ROLE", "")
	t.Setenv("AUTH_ALLOW_REGISTRATION", "")
	t.Setenv("CACHE_TTL_SECONDS", "")
	t.Setenv("APP_PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Auth.EnforceAdminRole {
		t.Error("expected admin role enforcement to be off by default")
	}
	if !cfg.Auth.AllowRegistration {
		t.Error("expected registration to be allowed by default")
	}
	if got := cfg.Cache.TTL(); got != 5*time.Minute {
		t.Errorf("expected 5m cache TTL, got %s", got)
	}
	if got := cfg.App.Addr(); got != "0.0.0.0:8080" {
		t.Errorf("unexpected addr %q", got)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/portfolio")
	t.Setenv("AUTH_ENFORCE_ADMIN_ROLE", "true")
	t.Setenv("CACHE_TTL_SECONDS", "0")
	t.Setenv("AUTH_BCRYPT_COST", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Auth.EnforceAdminRole {
		t.Error("expected admin role enforcement to be on")
	}
	if cfg.Cache.TTL() != 0 {
		t.Errorf("expected caching disabled, got %s", cfg.Cache.TTL())
	}
	if cfg.Auth.BcryptCost != 10 {
		t.Errorf("expected fallback bcrypt cost 10, got %d", cfg.Auth.BcryptCost)
	}
}

func TestLoad_InvalidRedisDB(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/portfolio")
	t.Setenv("REDIS_DB", "zero")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid REDIS_DB")
	}
}
