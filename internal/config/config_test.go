package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.HashWorkers != 4 {
		t.Errorf("expected 4 hash workers, got %d", cfg.HashWorkers)
	}
	if cfg.AdminTokenTTL != 12*time.Hour {
		t.Errorf("expected 12h admin token TTL, got %s", cfg.AdminTokenTTL)
	}
	if cfg.AdminDefaultPassword == "" {
		t.Error("expected a default admin password for first-boot seeding")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("HASH_WORKERS", "2")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://clinic.example.com, https://admin.example.com")
	t.Setenv("ADMIN_TOKEN_TTL", "1h")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.HashWorkers != 2 {
		t.Errorf("expected 2 hash workers, got %d", cfg.HashWorkers)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[0] != "https://clinic.example.com" {
		t.Errorf("unexpected CORS origins: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.AdminTokenTTL != time.Hour {
		t.Errorf("expected 1h admin token TTL, got %s", cfg.AdminTokenTTL)
	}
}

func TestInvalidIntFallsBack(t *testing.T) {
	t.Setenv("HASH_WORKERS", "not-a-number")
	cfg := Load()
	if cfg.HashWorkers != 4 {
		t.Errorf("expected fallback to 4 hash workers, got %d", cfg.HashWorkers)
	}
}
