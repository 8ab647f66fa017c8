package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_WithRequiredVars(t *testing.T) {
	os.Setenv("COOKIE_SECRET", "test-secret")
	defer os.Unsetenv("COOKIE_SECRET")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.CookieSecret != "test-secret" {
		t.Errorf("expected CookieSecret to be set, got %s", cfg.CookieSecret)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("COOKIE_SECRET")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing required vars, got nil")
	}
}

func TestConfig_Defaults(t *testing.T) {
	os.Setenv("COOKIE_SECRET", "test-secret")
	defer os.Unsetenv("COOKIE_SECRET")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.AppPort != 8888 {
		t.Errorf("expected default AppPort 8888, got %d", cfg.AppPort)
	}
	if cfg.DBHost != "127.0.0.1" {
		t.Errorf("expected default DBHost 127.0.0.1, got %s", cfg.DBHost)
	}
	if cfg.DBPort != 5432 {
		t.Errorf("expected default DBPort 5432, got %d", cfg.DBPort)
	}
	if cfg.DBDatabase != "blog" {
		t.Errorf("expected default DBDatabase blog, got %s", cfg.DBDatabase)
	}
	if cfg.SessionTTL != 720*time.Hour {
		t.Errorf("expected default SessionTTL 720h, got %v", cfg.SessionTTL)
	}
	if !cfg.IsDevelopment() {
		t.Error("expected default environment to be development")
	}
}

func TestLoad_ProductionRequiresStrongSecret(t *testing.T) {
	os.Setenv("APP_ENV", "production")
	os.Setenv("COOKIE_SECRET", "short")
	defer func() {
		os.Unsetenv("APP_ENV")
		os.Unsetenv("COOKIE_SECRET")
	}()

	if _, err := Load(); err == nil {
		t.Fatal("expected error for a short production cookie secret, got nil")
	}
}
