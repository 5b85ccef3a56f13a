package config

import "testing"

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.DBConn == "" || cfg.JWTSecret == "" {
		t.Fatal("required settings must have defaults")
	}
}

func TestNewConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_SECRET", "override")
	t.Setenv("RATES_URL", "http://example.com/rates")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9000" {
		t.Fatalf("expected port override, got %s", cfg.Port)
	}
	if cfg.JWTSecret != "override" {
		t.Fatalf("expected secret override, got %s", cfg.JWTSecret)
	}
	if cfg.RatesURL != "http://example.com/rates" {
		t.Fatalf("expected rates url override, got %s", cfg.RatesURL)
	}
}
