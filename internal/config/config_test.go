package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"STOREFRONT_ADDR", "BACKEND_URL", "BACKEND_TIMEOUT", "STORAGE_DRIVER", "CART_STORAGE_KEY", "CORS_ALLOW_ORIGINS"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr :8080, got %q", cfg.Addr)
	}
	if cfg.BackendURL != "http://localhost:7000" {
		t.Fatalf("unexpected backend url %q", cfg.BackendURL)
	}
	if cfg.BackendTimeout != 0 {
		t.Fatalf("expected no backend timeout by default, got %s", cfg.BackendTimeout)
	}
	if cfg.StorageDriver != "file" {
		t.Fatalf("expected file storage by default, got %q", cfg.StorageDriver)
	}
	if cfg.CartStorageKey != "cart" {
		t.Fatalf("expected cart key 'cart', got %q", cfg.CartStorageKey)
	}
	if len(cfg.CORSAllowOrigins) != 1 || cfg.CORSAllowOrigins[0] != "*" {
		t.Fatalf("unexpected cors origins %v", cfg.CORSAllowOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("BACKEND_URL", "https://api.example.com/")
	t.Setenv("BACKEND_TIMEOUT", "5s")
	t.Setenv("STORAGE_DRIVER", "Redis")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, ,http://b.test")

	cfg := Load()
	if cfg.BackendURL != "https://api.example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.BackendURL)
	}
	if cfg.BackendTimeout != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %s", cfg.BackendTimeout)
	}
	if cfg.StorageDriver != "redis" {
		t.Fatalf("expected lower-cased driver, got %q", cfg.StorageDriver)
	}
	if len(cfg.CORSAllowOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.CORSAllowOrigins)
	}
}

func TestParseDuration_Invalid(t *testing.T) {
	if d := parseDuration("soon", time.Minute); d != time.Minute {
		t.Fatalf("expected fallback, got %s", d)
	}
}
