package config

import (
	"strings"
	"testing"
	"time"
)

// setRequired sets the minimal environment for Load to succeed.
func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("SECRET_KEY", "s3cr3t")
	t.Setenv("PASSWORD", "hunter2")
	t.Setenv("EXTERNAL_API", "http://catalog.local/product/|PRODUCT_ID|/")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port default = %q", cfg.Port)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Fatalf("TokenTTL default = %v", cfg.TokenTTL)
	}
	if cfg.ItemsPerPage != 10 {
		t.Fatalf("ItemsPerPage default = %d", cfg.ItemsPerPage)
	}
	if cfg.Cache.Type != CacheTypeSimple {
		t.Fatalf("Cache.Type default = %q", cfg.Cache.Type)
	}
	if cfg.Cache.TTL != time.Hour {
		t.Fatalf("Cache.TTL default = %v", cfg.Cache.TTL)
	}
	if cfg.Catalog.Workers != 5 {
		t.Fatalf("Catalog.Workers default = %d", cfg.Catalog.Workers)
	}
	if cfg.DatabaseURL != "wishlist.db" {
		t.Fatalf("DatabaseURL default = %q", cfg.DatabaseURL)
	}
	if cfg.GinMode != "release" {
		t.Fatalf("GinMode default = %q", cfg.GinMode)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("SECRET_KEY", "")
	t.Setenv("PASSWORD", "hunter2")
	t.Setenv("EXTERNAL_API", "http://catalog.local/product/|PRODUCT_ID|/")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for empty SECRET_KEY")
	}
}

func TestLoad_MissingPassword(t *testing.T) {
	t.Setenv("SECRET_KEY", "s3cr3t")
	t.Setenv("PASSWORD", "")
	t.Setenv("EXTERNAL_API", "http://catalog.local/product/|PRODUCT_ID|/")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for empty PASSWORD")
	}
}

func TestLoad_CatalogTemplateMustHavePlaceholder(t *testing.T) {
	t.Setenv("SECRET_KEY", "s3cr3t")
	t.Setenv("PASSWORD", "hunter2")
	t.Setenv("EXTERNAL_API", "http://catalog.local/product/42/")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "PRODUCT_ID") {
		t.Fatalf("expected placeholder error, got %v", err)
	}
}

func TestLoad_InvalidCacheType(t *testing.T) {
	setRequired(t)
	t.Setenv("CACHE_TYPE", "memcached")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unsupported CACHE_TYPE")
	}
}

func TestLoad_InvalidItemsPerPage(t *testing.T) {
	setRequired(t)
	t.Setenv("ITEMS_PER_PAGE", "0")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for ITEMS_PER_PAGE < 1")
	}
}

func TestLoad_NormalizesWarning(t *testing.T) {
	setRequired(t)
	t.Setenv("LOG_LEVEL", "WARNING")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("LogLevel = %q, want warn", cfg.LogLevel)
	}
}

func TestLoad_OverridesAndCSV(t *testing.T) {
	setRequired(t)
	t.Setenv("CACHE_TYPE", "redis")
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("ITEMS_PER_PAGE", "3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Cache.Type != CacheTypeRedis || cfg.Cache.RedisAddr != "redis:6380" {
		t.Fatalf("cache config not applied: %+v", cfg.Cache)
	}
	if cfg.ItemsPerPage != 3 {
		t.Fatalf("ItemsPerPage = %d, want 3", cfg.ItemsPerPage)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("CORS origins = %#v", cfg.CORS.AllowedOrigins)
	}
}

func TestMustLoad_PanicsOnInvalid(t *testing.T) {
	t.Setenv("SECRET_KEY", "")
	t.Setenv("PASSWORD", "")
	t.Setenv("EXTERNAL_API", "")

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic from MustLoad")
		}
	}()
	MustLoad()
}
