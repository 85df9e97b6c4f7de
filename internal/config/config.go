// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes server settings,
// authentication secrets, database and cache backends, the external product
// catalog endpoint, and pagination.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/brunovsouza/go-wishlist-backend/internal/utils"
)

// CacheTypeSimple selects the in-process cache backend.
const CacheTypeSimple = "simple"

// CacheTypeRedis selects the Redis cache backend.
const CacheTypeRedis = "redis"

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Type          string        // CACHE_TYPE: simple|redis
	RedisAddr     string        // REDIS_ADDR (host:port)
	RedisPassword string        // REDIS_PASSWORD
	TTL           time.Duration // CACHE_TTL, default one hour
}

// CatalogConfig configures access to the external product catalog.
type CatalogConfig struct {
	// URLTemplate is the catalog endpoint with a |PRODUCT_ID| placeholder.
	URLTemplate string
	// Timeout bounds each outbound catalog request.
	Timeout time.Duration
	// Workers caps concurrent catalog lookups when resolving a page.
	Workers int
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int
	GinMode           string // debug|release|test

	// Logging
	LogLevel  string // debug|info|warn|error|fatal|panic
	LogPretty bool   // pretty console logs in dev

	// Auth
	SecretKey string        // SECRET_KEY, signs access tokens
	Password  string        // PASSWORD, the single login credential
	TokenTTL  time.Duration // TOKEN_TTL, default 30m

	// App
	DatabaseURL  string // sqlite path or postgres DSN
	ItemsPerPage int    // page size for product lists

	Cache   CacheConfig
	Catalog CatalogConfig

	// Rate limiting
	RateRPS   float64 // tokens per second (>= 0)
	RateBurst int     // bucket size (>= 1)

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging
		LogLevel:  strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty: getbool("LOG_PRETTY", false),

		// Auth
		SecretKey: getenv("SECRET_KEY", ""),
		Password:  getenv("PASSWORD", ""),
		TokenTTL:  getdur("TOKEN_TTL", 30*time.Minute),

		// App
		DatabaseURL:  getenv("DATABASE_URL", "wishlist.db"),
		ItemsPerPage: getint("ITEMS_PER_PAGE", 10),

		Cache: CacheConfig{
			Type:          strings.ToLower(getenv("CACHE_TYPE", CacheTypeSimple)),
			RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getenv("REDIS_PASSWORD", ""),
			TTL:           getdur("CACHE_TTL", time.Hour),
		},

		Catalog: CatalogConfig{
			URLTemplate: getenv("EXTERNAL_API", ""),
			Timeout:     getdur("CATALOG_TIMEOUT", 5*time.Second),
			Workers:     getint("CATALOG_WORKERS", 5),
		},

		// Rate limiting
		RateRPS:   getfloat("RATE_RPS", 5.0),
		RateBurst: getint("RATE_BURST", 10),

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "go-wishlist-backend"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if strings.TrimSpace(cfg.SecretKey) == "" {
		return cfg, errors.New("SECRET_KEY must not be empty")
	}
	if strings.TrimSpace(cfg.Password) == "" {
		return cfg, errors.New("PASSWORD must not be empty")
	}
	if cfg.TokenTTL <= 0 {
		return cfg, errors.New("TOKEN_TTL must be > 0")
	}
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return cfg, errors.New("DATABASE_URL must not be empty")
	}
	if cfg.ItemsPerPage < 1 {
		return cfg, errors.New("ITEMS_PER_PAGE must be >= 1")
	}
	switch cfg.Cache.Type {
	case CacheTypeSimple, CacheTypeRedis:
	default:
		return cfg, errors.New("CACHE_TYPE must be one of: simple, redis")
	}
	if cfg.Cache.TTL <= 0 {
		return cfg, errors.New("CACHE_TTL must be > 0")
	}
	if strings.TrimSpace(cfg.Catalog.URLTemplate) == "" {
		return cfg, errors.New("EXTERNAL_API must not be empty")
	}
	if !strings.Contains(cfg.Catalog.URLTemplate, "|PRODUCT_ID|") {
		return cfg, errors.New("EXTERNAL_API must contain the |PRODUCT_ID| placeholder")
	}
	if cfg.Catalog.Timeout <= 0 {
		return cfg, errors.New("CATALOG_TIMEOUT must be > 0")
	}
	if cfg.Catalog.Workers < 1 {
		return cfg, errors.New("CATALOG_WORKERS must be >= 1")
	}
	if cfg.RateRPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// ---- env helpers ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	return utils.AtoiDefault(os.Getenv(k), def)
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
