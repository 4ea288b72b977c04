package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/hongminglow/catalog-be/internal/auth"
)

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Non-numeric or non-positive JWT_ACCESS_TTL_MINUTES values fall back to this.
const defaultAccessTTLMinutes = 30

// DefaultPublicPaths are reachable without a bearer token.
var DefaultPublicPaths = []string{"/auth/", "/health", "/docs", "/openapi.json", "/redoc", "/favicon.ico"}

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port            string
	StorageDriver   string
	DatabaseURL     string
	AutoMigrate     bool
	JWTSecret       string
	JWTAlgorithm    string
	JWTIssuer       string
	AccessTTL       time.Duration
	RefreshTTL      time.Duration
	BcryptCost      int
	PhoneRegion     string
	CORSOrigins     []string
	PublicPaths     []string
	APIPrefix       string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment and performs minimal validation.
// The signing secret is checked separately by RequireSigningKey so that
// commands which never sign tokens can run without it.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("STORAGE_DRIVER", DriverPostgres)
	v.SetDefault("AUTO_MIGRATE", true)
	v.SetDefault("JWT_ALGORITHM", "HS256")
	v.SetDefault("JWT_ISSUER", "catalog-be")
	v.SetDefault("JWT_ACCESS_TTL_MINUTES", defaultAccessTTLMinutes)
	v.SetDefault("JWT_REFRESH_TTL_HOURS", 168)
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("PHONE_DEFAULT_REGION", "US")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("PUBLIC_PATHS", strings.Join(DefaultPublicPaths, ","))
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 15)

	cfg := Config{
		Port:            fallback(v.GetString("PORT"), "8080"),
		StorageDriver:   strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
		DatabaseURL:     strings.TrimSpace(v.GetString("DATABASE_URL")),
		AutoMigrate:     v.GetBool("AUTO_MIGRATE"),
		JWTSecret:       strings.TrimSpace(v.GetString("JWT_SECRET")),
		JWTAlgorithm:    strings.ToUpper(strings.TrimSpace(v.GetString("JWT_ALGORITHM"))),
		JWTIssuer:       strings.TrimSpace(v.GetString("JWT_ISSUER")),
		BcryptCost:      v.GetInt("BCRYPT_COST"),
		PhoneRegion:     strings.ToUpper(fallback(v.GetString("PHONE_DEFAULT_REGION"), "US")),
		CORSOrigins:     parseCSV(fallback(v.GetString("CORS_ALLOWED_ORIGINS"), "*")),
		PublicPaths:     parseCSV(v.GetString("PUBLIC_PATHS")),
		APIPrefix:       normalizePrefix(v.GetString("API_PREFIX")),
		LogLevel:        fallback(v.GetString("LOG_LEVEL"), "info"),
		LogFormat:       fallback(v.GetString("LOG_FORMAT"), "json"),
		ShutdownTimeout: time.Duration(v.GetInt("SHUTDOWN_TIMEOUT_SECONDS")) * time.Second,
	}

	accessMinutes := v.GetInt("JWT_ACCESS_TTL_MINUTES")
	if accessMinutes <= 0 {
		accessMinutes = defaultAccessTTLMinutes
	}
	cfg.AccessTTL = time.Duration(accessMinutes) * time.Minute

	refreshHours := v.GetInt("JWT_REFRESH_TTL_HOURS")
	if refreshHours < 0 {
		return Config{}, fmt.Errorf("JWT_REFRESH_TTL_HOURS must not be negative, got %d", refreshHours)
	}
	cfg.RefreshTTL = time.Duration(refreshHours) * time.Hour

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 15 * time.Second
	}

	switch cfg.StorageDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("DATABASE_URL is required")
		}
	case DriverMemory:
	default:
		return Config{}, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverMemory, cfg.StorageDriver)
	}

	return cfg, nil
}

// RequireSigningKey reports a missing JWT_SECRET.
func (c Config) RequireSigningKey() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	return nil
}

// TokenConfig returns the signing settings for auth.NewTokenManager.
func (c Config) TokenConfig() auth.TokenConfig {
	return auth.TokenConfig{
		Secret:     c.JWTSecret,
		Algorithm:  c.JWTAlgorithm,
		Issuer:     c.JWTIssuer,
		AccessTTL:  c.AccessTTL,
		RefreshTTL: c.RefreshTTL,
	}
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// normalizePrefix turns "api/v1/" into "/api/v1". An empty or "/" prefix
// disables prefixing.
func normalizePrefix(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return ""
	}
	return "/" + prefix
}
