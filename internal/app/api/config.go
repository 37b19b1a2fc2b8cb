package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/HenrryVelezC/minierp/internal/platform/database"
)

const (
	defaultAdminEmail    = "admin@minierp.local"
	defaultAdminPassword = "Admin123$"
	defaultTokenTTL      = 120 * time.Minute
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port           string
	Database       database.Options
	JWTSigningKey  string
	JWTIssuer      string
	JWTAudience    string
	TokenTTL       time.Duration
	AdminEmail     string
	AdminPassword  string
	SeedDisabled   bool
	AllowedOrigins []string
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port: envDefault("PORT", "8080"),
		Database: database.Options{
			Driver:      strings.ToLower(envDefault("DATABASE_DRIVER", database.DriverPostgres)),
			PostgresDSN: strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
			SQLitePath:  envDefault("SQLITE_PATH", "minierp.db"),
		},
		JWTSigningKey:  strings.TrimSpace(os.Getenv("JWT_SIGNING_KEY")),
		JWTIssuer:      envDefault("JWT_ISSUER", "minierp"),
		JWTAudience:    envDefault("JWT_AUDIENCE", "minierp-web"),
		TokenTTL:       defaultTokenTTL,
		AdminEmail:     envDefault("ADMIN_EMAIL", defaultAdminEmail),
		AdminPassword:  envDefault("ADMIN_PASSWORD", defaultAdminPassword),
		SeedDisabled:   isTruthy(os.Getenv("SEED_DISABLED")),
		AllowedOrigins: splitList(envDefault("CORS_ALLOWED_ORIGINS", "http://localhost:4200")),
	}
	switch cfg.Database.Driver {
	case database.DriverMemory, database.DriverPostgres, database.DriverSQLite:
	default:
		return Config{}, fmt.Errorf("DATABASE_DRIVER must be one of memory, postgres, sqlite; got %q", cfg.Database.Driver)
	}
	if raw := strings.TrimSpace(os.Getenv("JWT_TTL_MINUTES")); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			return Config{}, fmt.Errorf("JWT_TTL_MINUTES must be a positive integer")
		}
		cfg.TokenTTL = time.Duration(minutes) * time.Minute
	}
	if cfg.JWTSigningKey == "" {
		return Config{}, fmt.Errorf("JWT_SIGNING_KEY is required")
	}
	if len(cfg.JWTSigningKey) < 32 {
		return Config{}, fmt.Errorf("JWT_SIGNING_KEY must be at least 32 bytes")
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
