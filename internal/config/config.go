package config

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

const (
	defaultHTTPAddr          = ":8080"
	defaultStorage           = StoragePostgres
	defaultDBHost            = "localhost"
	defaultDBPort            = 5432
	defaultDBName            = "finance_db"
	defaultSessionTTL        = 24 * time.Hour
	defaultLogLevel          = "info"
	defaultReconcileSchedule = "@hourly"
	defaultCORSOrigins       = "http://localhost:3000,http://localhost:5173"
	generatedSecretSize      = 32
)

type Config struct {
	HTTPAddr          string
	Storage           string
	DatabaseURL       string
	JWTSecret         []byte
	SessionTTL        time.Duration
	CookieSecure      bool
	CORSOrigins       []string
	LogLevel          string
	LogPretty         bool
	ReconcileSchedule string
	// GeneratedSecret is set when JWTSecret was made up for this process,
	// so sessions do not survive a restart.
	GeneratedSecret bool
}

// Load reads a .env file if one exists and then builds the config from the
// environment, falling back to defaults for anything unset.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		HTTPAddr:          getEnv("HTTP_ADDR", defaultHTTPAddr),
		Storage:           strings.ToLower(getEnv("STORAGE", defaultStorage)),
		DatabaseURL:       databaseURL(),
		JWTSecret:         []byte(os.Getenv("JWT_SECRET")),
		LogLevel:          getEnv("LOG_LEVEL", defaultLogLevel),
		ReconcileSchedule: getEnv("RECONCILE_SCHEDULE", defaultReconcileSchedule),
		CORSOrigins:       splitList(getEnv("CORS_ORIGINS", defaultCORSOrigins)),
	}

	if cfg.Storage != StoragePostgres && cfg.Storage != StorageMemory {
		return nil, fmt.Errorf("STORAGE must be %q or %q, got %q", StoragePostgres, StorageMemory, cfg.Storage)
	}

	ttl, err := durationEnv("SESSION_TTL", defaultSessionTTL)
	if err != nil {
		return nil, err
	}
	cfg.SessionTTL = ttl

	if cfg.CookieSecure, err = boolEnv("COOKIE_SECURE", false); err != nil {
		return nil, err
	}
	if cfg.LogPretty, err = boolEnv("LOG_PRETTY", false); err != nil {
		return nil, err
	}

	if len(cfg.JWTSecret) == 0 {
		if cfg.Storage != StorageMemory {
			return nil, errors.New("JWT_SECRET is not set")
		}
		secret := make([]byte, generatedSecretSize)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generating JWT secret: %w", err)
		}
		cfg.JWTSecret, cfg.GeneratedSecret = secret, true
	}

	return cfg, nil
}

// databaseURL prefers DATABASE_URL and otherwise assembles one from the
// DB_* parts.
func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	port := defaultDBPort
	if p, err := strconv.Atoi(os.Getenv("DB_PORT")); err == nil {
		port = p
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		getEnv("DB_HOST", defaultDBHost), port, getEnv("DB_NAME", defaultDBName))
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return b, nil
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
