package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	PORT      string
	GIN_MODE  string
	LOG_LEVEL string

	DB_DRIVER string
	DB_URL    string

	JWT_SECRET  string
	CORS_ORIGIN string

	// Seeded on startup when both are set.
	ADMIN_EMAIL    string
	ADMIN_PASSWORD string
	// Google accounts granted the admin role.
	ADMIN_EMAILS []string

	GOOGLE_CLIENT_ID         string
	GOOGLE_CLIENT_SECRET     string
	GOOGLE_REDIRECT_URL      string
	GOOGLE_FRONTEND_REDIRECT string

	REDIS_URL  string
	CACHE_TTL  time.Duration
	CACHE_SIZE int
)

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using system environment variables")
	}

	PORT = getEnv("PORT", "8080")
	GIN_MODE = getEnv("GIN_MODE", "debug")
	LOG_LEVEL = getEnv("LOG_LEVEL", "info")

	DB_DRIVER = getEnv("DB_DRIVER", "postgres")
	DB_URL = mustEnv("DB_URL")

	JWT_SECRET = mustEnv("JWT_SECRET")
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:5173")

	ADMIN_EMAIL = getEnv("ADMIN_EMAIL", "")
	ADMIN_PASSWORD = getEnv("ADMIN_PASSWORD", "")
	ADMIN_EMAILS = splitList(getEnv("ADMIN_EMAILS", ""))

	GOOGLE_CLIENT_ID = getEnv("GOOGLE_CLIENT_ID", "")
	GOOGLE_CLIENT_SECRET = getEnv("GOOGLE_CLIENT_SECRET", "")
	GOOGLE_REDIRECT_URL = getEnv("GOOGLE_REDIRECT_URL", "")
	GOOGLE_FRONTEND_REDIRECT = getEnv("GOOGLE_FRONTEND_REDIRECT", "")

	REDIS_URL = getEnv("REDIS_URL", "")
	CACHE_TTL = getDuration("CACHE_TTL", 30*time.Second)
	CACHE_SIZE = getInt("CACHE_SIZE", 256)
}

// GoogleEnabled reports whether the Google login routes should be mounted.
func GoogleEnabled() bool {
	return GOOGLE_CLIENT_ID != "" && GOOGLE_CLIENT_SECRET != "" && GOOGLE_REDIRECT_URL != ""
}

// IsAdminEmail reports whether email is listed in ADMIN_EMAILS (case-insensitive).
func IsAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	for _, e := range ADMIN_EMAILS {
		if e == email {
			return true
		}
	}
	return false
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func SlogLevel() slog.Level {
	switch strings.ToLower(LOG_LEVEL) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		slog.Error("missing required environment variable", "key", key)
		os.Exit(1)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", v)
		return fallback
	}
	return n
}

// getDuration accepts Go durations ("45s") or plain seconds ("45").
func getDuration(key string, fallback time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	slog.Warn("invalid duration in environment, using default", "key", key, "value", v)
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
