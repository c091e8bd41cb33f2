package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort      int
	DatabasePath    string
	AllowedOrigin   string
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	// ReminderSchedule is a standard cron expression for the due-goal
	// reminder sweep.
	ReminderSchedule string
	EventRetention   time.Duration
}

// ErrMissingSecret is returned when JWT_SECRET is not set. Starting
// without a signing secret would make every issued token worthless, so
// the caller treats this as fatal.
var ErrMissingSecret = errors.New("config: JWT_SECRET is required")

// Load loads configuration from a .env file (if present) and the
// environment, applying defaults for everything except the signing
// secret.
func Load() (*Config, error) {
	// A missing .env file is fine; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, ErrMissingSecret
	}

	accessTTL, err := getDurationEnv("ACCESS_TOKEN_TTL", time.Hour)
	if err != nil {
		return nil, err
	}
	refreshTTL, err := getDurationEnv("REFRESH_TOKEN_TTL", 7*24*time.Hour)
	if err != nil {
		return nil, err
	}
	retention, err := getDurationEnv("EVENT_RETENTION", 30*24*time.Hour)
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:       port,
		DatabasePath:     getEnv("DATABASE_PATH", "./fittrack.db"),
		AllowedOrigin:    getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
		JWTSecret:        secret,
		AccessTokenTTL:   accessTTL,
		RefreshTokenTTL:  refreshTTL,
		ReminderSchedule: getEnv("REMINDER_SCHEDULE", "*/15 * * * *"),
		EventRetention:   retention,
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback, nil
	}
	return time.ParseDuration(value)
}
