package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	LogLevel      string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string

	// ClinicTimezone is the IANA zone all appointment wall-clock times are
	// interpreted in. The scheduler never normalizes across zones.
	ClinicTimezone string

	// AdminJWTSecret signs admin session tokens minted by /admin/verify.
	AdminJWTSecret string
	// AdminTokenTTL bounds how long an admin session token stays valid.
	AdminTokenTTL time.Duration
	// AdminDefaultPassword seeds the settings record on first boot only.
	AdminDefaultPassword string

	// HashWorkers caps concurrent scrypt derivations so credential checks
	// cannot starve request handling.
	HashWorkers int

	CORSAllowedOrigins []string

	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:                 getEnv("PORT", "8080"),
		Env:                  getEnv("ENV", "development"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		RedisAddr:            getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		ClinicTimezone:       getEnv("CLINIC_TZ", "Local"),
		AdminJWTSecret:       getEnv("ADMIN_JWT_SECRET", ""),
		AdminTokenTTL:        getEnvAsDuration("ADMIN_TOKEN_TTL", 12*time.Hour),
		AdminDefaultPassword: getEnv("ADMIN_DEFAULT_PASSWORD", "admin123"),
		HashWorkers:          getEnvAsInt("HASH_WORKERS", 4),
		CORSAllowedOrigins:   getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		ShutdownTimeout:      getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsSlice splits a comma-separated environment variable.
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
