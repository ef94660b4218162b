package config

import (
	"os"
	"strconv"
	"time"

	"todoapi/pkg/token"
)

type AppConfig struct {
	Port string

	// DatabaseURL selects the postgres adapter when set. Otherwise the
	// service runs on the sqlite file at DatabasePath.
	DatabaseURL  string
	DatabasePath string

	JWTSecret string
	TokenTTL  time.Duration

	Environment  string
	MetricsPort  string
	OTLPEndpoint string
}

func Load() *AppConfig {
	return &AppConfig{
		Port:         getEnv("PORT", "8080"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabasePath: getEnv("DATABASE_PATH", "todos.db"),
		JWTSecret:    getEnv("JWT_SECRET", "change-me-in-production"),
		TokenTTL:     getDurationEnv("TOKEN_TTL_MINUTES", token.DefaultTTL),
		Environment:  getEnv("APP_ENV", "development"),
		MetricsPort:  getEnv("METRICS_PORT", "9091"),
		OTLPEndpoint: getEnv("OTLP_ENDPOINT", "localhost:4317"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)

	if value == "" {
		return fallback
	}

	minutes, err := strconv.Atoi(value)

	if err != nil || minutes <= 0 {
		return fallback
	}

	return time.Duration(minutes) * time.Minute
}
