package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration, loaded once at startup.
type Config struct {
	DatabaseURL string
	HTTPPort    string
	LogLevel    string

	// Redis
	RedisAddr string
	RedisPass string
	RedisDB   int

	// Auth
	JWTSecret string

	// Outbound notification webhook (optional, best-effort)
	NotifyWebhookURL     string
	NotifyWebhookSecret  string
	NotifyWebhookTimeout time.Duration
	NotifyMaxRetries     int
	NotifyBaseDelay      time.Duration

	// Nearby search
	DefaultRadiusKm float64
	MaxRadiusKm     float64
}

// LoadConfig reads configuration from the environment, with an optional
// .env file for local development.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		HTTPPort:             getEnv("HTTP_PORT", "8080"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:            os.Getenv("REDIS_PASSWORD"),
		RedisDB:              getEnvAsInt("REDIS_DB", 0),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		NotifyWebhookURL:     os.Getenv("NOTIFY_WEBHOOK_URL"),
		NotifyWebhookSecret:  os.Getenv("NOTIFY_WEBHOOK_SECRET"),
		NotifyWebhookTimeout: getEnvAsDuration("NOTIFY_WEBHOOK_TIMEOUT", 5*time.Second),
		NotifyMaxRetries:     getEnvAsInt("NOTIFY_MAX_RETRIES", 3),
		NotifyBaseDelay:      getEnvAsDuration("NOTIFY_BASE_DELAY", time.Second),
		DefaultRadiusKm:      getEnvAsFloat("DEFAULT_RADIUS_KM", 10),
		MaxRadiusKm:          getEnvAsFloat("MAX_RADIUS_KM", 100),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	return cfg, nil
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
