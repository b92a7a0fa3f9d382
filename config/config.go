package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingEnv is returned by Load when a required environment variable is unset.
var ErrMissingEnv = errors.New("required environment variable is not set")

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	LogLevel    string

	// BaseURL is the origin the event page reads event details from (BASE_URL/api/events/{slug}).
	BaseURL string
	DBUrl   string

	ContextTimeout     time.Duration
	EventCacheTTL      time.Duration
	CORSAllowedOrigins []string
	SeedSampleEvents   bool

	Redis RedisConfig
	Email EmailConfig
}

// RedisConfig configures the event-detail cache. An empty Addr disables caching.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// EmailConfig configures booking confirmation emails.
type EmailConfig struct {
	Provider        string
	FromAddress     string
	FromName        string
	AWSRegion       string
	AccessKeyID     string
	SecretAccessKey string
	// SESEndpoint overrides the SES endpoint, e.g. for a local emulator.
	SESEndpoint string
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production the process environment is authoritative and .env may not exist.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:        env,
		Port:               getEnv("PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		BaseURL:            strings.TrimSuffix(os.Getenv("BASE_URL"), "/"),
		DBUrl:              os.Getenv("DATABASE_URL"),
		ContextTimeout:     getEnvDuration("CONTEXT_TIMEOUT", 5*time.Second),
		EventCacheTTL:      getEnvDuration("EVENT_CACHE_TTL", time.Hour),
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		SeedSampleEvents:   getEnvBool("SEED_SAMPLE_EVENTS", false),
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Email: EmailConfig{
			Provider:        getEnv("EMAIL_PROVIDER", "noop"),
			FromAddress:     os.Getenv("EMAIL_FROM_ADDRESS"),
			FromName:        getEnv("EMAIL_FROM_NAME", "DevEvent"),
			AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			SESEndpoint:     os.Getenv("AWS_SES_ENDPOINT"),
		},
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("BASE_URL: %w", ErrMissingEnv)
	}
	if cfg.DBUrl == "" {
		return nil, fmt.Errorf("DATABASE_URL: %w", ErrMissingEnv)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("90s", "1h") and falls back on parse errors.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
