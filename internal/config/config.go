package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// State backend selectors
const (
	StateBackendPostgres = "postgres"
	StateBackendRedis    = "redis"
)

// Config holds all configuration for the application
type Config struct {
	// Session state persistence
	StateBackend string
	DatabaseURL  string
	RedisURL     string

	// Upstream recommendation backend
	CatalogBaseURL string

	// Server
	Port        string
	CORSOrigins []string
	Env         string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		StateBackend:   getEnv("STATE_BACKEND", StateBackendPostgres),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		RedisURL:       getEnv("REDIS_URL", ""),
		CatalogBaseURL: getEnv("CATALOG_BASE_URL", "http://localhost:8000"),
		Port:           getEnv("PORT", "8080"),
		CORSOrigins:    strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:            getEnv("ENV", "development"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StateBackend {
	case StateBackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STATE_BACKEND is postgres")
		}
	case StateBackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when STATE_BACKEND is redis")
		}
	default:
		return fmt.Errorf("STATE_BACKEND must be %q or %q, got %q", StateBackendPostgres, StateBackendRedis, c.StateBackend)
	}
	if c.CatalogBaseURL == "" {
		return fmt.Errorf("CATALOG_BASE_URL is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
