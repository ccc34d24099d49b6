package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all worker configuration
type Config struct {
	// Server configuration
	Port string

	// Local store configuration
	DBPath string

	// Origin API configuration
	OriginURL      string
	APIBasePath    string
	RequestTimeout time.Duration
}

// Load loads configuration from a .env file (if present) and environment variables
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "3000"),
		DBPath:         getEnv("DB_PATH", "inspection.db"),
		OriginURL:      getEnv("ORIGIN_URL", ""),
		APIBasePath:    getEnv("API_BASE_PATH", "/api"),
		RequestTimeout: time.Duration(getEnvAsInt("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
	}

	// Validate required fields
	if cfg.OriginURL == "" {
		return nil, fmt.Errorf("ORIGIN_URL is required")
	}
	if cfg.APIBasePath == "" || cfg.APIBasePath[0] != '/' {
		return nil, fmt.Errorf("API_BASE_PATH must start with '/'")
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
