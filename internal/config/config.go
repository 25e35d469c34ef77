package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port        int
	DatabaseURL string

	ClientOrigin string

	// Rate limit applied to /api routes, requests per second per client IP.
	RateLimit float64
	RateBurst int
}

// Load reads configuration from environment variables and validates required fields.
func Load() (Config, error) {
	port, err := getEnvInt("PORT", 8080)
	if err != nil {
		return Config{}, fmt.Errorf("parse PORT: %w", err)
	}

	rateLimit, err := getEnvFloat("RATE_LIMIT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse RATE_LIMIT: %w", err)
	}

	rateBurst, err := getEnvInt("RATE_BURST", 10)
	if err != nil {
		return Config{}, fmt.Errorf("parse RATE_BURST: %w", err)
	}

	cfg := Config{
		Port:         port,
		DatabaseURL:  getEnv("DATABASE_URL", "data/issues.db"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:8080"),
		RateLimit:    rateLimit,
		RateBurst:    rateBurst,
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT %d out of range", c.Port)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("RATE_LIMIT must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(v)
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	return strconv.ParseFloat(v, 64)
}
