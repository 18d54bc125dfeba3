package config

import (
	"fmt"
	"os"
	"strings"
)

// AppConfig holds runtime settings, injected through environment variables.
type AppConfig struct {
	HTTPAddr    string
	DatabaseURL string
}

// Load reads and validates configuration, applying defaults where a value is
// missing.
func Load() (AppConfig, error) {
	cfg := AppConfig{
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
	}

	if cfg.DatabaseURL == "" {
		return AppConfig{}, fmt.Errorf("DATABASE_URL must not be empty")
	}
	return cfg, nil
}

// getEnv reads a string environment variable, returning the fallback when it
// is unset or blank.
func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
