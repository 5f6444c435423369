// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/pantrywatch/pantrywatch/internal/logger"
)

// Config holds all runtime configuration for the tracker.
type Config struct {
	// DBPath is the bbolt database file location.
	DBPath string

	// OCRLanguage is the Tesseract language code used for recognition.
	OCRLanguage string

	// OCRPassTimeout bounds a single recognition pass.
	OCRPassTimeout time.Duration

	// AlertRecipient receives expiry notifications. Empty disables delivery.
	AlertRecipient string

	// Logging configuration.
	LogLevel  string
	LogFormat string
	LogOutput string
}

// Load reads configuration from a .env file (if present) and the process
// environment, falling back to defaults for anything unset.
func Load() (*Config, error) {
	// A missing .env file is fine; the environment alone may be complete.
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:         getEnv("PANTRYWATCH_DB", "pantrywatch.db"),
		OCRLanguage:    getEnv("PANTRYWATCH_OCR_LANG", "eng"),
		AlertRecipient: getEnv("PANTRYWATCH_ALERT_RECIPIENT", ""),
		LogLevel:       getEnv("PANTRYWATCH_LOG_LEVEL", "info"),
		LogFormat:      getEnv("PANTRYWATCH_LOG_FORMAT", "console"),
		LogOutput:      getEnv("PANTRYWATCH_LOG_OUTPUT", "stderr"),
	}

	timeoutSecs, err := strconv.Atoi(getEnv("PANTRYWATCH_OCR_TIMEOUT_SECONDS", "30"))
	if err != nil || timeoutSecs <= 0 {
		return nil, fmt.Errorf("invalid PANTRYWATCH_OCR_TIMEOUT_SECONDS: %q", getEnv("PANTRYWATCH_OCR_TIMEOUT_SECONDS", "30"))
	}
	cfg.OCRPassTimeout = time.Duration(timeoutSecs) * time.Second

	return cfg, nil
}

// LoggerConfig maps the logging fields onto the logger package's config.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:  c.LogLevel,
		Format: c.LogFormat,
		Output: c.LogOutput,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
