package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Config struct {
	// Backend
	APIBaseURL     string
	RequestTimeout time.Duration

	// Client-side state (credentials, log file)
	StateDir string

	// Logging
	LogFile  string
	LogLevel string
}

func Load() *Config {
	cfg := &Config{
		APIBaseURL:     getEnv("PENNYWISE_API_URL", "http://localhost:8080/api"),
		RequestTimeout: getEnvDuration("PENNYWISE_HTTP_TIMEOUT", 15*time.Second),

		StateDir: getEnv("PENNYWISE_DIR", defaultStateDir()),

		LogFile:  getEnv("PENNYWISE_LOG_FILE", ""),
		LogLevel: getEnv("PENNYWISE_LOG_LEVEL", "info"),
	}

	if cfg.LogFile == "" && cfg.StateDir != "" {
		cfg.LogFile = filepath.Join(cfg.StateDir, "pennywise.log")
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if parsed, err := url.Parse(c.APIBaseURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid API base URL '%s': %v", c.APIBaseURL, err))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid API base URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
	}

	if c.RequestTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid request timeout %v: must be at least 1 second", c.RequestTimeout))
	} else if c.RequestTimeout > 5*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid request timeout %v: must be at most 5 minutes", c.RequestTimeout))
	}

	if c.StateDir == "" {
		errors = append(errors, "state directory cannot be empty")
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	isValidLevel := false
	for _, level := range validLevels {
		if c.LogLevel == level {
			isValidLevel = true
			break
		}
	}
	if !isValidLevel {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLevels))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pennywise"
	}
	return filepath.Join(home, ".pennywise")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
