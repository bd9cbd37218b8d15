// Package config contains everything related to configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	APIBaseURL     string
	APIToken       string
	APITokenFile   string
	DatabasePath   string
	RequestTimeout time.Duration
	MaxConcurrent  int
}

// Default values
const (
	defaultRequestTimeout = 30 * time.Second
	defaultMaxConcurrent  = 5
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	envPaths := getEnvPaths()
	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		APIBaseURL:     getEnvString("NS_API_BASE_URL", ""),
		APIToken:       os.Getenv("NS_API_TOKEN"),
		APITokenFile:   getEnvString("NS_API_TOKEN_FILE", ""),
		DatabasePath:   getEnvString("DATABASE_PATH", getDefaultDatabasePath()),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", defaultRequestTimeout),
		MaxConcurrent:  getEnvInt("MAX_CONCURRENT_AGGREGATIONS", defaultMaxConcurrent),
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("NS_API_BASE_URL is required (e.g. https://portal.example.com/ns-api/v2)")
	}
	if cfg.APIToken == "" && cfg.APITokenFile == "" {
		return nil, fmt.Errorf("one of NS_API_TOKEN or NS_API_TOKEN_FILE is required")
	}
	if cfg.MaxConcurrent < 1 {
		return nil, fmt.Errorf("MAX_CONCURRENT_AGGREGATIONS must be at least 1")
	}

	// Ensure database directory exists
	if err := ensureDir(filepath.Dir(cfg.DatabasePath)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "reseller-dashboard", ".env"),
			filepath.Join(home, ".reseller-dashboard", ".env"),
		)
	}

	// Parent directories (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		parent := filepath.Dir(cwd)
		paths = append(paths, filepath.Join(parent, ".env"))
	}

	return paths
}

// getDefaultDatabasePath returns the default path for the SQLite database.
func getDefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "credentials.db"
	}
	return filepath.Join(home, ".config", "reseller-dashboard", "credentials.db")
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
