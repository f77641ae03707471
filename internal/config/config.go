// Package config provides application configuration loaded from environment variables.
package config

import "os"

// Config holds all application configuration.
type Config struct {
	// DBPath is the sqlite file backing the key-value store.
	DBPath string
	// Currency is the symbol prefixed to rendered amounts.
	Currency string
	// NoColor disables terminal styling.
	NoColor bool
	// Debug switches the logger to development output.
	Debug bool
}

// Load reads configuration from environment variables.
// It uses sensible defaults for local use.
func Load() *Config {
	return &Config{
		DBPath:   getEnv("INVOZA_DB_PATH", "invoza.db"),
		Currency: getEnv("INVOZA_CURRENCY", "R"),
		NoColor:  getEnvBool("INVOZA_NO_COLOR", false),
		Debug:    getEnvBool("INVOZA_DEBUG", false),
	}
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns the boolean value of an environment variable or a default.
// Accepts "1", "true", "yes" as true; everything else is false.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "1" || value == "true" || value == "yes"
}
