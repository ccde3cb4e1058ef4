package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Feed      FeedConfig
	Scheduler SchedulerConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// FeedConfig holds NAV feed defaults; the stored feed_config row overrides
// the URL once staff have configured one.
type FeedConfig struct {
	DefaultURL string
	TokenKey   string // base64 fernet key for encrypting the stored feed token
}

// SchedulerConfig holds the daily import trigger configuration.
type SchedulerConfig struct {
	Schedule string
	Timezone string
	Enabled  bool
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/nav_tracker.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Feed: FeedConfig{
			DefaultURL: getEnv("FEED_URL", "https://www.amfiindia.com/spages/NAVAll.txt"),
			TokenKey:   getEnv("FEED_TOKEN_KEY", ""),
		},
		Scheduler: SchedulerConfig{
			Schedule: getEnv("IMPORT_SCHEDULE", "0 21 * * *"),
			Timezone: getEnv("IMPORT_TIMEZONE", "Asia/Kolkata"),
			Enabled:  getEnv("IMPORT_ENABLED", "true") == "true",
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
