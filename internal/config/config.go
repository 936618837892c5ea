package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Pricing  PricingConfig
	Gemini   GeminiConfig
	Secrets  SecretsConfig
	SeedDemo bool
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration.
// The default ":memory:" keeps the ledger in process memory; durability
// across restarts is not a goal of this service.
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// PricingConfig holds price feed configuration. SheetURL is the public CSV
// export URL of the quote spreadsheet; when empty, the simulated source is
// used. Schedule is a cron expression for periodic refreshes; empty disables
// the scheduler. Timeout bounds one refresh, after which it counts as a
// failure and the ledger is left untouched.
type PricingConfig struct {
	SheetURL string
	Schedule string
	Timeout  time.Duration
}

// GeminiConfig holds the Gemini API configuration used by the smart import
// parser and the advisory chat.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// SecretsConfig holds the fernet key used to encrypt the stored Gemini API
// key at rest. Empty disables the settings endpoint.
type SecretsConfig struct {
	FernetKey string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	timeoutSeconds, err := strconv.Atoi(getEnv("PRICE_TIMEOUT_SECONDS", "15"))
	if err != nil || timeoutSeconds <= 0 {
		timeoutSeconds = 15
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", ":memory:"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Pricing: PricingConfig{
			SheetURL: getEnv("PRICE_SHEET_URL", ""),
			Schedule: getEnv("PRICE_REFRESH_SCHEDULE", ""),
			Timeout:  time.Duration(timeoutSeconds) * time.Second,
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Secrets: SecretsConfig{
			FernetKey: getEnv("FERNET_KEY", ""),
		},
		SeedDemo: getEnv("SEED_DEMO_DATA", "false") == "true",
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
