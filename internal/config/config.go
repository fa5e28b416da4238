package config

import (
	"os"
	"runtime"
	"strconv"

	"gomonte/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Engine   EngineConfig
	Database DatabaseConfig
	Server   ServerConfig
}

// EngineConfig holds the default estimation parameters; individual
// runs may override them through the CLI flags or the API request body
type EngineConfig struct {
	RTol      float64
	MaxTrials int64
	BatchSize int
	Workers   int
}

// DatabaseConfig holds database connection settings. An empty URL is
// allowed and selects the in-memory run store.
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Engine: EngineConfig{
			RTol:      getEnvFloatOrDefault("MC_RTOL", 0.01),
			MaxTrials: getEnvInt64OrDefault("MC_MAX_TRIALS", 1_000_000),
			BatchSize: getEnvIntOrDefault("MC_BATCH_SIZE", 500),
			Workers:   getEnvIntOrDefault("MC_WORKERS", runtime.NumCPU()),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Engine.RTol <= 0 {
		return errors.ConfigInvalid("MC_RTOL must be positive")
	}
	if config.Engine.MaxTrials < 1 {
		return errors.ConfigInvalid("MC_MAX_TRIALS must be at least 1")
	}
	if config.Engine.BatchSize < 1 {
		return errors.ConfigInvalid("MC_BATCH_SIZE must be at least 1")
	}
	if config.Engine.Workers < 1 {
		return errors.ConfigInvalid("MC_WORKERS must be at least 1")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT must not be empty")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
