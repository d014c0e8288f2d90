package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the prediction service.
type Config struct {
	HTTPPort    string
	ModelPath   string
	RateLimit   int // /predict requests per minute per client
	CORSOrigin  string
	Environment string
	LogLevel    string
	LogFormat   string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8000"),
		ModelPath:   getEnv("MODEL_PATH", "model/model.json"),
		RateLimit:   getEnvInt("RATE_LIMIT", 10),
		CORSOrigin:  getEnv("CORS_ORIGINS", "*"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
	}
}

// HTTPAddress returns the full HTTP listen address.
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.HTTPPort)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
