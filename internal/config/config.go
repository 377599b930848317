package config

import (
	"os"
	"strconv"
	"time"

	"cinepix/internal/cache"
	"cinepix/internal/external"
	"cinepix/internal/messaging"
)

// Config holds the application configuration
type Config struct {
	Port      string
	GinMode   string
	LogLevel  string
	LogFormat string

	Redis     cache.Config
	NATS      messaging.Config
	Payment   external.PixConfig
	Ticketing external.TicketingConfig
}

// Load reads the configuration from environment variables
func Load() *Config {
	return &Config{
		Port:      getEnv("PORT", "8080"),
		GinMode:   getEnv("GIN_MODE", "debug"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		Redis: cache.Config{
			Addr:      getEnv("REDIS_ADDR", "localhost:6379"),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        getEnvInt("REDIS_DB", 0),
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "cinepix"),
		},

		NATS: messaging.Config{
			URL:       getEnv("NATS_URL", ""),
			ClusterID: getEnv("NATS_CLUSTER_ID", "cinepix"),
			ClientID:  getEnv("NATS_CLIENT_ID", "cinepix-api"),
		},

		Payment: external.PixConfig{
			BaseURL: getEnv("PIX_PROVIDER_URL", "http://localhost:8000"),
			Timeout: time.Duration(getEnvInt("PIX_TIMEOUT_SEC", 30)) * time.Second,
		},

		Ticketing: external.TicketingConfig{
			BaseURL: getEnv("TICKETING_SERVICE_URL", "http://localhost:8000"),
			Timeout: time.Duration(getEnvInt("TICKETING_TIMEOUT_SEC", 30)) * time.Second,
		},
	}
}

// getEnv reads an environment variable or returns the default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an integer environment variable or returns the default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
