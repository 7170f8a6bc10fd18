// Package config loads server settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the server's runtime settings
type Config struct {
	// Host is the listen address
	Host string

	// Port is the listen port
	Port string

	// DatasetPath is the JSON dataset file used when Redis is not
	// configured
	DatasetPath string

	// RedisAddr enables the Redis-backed dataset store when non-empty
	RedisAddr string

	// RedisPassword is the optional Redis password
	RedisPassword string

	// LogLevel is a zerolog level name (debug, info, warn, error)
	LogLevel string

	// BankSeed seeds the question sampler; 0 means time-based
	BankSeed int64
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load() (*Config, error) {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		Host:          getEnv("HOST", "0.0.0.0"),
		Port:          getEnv("PORT", "8080"),
		DatasetPath:   getEnv("DATASET_PATH", "data/submissions.json"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	if raw := getEnv("BANK_SEED", ""); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid BANK_SEED %q: %w", raw, err)
		}
		cfg.BankSeed = seed
	}

	return cfg, nil
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
