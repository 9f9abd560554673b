// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs to start. All of it comes from
// environment variables, with a .env file as a development convenience.
type Config struct {
	Port      int
	DBPath    string
	JWTSecret string
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first if present; real environment variables
// win over it.
//
// JWT_SECRET has no default on purpose — a guessable fallback secret would
// make every token forgeable. The server refuses to start without it.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		Port:      8080,
		DBPath:    getEnv("DB_PATH", "data/reviewhub.db"),
		JWTSecret: os.Getenv("JWT_SECRET"),
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("config: invalid PORT %q: %w", portStr, err)
		}
		cfg.Port = port
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET must be set")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
