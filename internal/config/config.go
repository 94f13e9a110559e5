package config

import (
	"fmt"
	"os"
)

// Config holds all runtime configuration for the ChatWii backend.
// Values come from environment variables; cmd/server loads a .env file
// first via godotenv.
type Config struct {
	Port        string
	Environment string

	DatabaseURL string

	RedisHost     string
	RedisPort     string
	RedisPassword string

	JWTSecret []byte

	AWSRegion  string
	AWSBucket  string
	CDNBaseURL string

	LogLevel string
	LogFile  string
}

// Load reads configuration from the environment.
// JWT_SECRET is required - everything else has a default or is optional.
func Load() (*Config, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	cfg := &Config{
		Port:          getEnvOrDefault("PORT", "8080"),
		Environment:   getEnvOrDefault("ENVIRONMENT", "development"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisHost:     getEnvOrDefault("REDIS_HOST", "localhost"),
		RedisPort:     getEnvOrDefault("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     []byte(jwtSecret),
		AWSRegion:     getEnvOrDefault("AWS_REGION", "us-east-1"),
		AWSBucket:     os.Getenv("AWS_BUCKET"),
		CDNBaseURL:    os.Getenv("CDN_BASE_URL"),
		LogLevel:      getEnvOrDefault("LOG_LEVEL", "info"),
		LogFile:       getEnvOrDefault("LOG_FILE", "chatwii.log"),
	}

	return cfg, nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
