package main

import (
	"fmt"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	Host        string
	Port        int
	Environment string
	LogLevel    string

	// Storage settings
	S3Bucket        string
	S3Region        string
	S3Endpoint      string
	S3AccessKeyID   string
	S3SecretKey     string
	S3PublicBaseURL string

	// Read URL settings
	SignedURLTTL time.Duration
}

// LoadConfig loads configuration from environment variables.
func LoadConfig(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		// Server settings
		Host:        envString(getenv, "SERVER_HOST", "localhost"),
		Port:        envInt(getenv, "SERVER_PORT", 8080),
		Environment: envString(getenv, "ENVIRONMENT", "dev"),
		LogLevel:    envString(getenv, "LOG_LEVEL", "info"),

		// Storage settings
		S3Bucket:        envString(getenv, "AWS_BUCKET_NAME", ""),
		S3Region:        envString(getenv, "AWS_REGION", "us-east-1"),
		S3Endpoint:      envString(getenv, "AWS_ENDPOINT_URL", ""),
		S3AccessKeyID:   envString(getenv, "AWS_ACCESS_KEY_ID", ""),
		S3SecretKey:     envString(getenv, "AWS_SECRET_ACCESS_KEY", ""),
		S3PublicBaseURL: envString(getenv, "PUBLIC_BASE_URL", ""),

		// Read URL settings
		SignedURLTTL: envDuration(getenv, "SIGNED_URL_TTL", time.Hour),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks required settings.
func (c *Config) validate() error {
	if c.S3Bucket == "" {
		return fmt.Errorf("AWS_BUCKET_NAME must be set")
	}
	return nil
}

// Helper functions for loading environment variables with defaults.

func envString(getenv func(string) string, key, defaultValue string) string {
	if value := getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func envInt(getenv func(string) string, key string, defaultValue int) int {
	if value := getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func envDuration(getenv func(string) string, key string, defaultValue time.Duration) time.Duration {
	if value := getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
