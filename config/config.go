package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Public base URL used in verification email links.
	PublicURL string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Object storage
	S3Bucket  string
	AWSRegion string

	// CORS
	AllowedOrigins []string
}

// LoadConfig builds a Config from environment variables, falling back to
// Docker secret files for sensitive values, and validates the result for
// the current environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerHost: envOr("SERVER_HOST", "0.0.0.0"),
		ServerPort: envOr("SERVER_PORT", "3000"),
		PublicURL:  envOr("PUBLIC_URL", "http://localhost:3000"),

		DBHost:    envOr("DB_HOST", "localhost"),
		DBPort:    envOr("DB_PORT", "5432"),
		DBUser:    sensitive("DB_USER", "db_user"),
		DBName:    envOr("DB_NAME", "foodies"),
		DBSSLMode: envOr("DB_SSL_MODE", "disable"),

		RedisHost: envOr("REDIS_HOST", "localhost"),
		RedisPort: envOr("REDIS_PORT", "6379"),
		RedisURL:  os.Getenv("REDIS_URL"),
		RedisDB:   0,

		S3Bucket:  envOr("S3_BUCKET_NAME", "foodies-media"),
		AWSRegion: envOr("AWS_REGION", "us-east-1"),

		AllowedOrigins: strings.Split(envOr("ALLOWED_ORIGINS", "http://localhost:5173"), ","),
	}

	cfg.DBPassword = sensitive("DB_PASSWORD", "db_password")
	cfg.RedisPassword = sensitive("REDIS_PASSWORD", "redis_password")
	cfg.JWTSecret = sensitive("JWT_SECRET", "jwt_secret")

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// envOr reads an environment variable with a default.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// sensitive reads a value from the environment first and falls back to a
// Docker secret file. CI sets plain environment variables; development and
// production mount secrets under SECRETS_DIR (default /run/secrets).
func sensitive(envKey, secretName string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return readSecret(secretName)
}

// readSecret reads a Docker secret from the secrets directory.
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
