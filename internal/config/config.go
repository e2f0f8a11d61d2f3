// Package config provides configuration loading and validation from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all application configuration for the catalog server.
type Config struct {
	LogLevel          string        // debug, info, warn, error
	ListenAddr        string        // Server listen address (e.g., ":8080")
	DatabasePath      string        // SQLite database path
	MetricsListenAddr string        // Metrics listener address (e.g., "localhost:9090")
	JWTSecret         string        // Required: signing secret for admin bearer tokens
	TokenTTL          time.Duration // Admin token lifetime
	UploadSinkURL     string        // Optional: base URL of the image upload sink (empty = uploads disabled)
	UploadSinkKey     string        // Optional: API key for the upload sink
	AllowedOrigins    []string      // CORS allowed origins
}

// Load parses configuration from environment variables.
// All configuration options except JWT_SECRET have sensible defaults.
func Load() (*Config, error) {
	logLevel := os.Getenv("LOG_LEVEL")
	listenAddr := os.Getenv("LISTEN_ADDR")
	databasePath := os.Getenv("DATABASE_PATH")
	metricsListenAddr := os.Getenv("METRICS_LISTEN_ADDR")
	jwtSecret := os.Getenv("JWT_SECRET")
	tokenTTLStr := os.Getenv("TOKEN_TTL")
	uploadSinkURL := os.Getenv("UPLOAD_SINK_URL")
	uploadSinkKey := os.Getenv("UPLOAD_SINK_KEY")
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")

	if logLevel == "" {
		logLevel = "info"
	}

	if listenAddr == "" {
		listenAddr = ":8080"
	}

	if databasePath == "" {
		databasePath = "/data/dhaka2070.db"
	}

	if metricsListenAddr == "" {
		metricsListenAddr = "localhost:9090"
	}

	tokenTTL := 24 * time.Hour
	if tokenTTLStr != "" {
		parsed, err := time.ParseDuration(tokenTTLStr)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL %q: %w", tokenTTLStr, err)
		}
		tokenTTL = parsed
	}

	origins := []string{"*"}
	if allowedOrigins != "" {
		origins = splitAndTrim(allowedOrigins)
	}

	cfg := &Config{
		LogLevel:          logLevel,
		ListenAddr:        listenAddr,
		DatabasePath:      databasePath,
		MetricsListenAddr: metricsListenAddr,
		JWTSecret:         jwtSecret,
		TokenTTL:          tokenTTL,
		UploadSinkURL:     uploadSinkURL,
		UploadSinkKey:     uploadSinkKey,
		AllowedOrigins:    origins,
	}

	return cfg, nil
}

// Validate checks all configuration constraints.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	return nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
