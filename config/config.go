package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting the service reads from the environment.
type Config struct {
	Port             string
	CredentialsFile  string
	JWTSecret        string
	JWTRefreshSecret string
	LogLevel         string
	CORSOrigins      []string
}

// Load reads .env (when present) and resolves the configuration.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: No .env file found or failed to load")
	}

	cfg := &Config{
		Port:             getenv("PORT", "8080"),
		CredentialsFile:  os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		JWTSecret:        os.Getenv("JWT_SECRET_KEY"),
		JWTRefreshSecret: os.Getenv("JWT_REFRESH_SECRET_KEY"),
		LogLevel:         getenv("LOG_LEVEL", "info"),
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	if cfg.CredentialsFile == "" {
		return nil, fmt.Errorf("environment variable GOOGLE_APPLICATION_CREDENTIALS is not set")
	}
	if cfg.JWTSecret == "" || cfg.JWTRefreshSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY and JWT_REFRESH_SECRET_KEY must be set")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
