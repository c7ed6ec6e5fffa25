package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DatabaseURL   string
	SecretKey     string
	TokenTTL      time.Duration
	ServerPort    string
	LogLevel      logrus.Level
	LogFile       string
	SQLDebug      bool
	CORSOrigins   []string
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// Load reads the configuration from the environment, after merging an
// optional .env file from the working directory.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	ttl, err := strconv.Atoi(getEnv("ACCESS_TOKEN_EXPIRE_MINUTES", "30"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be a positive integer")
	}

	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	sqlDebug, err := strconv.ParseBool(getEnv("SQL_DEBUG", "false"))
	if err != nil {
		return nil, fmt.Errorf("SQL_DEBUG: %w", err)
	}

	return &Config{
		DatabaseURL:   getEnv("DATABASE_URL", "postgresql://postgres@localhost:5432/projecthub"),
		SecretKey:     getEnv("SECRET_KEY", "dev-secret-key"),
		TokenTTL:      time.Duration(ttl) * time.Minute,
		ServerPort:    getEnv("SERVER_PORT", "8000"),
		LogLevel:      level,
		LogFile:       getEnv("LOG_FILE", ""),
		SQLDebug:      sqlDebug,
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "*")),
		AdminName:     getEnv("ADMIN_NAME", "Admin User"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@projecthub.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
