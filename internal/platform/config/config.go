package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Addr                string
	DatabaseURL         string
	JWTSecret           string
	FrontendDir         string
	MigrationsDir       string
	Environment         string
	SeedManagerName     string
	SeedManagerEmail    string
	SeedManagerPassword string
	SeedManagerDept     string
	RunMigrations       bool
	RunSeed             bool
	MaxBodyBytes        int64
	RateLimitPerMinute  int
	MetricsEnabled      bool
}

func Load() Config {
	return Config{
		Addr:                getEnv("APP_ADDR", ":4000"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		FrontendDir:         getEnv("FRONTEND_DIR", "frontend"),
		MigrationsDir:       getEnv("MIGRATIONS_DIR", "migrations"),
		Environment:         getEnv("APP_ENV", "development"),
		SeedManagerName:     getEnv("SEED_MANAGER_NAME", "Demo Manager"),
		SeedManagerEmail:    getEnv("SEED_MANAGER_EMAIL", ""),
		SeedManagerPassword: getEnv("SEED_MANAGER_PASSWORD", ""),
		SeedManagerDept:     getEnv("SEED_MANAGER_DEPARTMENT", "Engineering"),
		RunMigrations:       getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:             getEnvBool("RUN_SEED", true),
		MaxBodyBytes:        int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		RateLimitPerMinute:  getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		MetricsEnabled:      getEnvBool("METRICS_ENABLED", true),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if c.RunSeed && strings.TrimSpace(c.SeedManagerPassword) == "" {
			return fmt.Errorf("SEED_MANAGER_PASSWORD must be set or RUN_SEED disabled in production")
		}
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	return nil
}
