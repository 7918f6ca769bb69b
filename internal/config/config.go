package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the service configuration read from the environment.
type Config struct {
	Port         string
	GinMode      string
	LogLevel     string
	DatabaseURL  string
	EnableDB     bool
	MaxBodyBytes int64
	MaxBatch     int
	BatchWorkers int
	CORSOrigins  []string
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "release"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		EnableDB:    strings.EqualFold(getEnv("ENABLE_DB", "false"), "true"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
	}

	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		return nil, fmt.Errorf("GIN_MODE must be one of debug, release, test, got %q", cfg.GinMode)
	}
	if cfg.EnableDB && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when ENABLE_DB=true")
	}
	if len(cfg.CORSOrigins) == 0 {
		return nil, fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}

	var err error
	if cfg.MaxBodyBytes, err = positiveInt64("MAX_BODY_BYTES", 1<<20); err != nil {
		return nil, err
	}
	maxBatch, err := positiveInt64("MAX_BATCH", 100)
	if err != nil {
		return nil, err
	}
	workers, err := positiveInt64("BATCH_WORKERS", 4)
	if err != nil {
		return nil, err
	}
	cfg.MaxBatch = int(maxBatch)
	cfg.BatchWorkers = int(workers)

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func positiveInt64(key string, fallback int64) (int64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", key, v)
	}
	return v, nil
}

func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
