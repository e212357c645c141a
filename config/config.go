package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultPlannerURL = "http://localhost:8000/api/plan-trip"

type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	PlannerURL     string
	PlannerTimeout time.Duration // zero means no timeout

	FallbackPlanPath string

	// DatabaseDSN is empty when no database is configured; plans are then
	// archived in memory.
	DatabaseDSN string

	CORSOrigins []string
	SessionTTL  time.Duration
}

// Load reads .env (when present) and the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		GinMode:          os.Getenv("GIN_MODE"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		PlannerURL:       getEnv("PLANNER_URL", defaultPlannerURL),
		FallbackPlanPath: os.Getenv("FALLBACK_PLAN_PATH"),
		DatabaseDSN:      buildDSN(),
		CORSOrigins:      corsOrigins(os.Getenv("FRONTEND_URL")),
	}

	var err error
	if cfg.PlannerTimeout, err = getDuration("PLANNER_TIMEOUT", 0); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 2*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.PlannerTimeout < 0 {
		return Config{}, fmt.Errorf("PLANNER_TIMEOUT must not be negative")
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("SESSION_TTL must be positive")
	}
	return cfg, nil
}

func buildDSN() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	host := os.Getenv("DB_HOST")
	if host == "" {
		return ""
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host,
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_NAME", "tripform"),
		getEnv("DB_SSLMODE", "disable"))
}

func corsOrigins(extra string) []string {
	origins := []string{"http://localhost:5173", "http://localhost:3000"}
	for _, u := range strings.Split(extra, ",") {
		if u = strings.TrimSpace(u); u != "" {
			origins = append(origins, u)
		}
	}
	return origins
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
