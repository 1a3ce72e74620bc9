package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration, loaded from the environment.
type Config struct {
	Server  ServerConfig
	Planner PlannerConfig
}

// ServerConfig covers the HTTP listener and storage.
type ServerConfig struct {
	Port string
	DSN  string
}

// PlannerConfig configures the external path-generation service.
// An empty APIKey disables the remote call; generation then falls back
// to the built-in task sets.
type PlannerConfig struct {
	APIKey   string
	Model    string
	Timeout  time.Duration
	MaxTasks int
}

// Load builds a Config from environment variables with defaults.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8008"),
			DSN:  getEnv("MENTICS_DB", "mentics.db"),
		},
		Planner: PlannerConfig{
			APIKey:   getEnv("GEMINI_API_KEY", ""),
			Model:    getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Timeout:  getEnvAsDuration("PLANNER_TIMEOUT", 30*time.Second),
			MaxTasks: getEnvAsInt("PLANNER_MAX_TASKS", 5),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
