package config

import (
	"os"
	"strings"
	"time"
)

// Config contains all runtime configuration loaded from environment variables.
type Config struct {
	HTTPAddr        string
	RedisURL        string
	LogLevel        string
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment, falling back to defaults.
func Load() Config {
	return Config{
		HTTPAddr:        envString("POLL_HTTP_ADDR", "0.0.0.0:8080"),
		RedisURL:        envString("REDIS_URL", "redis://localhost:6379"),
		LogLevel:        envString("POLL_LOG_LEVEL", "info"),
		ShutdownTimeout: envDuration("POLL_SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

func envString(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func envDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
