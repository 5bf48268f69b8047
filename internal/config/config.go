package config

import (
	"os"
	"strconv"
	"time"

	"bedboard/pkg/database"
	redisx "bedboard/pkg/redis"
)

// Config for the bedboard HTTP API.
type Config struct {
	HTTP struct {
		Addr string
	}
	DBEnabled bool
	Database  database.Config
	Redis     redisx.Config
	Log       struct {
		Level  string
		Format string
	}
	Publisher PublisherConfig
}

// PublisherConfig controls the snapshot broadcast loop and its optional
// sinks. Both sinks are disabled by default.
type PublisherConfig struct {
	Interval time.Duration

	StreamEnabled bool
	StreamName    string

	WebhookEnabled bool
	WebhookURL     string
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	// Default to true for local dev: if the DB is unavailable, bedboard
	// falls back to the in-memory store so the API still answers.
	cfg.DBEnabled = getEnv("DB_ENABLED", "true") == "true"
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "bedboard")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = parseInt(getEnv("DB_MAX_CONNS", "10"), 10)
	cfg.Database.MaxIdle = parseInt(getEnv("DB_MAX_IDLE", "5"), 5)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = 0

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	// Matches the 5s poll of the original live-update feed.
	cfg.Publisher.Interval = time.Duration(parseInt(getEnv("PUBLISH_INTERVAL_SECONDS", "5"), 5)) * time.Second
	cfg.Publisher.StreamEnabled = getEnv("PUBLISH_STREAM_ENABLED", "false") == "true"
	cfg.Publisher.StreamName = getEnv("PUBLISH_STREAM_NAME", "bed-updates")
	cfg.Publisher.WebhookEnabled = getEnv("PUBLISH_WEBHOOK_ENABLED", "false") == "true"
	cfg.Publisher.WebhookURL = getEnv("PUBLISH_WEBHOOK_URL", "")

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
