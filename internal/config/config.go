package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
// Every field has a sensible default; DATABASE_URL and TOKEN_SECRET are required.
type Config struct {
	// Server
	HTTPPort        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// Database
	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32

	// Audit policy: how long past its scheduled time an item may sit
	// before the audit calls it late, and how many scheduled items a
	// single audit will look at.
	GracePeriod   time.Duration
	MaxAuditItems int

	// Transitions
	DefaultBump time.Duration
	TokenSecret string
	TokenTTL    time.Duration

	// Rate limiting: maximum mutations per second per transition kind
	RateLimit int

	// Background sweep interval for the advisory audit worker
	SweepInterval time.Duration
}

func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	secret := os.Getenv("TOKEN_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("TOKEN_SECRET is required")
	}

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		ReadTimeout:     getDuration("READ_TIMEOUT", 5*time.Second),
		WriteTimeout:    getDuration("WRITE_TIMEOUT", 10*time.Second),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		DatabaseURL: dbURL,
		DBMaxConns:  int32(getInt("DB_MAX_CONNS", 25)),
		DBMinConns:  int32(getInt("DB_MIN_CONNS", 5)),

		GracePeriod:   getDuration("GRACE_PERIOD", 5*time.Minute),
		MaxAuditItems: getInt("MAX_AUDIT_ITEMS", 200),

		DefaultBump: getDuration("DEFAULT_BUMP", 60*time.Minute),
		TokenSecret: secret,
		TokenTTL:    getDuration("TOKEN_TTL", 15*time.Minute),

		RateLimit: getInt("RATE_LIMIT_PER_KIND", 10),

		SweepInterval: getDuration("SWEEP_INTERVAL", time.Minute),
	}, nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
