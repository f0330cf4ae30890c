// Package config loads runtime settings from the environment (and a .env file
// when present).
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/portfolio/backend/internal/contact"
)

type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Catalog   CatalogConfig
	Contact   ContactConfig
	Inbox     InboxConfig
	RateLimit RateLimitConfig
	Admin     AdminConfig
}

type ServerConfig struct {
	Port        string
	FrontendURL string
}

type LogConfig struct {
	Level  string
	Format string // "json" or "text"
}

type CatalogConfig struct {
	// Path of an external manifest; empty uses the compiled-in catalog.
	Path string
}

type ContactConfig struct {
	// EndpointURL receives submissions. Empty is allowed at startup; every
	// submit then fails with contact.ErrEndpointNotConfigured.
	EndpointURL      string
	MinMessageLength int
	Timeout          time.Duration
}

// Inbox drivers.
const (
	InboxDisabled = ""
	InboxPostgres = "postgres"
	InboxSQLite   = "sqlite"
)

type InboxConfig struct {
	Driver      string
	DatabaseURL string
	SQLitePath  string
}

// DSN returns the connection string for the selected driver.
func (c InboxConfig) DSN() string {
	if c.Driver == InboxSQLite {
		return c.SQLitePath
	}
	return c.DatabaseURL
}

// Enabled reports whether an inbox store is configured.
func (c InboxConfig) Enabled() bool { return c.Driver != InboxDisabled }

type RateLimitConfig struct {
	// ContactPerMinute caps contact and inbox posts per client IP.
	ContactPerMinute int
	// RedisURL selects the shared Redis store; empty keeps counters in memory.
	RedisURL string
}

type AdminConfig struct {
	Token         string
	SessionSecret string
}

// Load reads the .env file if present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to read .env file", "error", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment without touching .env.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Catalog: CatalogConfig{
			Path: os.Getenv("CATALOG_PATH"),
		},
		Contact: ContactConfig{
			EndpointURL:      os.Getenv("CONTACT_ENDPOINT_URL"),
			MinMessageLength: getEnvAsInt("CONTACT_MIN_MESSAGE_LENGTH", contact.DefaultMinMessageLength),
			Timeout:          getEnvAsDuration("CONTACT_TIMEOUT", contact.DefaultTimeout),
		},
		Inbox: InboxConfig{
			Driver:      strings.ToLower(os.Getenv("INBOX_DRIVER")),
			DatabaseURL: os.Getenv("DATABASE_URL"),
			SQLitePath:  getEnv("SQLITE_PATH", "inbox.db"),
		},
		RateLimit: RateLimitConfig{
			ContactPerMinute: getEnvAsInt("CONTACT_RATE_LIMIT", 5),
			RedisURL:         os.Getenv("REDIS_URL"),
		},
		Admin: AdminConfig{
			Token:         os.Getenv("ADMIN_TOKEN"),
			SessionSecret: os.Getenv("SESSION_SECRET"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later in surprising ways.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.Log.Format)
	}
	if c.Contact.MinMessageLength < 1 {
		return fmt.Errorf("CONTACT_MIN_MESSAGE_LENGTH must be positive, got %d", c.Contact.MinMessageLength)
	}
	if c.Contact.Timeout <= 0 {
		return fmt.Errorf("CONTACT_TIMEOUT must be positive, got %s", c.Contact.Timeout)
	}
	if c.RateLimit.ContactPerMinute < 1 {
		return fmt.Errorf("CONTACT_RATE_LIMIT must be positive, got %d", c.RateLimit.ContactPerMinute)
	}

	switch c.Inbox.Driver {
	case InboxDisabled:
	case InboxPostgres:
		if c.Inbox.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when INBOX_DRIVER=postgres")
		}
	case InboxSQLite:
		if c.Inbox.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required when INBOX_DRIVER=sqlite")
		}
	default:
		return fmt.Errorf("INBOX_DRIVER must be postgres, sqlite or empty, got %q", c.Inbox.Driver)
	}

	if c.Inbox.Driver != InboxDisabled && c.Admin.Token == "" {
		return fmt.Errorf("ADMIN_TOKEN is required when the inbox is enabled")
	}
	if c.Admin.Token != "" && len(c.Admin.SessionSecret) < 32 {
		return fmt.Errorf("SESSION_SECRET must be at least 32 bytes when ADMIN_TOKEN is set")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", valueStr, "default", defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", valueStr, "default", defaultValue)
		return defaultValue
	}
	return value
}
