package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/northarcade/gameauth/internal/auth/mail"
	"github.com/northarcade/gameauth/internal/auth/service"
	"github.com/northarcade/gameauth/internal/auth/session"
)

type Config struct {
	DatabaseFile string // Optional: path to SQLite database file (default: ./gameauth.db)

	SMTP mail.SMTPConfig // Required for real deployments; see LoadConfig defaults

	SessionTTL     time.Duration // Optional: lifetime of issued session tokens (default: 24h)
	CodeTTL        time.Duration // Optional: lifetime of emailed codes (default: 15m)
	ResendCooldown time.Duration // Optional: minimum gap between code sends (default: 60s)
	MinPasswordLen int           // Optional: password length floor (default: 8)
	MaxImageBytes  int           // Optional: profile image size ceiling (default: 256 KiB)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		DatabaseFile: getEnvOrDefault("AUTH_DATABASE_FILE", "gameauth.db"),

		SMTP: mail.SMTPConfig{
			Host:     getEnvOrDefault("AUTH_SMTP_HOST", "localhost"),
			Port:     getEnvIntOrDefault("AUTH_SMTP_PORT", 587),
			Username: os.Getenv("AUTH_SMTP_USERNAME"),
			Password: os.Getenv("AUTH_SMTP_PASSWORD"),
			From:     getEnvOrDefault("AUTH_SMTP_FROM", "noreply@localhost"),
		},

		SessionTTL:     getEnvDurationOrDefault("AUTH_SESSION_TTL", session.DefaultTTL),
		CodeTTL:        getEnvMinutesOrDefault("AUTH_CODE_TTL_MIN", service.DefaultCodeTTL),
		ResendCooldown: getEnvSecondsOrDefault("AUTH_RESEND_COOLDOWN_SEC", service.DefaultResendCooldown),
		MinPasswordLen: getEnvIntOrDefault("AUTH_MIN_PASSWORD_LEN", service.DefaultMinPasswordLen),
		MaxImageBytes:  getEnvIntOrDefault("AUTH_MAX_IMAGE_BYTES", service.DefaultMaxImageBytes),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil && intValue >= 0 {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil && duration > 0 {
		return duration
	}

	return defaultValue
}

// getEnvMinutesOrDefault reads a plain integer number of minutes. Blank,
// unparsable, and non-positive values all fall back to the default.
func getEnvMinutesOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}

	if minutes, err := strconv.Atoi(value); err == nil && minutes > 0 {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

// getEnvSecondsOrDefault reads a plain integer number of seconds with the
// same fallback rules as getEnvMinutesOrDefault.
func getEnvSecondsOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}

	if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
