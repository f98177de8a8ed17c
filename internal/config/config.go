package config

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, loaded from the environment with
// an optional .env file for local development.
type Config struct {
	Environment string
	Port        string
	LogLevel    slog.Level

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis (session mirror + course cache). Empty disables caching.
	RedisURL string

	// Token secrets and lifetimes. The session mirror deliberately outlives
	// the refresh token (7d vs 3d).
	AccessTokenSecret  string
	RefreshTokenSecret string
	ActivationSecret   string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	ActivationTokenTTL time.Duration
	SessionTTL         time.Duration

	// Public course projection cache lifetime.
	CourseCacheTTL time.Duration

	// SMTP for transactional mail.
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	MailFrom     string

	// Kafka brokers for domain events. Empty disables publishing.
	KafkaBrokers []string
	EventsTopic  string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8000"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "lms"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisURL: getEnv("REDIS_URL", ""),

		AccessTokenSecret:  getEnv("ACCESS_TOKEN_SECRET", ""),
		RefreshTokenSecret: getEnv("REFRESH_TOKEN_SECRET", ""),
		ActivationSecret:   getEnv("ACTIVATION_SECRET", ""),
		AccessTokenTTL:     getDurationEnv("ACCESS_TOKEN_TTL_MINUTES", 5) * time.Minute,
		RefreshTokenTTL:    getDurationEnv("REFRESH_TOKEN_TTL_MINUTES", 3*24*60) * time.Minute,
		ActivationTokenTTL: getDurationEnv("ACTIVATION_TOKEN_TTL_MINUTES", 5) * time.Minute,
		SessionTTL:         getDurationEnv("SESSION_TTL_MINUTES", 7*24*60) * time.Minute,
		CourseCacheTTL:     getDurationEnv("COURSE_CACHE_TTL_MINUTES", 7*24*60) * time.Minute,

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		MailFrom:     getEnv("MAIL_FROM", "no-reply@pensamentocomputacional.dev"),

		EventsTopic: getEnv("EVENTS_TOPIC", "lms.events"),
	}

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = splitAndTrim(brokers)
	}

	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" || cfg.ActivationSecret == "" {
		if cfg.Environment == "production" {
			return nil, fmt.Errorf("token secrets must be set in production")
		}
		// Development fallback so the service starts out of the box.
		if cfg.AccessTokenSecret == "" {
			cfg.AccessTokenSecret = "dev-access-secret"
		}
		if cfg.RefreshTokenSecret == "" {
			cfg.RefreshTokenSecret = "dev-refresh-secret"
		}
		if cfg.ActivationSecret == "" {
			cfg.ActivationSecret = "dev-activation-secret"
		}
	}

	return cfg, nil
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultMinutes int) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if minutes, err := strconv.Atoi(value); err == nil && minutes > 0 {
			return time.Duration(minutes)
		}
	}
	return time.Duration(defaultMinutes)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
