package app

import (
	"os"
	"strconv"
	"time"

	"go-attendance/internal/employee"
	"go-attendance/internal/notification"
)

type Config struct {
	AppEnv                 string
	LogLevel               string
	Port                   string
	DBHost                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBPort                 string
	DBSSLMode              string
	RedisAddr              string
	KafkaBroker            string
	JWTSecret              string
	AdminName              string
	AdminEmail             string
	FanoutConcurrency      int
	RosterCacheTTL         time.Duration
	AttendanceReminderHour int
	WorkerPollInterval     time.Duration
	ConnectRetries         int

	// Invalid lists keys whose values could not be parsed and were defaulted.
	Invalid []string
}

// LoadConfig reads the process environment. Malformed numbers fall back to
// defaults and are reported in Config.Invalid.
func LoadConfig() Config {
	l := &loader{}
	cfg := Config{
		AppEnv:                 envOr("APP_ENV", "development"),
		LogLevel:               envOr("LOG_LEVEL", "info"),
		Port:                   envOr("PORT", "3000"),
		DBHost:                 os.Getenv("DB_HOST"),
		DBUser:                 os.Getenv("DB_USER"),
		DBPassword:             os.Getenv("DB_PASSWORD"),
		DBName:                 os.Getenv("DB_NAME"),
		DBPort:                 envOr("DB_PORT", "5432"),
		DBSSLMode:              envOr("DB_SSLMODE", "disable"),
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		KafkaBroker:            os.Getenv("KAFKA_BROKER"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		AdminName:              envOr("ADMIN_NAME", "Administrator"),
		AdminEmail:             envOr("ADMIN_EMAIL", "admin@company.local"),
		FanoutConcurrency:      l.int("FANOUT_CONCURRENCY", notification.DefaultFanoutConcurrency),
		RosterCacheTTL:         l.duration("ROSTER_CACHE_TTL", employee.DefaultRosterTTL),
		AttendanceReminderHour: l.int("ATTENDANCE_REMINDER_HOUR", 10),
		WorkerPollInterval:     l.duration("WORKER_POLL_INTERVAL", 3*time.Second),
		ConnectRetries:         l.int("CONNECT_RETRIES", 5),
	}
	if cfg.AttendanceReminderHour > 23 {
		l.invalid = append(l.invalid, "ATTENDANCE_REMINDER_HOUR")
		cfg.AttendanceReminderHour = 10
	}
	cfg.Invalid = l.invalid
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

type loader struct {
	invalid []string
}

func (l *loader) int(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		l.invalid = append(l.invalid, key)
		return fallback
	}
	return n
}

func (l *loader) duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		l.invalid = append(l.invalid, key)
		return fallback
	}
	return d
}
