// Package config собирает все настройки приложения в одну структуру,
// которая явно передаётся компонентам при создании.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds every tunable the services need. Values come from the
// environment with the defaults below.
type Config struct {
	// Lifecycle / moderation
	ListingExpiryDays      int           // LISTING_EXPIRY_DAYS, default 7
	ListingReminderDays    int           // LISTING_REMINDER_DAYS, default 3
	MaxNotificationsPerDay int           // MAX_NOTIFICATIONS_PER_DAY, default 2
	ComplaintThreshold     int           // COMPLAINT_THRESHOLD, default 3
	BanDuration            time.Duration // BAN_DURATION_DAYS, default 7 days

	// Infrastructure
	BotToken      string
	DatabaseDSN   string
	RedisAddr     string
	RedisPassword string
	HTTPAddr      string
	JWTSecret     string
	AdminKey      string

	// Telegram channels: listings mirror and the blacklist warnings feed.
	MainChannelID      int64
	BlacklistChannelID int64
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		ListingExpiryDays:      envInt("LISTING_EXPIRY_DAYS", 7),
		ListingReminderDays:    envInt("LISTING_REMINDER_DAYS", 3),
		MaxNotificationsPerDay: envInt("MAX_NOTIFICATIONS_PER_DAY", 2),
		ComplaintThreshold:     envInt("COMPLAINT_THRESHOLD", 3),
		BanDuration:            time.Duration(envInt("BAN_DURATION_DAYS", 7)) * 24 * time.Hour,

		BotToken:      os.Getenv("TELEGRAM_BOT_TOKEN"),
		DatabaseDSN:   databaseDSN(),
		RedisAddr:     envStr("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		HTTPAddr:      envStr("HTTP_ADDR", ":8080"),
		JWTSecret:     envStr("JWT_SECRET", "change-me"),
		AdminKey:      os.Getenv("ADMIN_KEY"),

		MainChannelID:      envInt64("MAIN_CHANNEL_ID", 0),
		BlacklistChannelID: envInt64("BLACKLIST_CHANNEL_ID", 0),
	}
}

func databaseDSN() string {
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		return dsn
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		envStr("DB_HOST", "localhost"),
		envStr("DB_USER", "user"),
		envStr("DB_PASSWORD", "password"),
		envStr("DB_NAME", "arendadb"),
		envStr("DB_PORT", "5432"),
	)
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}
