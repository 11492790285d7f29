package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config keeps runtime settings for the bot.
type Config struct {
	BotToken       string `yaml:"bot_token"`
	DatabaseURL    string `yaml:"database_url"`
	Timezone       string `yaml:"timezone"`
	TaskDigestTime string `yaml:"task_digest_time"`
	ReminderTime   string `yaml:"reminder_time"`
}

// Load reads the optional YAML config file named by CONFIG_FILE, then
// environment variables on top (with .env support), with sane defaults.
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	var cfg Config
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.BotToken = getEnv("BOT_TOKEN", cfg.BotToken)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.Timezone = getEnv("TIMEZONE", cfg.Timezone)
	cfg.TaskDigestTime = getEnv("TASK_DIGEST_TIME", cfg.TaskDigestTime)
	cfg.ReminderTime = getEnv("REMINDER_TIME", cfg.ReminderTime)

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "organizer.db"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Europe/Moscow"
	}
	if cfg.TaskDigestTime == "" {
		cfg.TaskDigestTime = "20:00"
	}
	if cfg.ReminderTime == "" {
		cfg.ReminderTime = "09:00"
	}

	if cfg.BotToken == "" {
		return cfg, fmt.Errorf("BOT_TOKEN is required")
	}
	for _, value := range []string{cfg.TaskDigestTime, cfg.ReminderTime} {
		if _, err := time.Parse("15:04", value); err != nil {
			return cfg, fmt.Errorf("invalid time %q, expected HH:MM", value)
		}
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return cfg, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	return cfg, nil
}

// Location resolves the configured time zone. Load validates it, so a
// failure here only happens on a hand-built Config and falls back to UTC.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}
