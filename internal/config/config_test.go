package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost/app?sslmode=disable")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
	if cfg.OpenAIBaseURL != "https://api.openai.com/v1" {
		t.Errorf("OpenAIBaseURL = %q", cfg.OpenAIBaseURL)
	}
	if cfg.FeedCheckInterval != 30*time.Minute {
		t.Errorf("FeedCheckInterval = %v", cfg.FeedCheckInterval)
	}
	if cfg.SessionTTL != 7*24*time.Hour {
		t.Errorf("SessionTTL = %v", cfg.SessionTTL)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoadRequiresDSN(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without POSTGRES_DSN")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost/app")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("FEED_CHECK_INTERVAL", "10m")
	t.Setenv("SESSION_TTL", "48h")
	t.Setenv("TELEGRAM_CHAT_ID", "12345")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.FeedCheckInterval != 10*time.Minute {
		t.Errorf("FeedCheckInterval = %v", cfg.FeedCheckInterval)
	}
	if cfg.SessionTTL != 48*time.Hour {
		t.Errorf("SessionTTL = %v", cfg.SessionTTL)
	}
	if cfg.TelegramChatID != 12345 {
		t.Errorf("TelegramChatID = %d", cfg.TelegramChatID)
	}
}

func TestLoadRejectsBadDurations(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost/app")
	t.Setenv("FEED_CHECK_INTERVAL", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			HTTPAddr:          ":8080",
			PostgresDSN:       "postgres://localhost/app",
			OpenAITimeout:     30 * time.Second,
			FeedCheckInterval: 30 * time.Minute,
			MaxJobsPerCheck:   10,
			SessionTTL:        24 * time.Hour,
			LogLevel:          "info",
		}
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty dsn", func(c *Config) { c.PostgresDSN = "" }},
		{"empty http addr", func(c *Config) { c.HTTPAddr = "" }},
		{"tiny openai timeout", func(c *Config) { c.OpenAITimeout = time.Millisecond }},
		{"tiny feed interval", func(c *Config) { c.FeedCheckInterval = time.Second }},
		{"zero max jobs", func(c *Config) { c.MaxJobsPerCheck = 0 }},
		{"token without chat id", func(c *Config) { c.TelegramToken = "t"; c.TelegramChatID = 0 }},
		{"tiny session ttl", func(c *Config) { c.SessionTTL = time.Minute }},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
