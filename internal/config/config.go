package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// HTTP server
	HTTPAddr string

	// Database
	PostgresDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Completion provider
	OpenAIBaseURL string
	OpenAIAPIKey  string
	OpenAITimeout time.Duration

	// Upwork marketplace (optional, feed falls back to the curated catalog)
	UpworkAccessToken string

	// Job feed checker
	FeedCheckInterval time.Duration
	MaxJobsPerCheck   int

	// Telegram notifications (optional)
	TelegramToken  string
	TelegramChatID int64

	// Sessions
	SessionTTL time.Duration

	// Logging
	LogLevel string
}

func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		HTTPAddr:          ":8080",
		OpenAIBaseURL:     "https://api.openai.com/v1",
		OpenAITimeout:     30 * time.Second,
		FeedCheckInterval: 30 * time.Minute,
		MaxJobsPerCheck:   10,
		SessionTTL:        7 * 24 * time.Hour,
		LogLevel:          "info",
		RedisDB:           0,
	}

	cfg.PostgresDSN = os.Getenv("POSTGRES_DSN")
	if cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("POSTGRES_DSN is required")
	}

	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		cfg.HTTPAddr = addr
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.RedisAddr = addr
	} else {
		cfg.RedisAddr = "localhost:6379"
	}

	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		db, err := strconv.Atoi(redisDB)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
	}

	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")

	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		cfg.OpenAIBaseURL = baseURL
	}

	if timeout := os.Getenv("OPENAI_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid OPENAI_TIMEOUT: %w", err)
		}
		cfg.OpenAITimeout = d
	}

	cfg.UpworkAccessToken = os.Getenv("UPWORK_ACCESS_TOKEN")

	if interval := os.Getenv("FEED_CHECK_INTERVAL"); interval != "" {
		d, err := time.ParseDuration(interval)
		if err != nil {
			return nil, fmt.Errorf("invalid FEED_CHECK_INTERVAL: %w", err)
		}
		cfg.FeedCheckInterval = d
	}

	if maxJobs := os.Getenv("MAX_JOBS_PER_CHECK"); maxJobs != "" {
		n, err := strconv.Atoi(maxJobs)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_JOBS_PER_CHECK: %w", err)
		}
		cfg.MaxJobsPerCheck = n
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}

	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
		}
		cfg.SessionTTL = d
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = logLevel
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.PostgresDSN == "" {
		return fmt.Errorf("postgres DSN is empty")
	}

	if c.HTTPAddr == "" {
		return fmt.Errorf("http address is empty")
	}

	if c.OpenAITimeout < time.Second {
		return fmt.Errorf("openai timeout too small: %v", c.OpenAITimeout)
	}

	if c.FeedCheckInterval < time.Minute {
		return fmt.Errorf("feed check interval too small: %v", c.FeedCheckInterval)
	}

	if c.MaxJobsPerCheck < 1 || c.MaxJobsPerCheck > 100 {
		return fmt.Errorf("max jobs per check must be between 1 and 100")
	}

	if c.TelegramToken != "" && c.TelegramChatID == 0 {
		return fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}

	if c.SessionTTL < time.Hour {
		return fmt.Errorf("session TTL too small: %v", c.SessionTTL)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	return nil
}
