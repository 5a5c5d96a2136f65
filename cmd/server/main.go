package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/frencoae/upwork-responder/internal/ai"
	"github.com/frencoae/upwork-responder/internal/auth"
	"github.com/frencoae/upwork-responder/internal/config"
	"github.com/frencoae/upwork-responder/internal/feed"
	"github.com/frencoae/upwork-responder/internal/jobs"
	"github.com/frencoae/upwork-responder/internal/logger"
	"github.com/frencoae/upwork-responder/internal/notify"
	"github.com/frencoae/upwork-responder/internal/proposal"
	"github.com/frencoae/upwork-responder/internal/server"
	"github.com/frencoae/upwork-responder/internal/settings"
	"github.com/frencoae/upwork-responder/internal/storage/postgres"
	"github.com/frencoae/upwork-responder/internal/storage/redis"

	"go.uber.org/zap"
)

const uploadDir = "uploads/profiles"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting proposal assistant",
		zap.String("log_level", cfg.LogLevel),
		zap.String("http_addr", cfg.HTTPAddr),
	)

	log.Info("connecting to PostgreSQL...")
	store, err := postgres.New(cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := store.Migrate(ctx); err != nil {
		log.Fatal("failed to migrate schema", zap.Error(err))
	}

	log.Info("connecting to Redis...")
	cache, err := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
	if err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer cache.Close()

	var provider ai.Provider
	if cfg.OpenAIAPIKey != "" {
		provider = ai.NewOpenAIClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAITimeout, log)
		log.Info("completion provider configured", zap.String("base_url", cfg.OpenAIBaseURL))
	} else {
		provider = ai.NewDisabled()
		log.Warn("no API key configured, generation runs in fallback mode")
	}

	var catalog jobs.Catalog
	if cfg.UpworkAccessToken != "" {
		catalog = jobs.NewUpworkClient("https://www.upwork.com/api", cfg.UpworkAccessToken, cfg.OpenAITimeout, log)
		log.Info("upwork marketplace client configured")
	} else {
		catalog = jobs.NewMockCatalog()
		log.Info("using curated development catalog")
	}

	var notifier notify.Notifier
	if cfg.TelegramToken != "" {
		notifier, err = notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID, log)
		if err != nil {
			log.Fatal("failed to create telegram notifier", zap.Error(err))
		}
	} else {
		notifier = notify.NewNop()
	}

	authManager := auth.NewManager(store, cache, cfg.SessionTTL, log)
	resolver := settings.NewResolver(store, log)
	generator := proposal.NewGenerator(provider, cfg.OpenAITimeout, log)
	tagger := proposal.NewRuleTagger()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	checker := feed.New(store, cache, catalog, resolver, notifier, cfg.FeedCheckInterval, cfg.MaxJobsPerCheck, log)
	if err := checker.Start(ctx); err != nil {
		log.Fatal("failed to start feed checker", zap.Error(err))
	}
	defer checker.Stop()

	srv := server.New(cfg.HTTPAddr, server.Deps{
		Auth:      authManager,
		Proposals: store,
		Users:     store,
		Limiter:   cache,
		Resolver:  resolver,
		Generator: generator,
		Tagger:    tagger,
		Catalog:   catalog,
		UploadDir: uploadDir,
	}, log)

	if err := srv.Start(ctx); err != nil {
		log.Error("http server stopped with error", zap.Error(err))
	}

	log.Info("shutting down gracefully...")
	log.Info("server stopped")
}
