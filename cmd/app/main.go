package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"crystal-petrol-bot/internal/config"
	"crystal-petrol-bot/internal/conversation"
	"crystal-petrol-bot/internal/domain/ports/adapter"
	"crystal-petrol-bot/internal/domain/ports/repository"
	tele "crystal-petrol-bot/internal/infra/adapters/telegram"
	pg "crystal-petrol-bot/internal/infra/db/postgres"
	"crystal-petrol-bot/internal/infra/export"
	"crystal-petrol-bot/internal/infra/logging"
	"crystal-petrol-bot/internal/infra/metrics"
	red "crystal-petrol-bot/internal/infra/redis"
	"crystal-petrol-bot/internal/infra/session"
	"crystal-petrol-bot/internal/infra/web"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, noop extras)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	if err := pg.InitSchema(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("schema")
	}

	// ---- Repositories ----
	userRepo := pg.NewPostgresUserRepo(pool)
	ratingRepo := pg.NewPostgresRatingRepo(pool)

	// ---- Sessions (and optional rate limiting) ----
	var sessions repository.SessionStore
	var rateLimiter *red.RateLimiter
	if cfg.Sessions.Backend == "redis" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		sessions = red.NewSessionRepo(redisClient, cfg.Sessions.TTL)
		rateLimiter = red.NewRateLimiter(redisClient)
	} else {
		sessions = session.NewMemoryStore()
	}

	// ---- Export job (also runs once at startup) ----
	exporter := export.NewExcelJob(pool, cfg.Export.Path, logger)
	if _, err := exporter.Export(ctx); err != nil {
		metrics.IncExportRun(false)
		logger.Error().Err(err).Msg("startup export failed")
	} else {
		metrics.IncExportRun(true)
	}

	// ---- Metrics + ops server ----
	metrics.MustRegister()
	ops := web.NewServer(pool, cfg.Ops.Port, logger)
	go func() {
		if err := ops.Start(); err != nil {
			logger.Error().Err(err).Msg("ops server stopped")
		}
	}()

	// ---- Telegram + engine ----
	var bot adapter.TelegramBotAdapter
	var realBot *tele.RealTelegramBotAdapter
	if cfg.Runtime.Dev && cfg.Bot.Token == "" {
		logger.Info().Msg("dev mode without bot token: sends are logged, polling disabled")
		bot = tele.NewNoopBotAdapter(logger)
	} else {
		realBot, err = tele.NewRealTelegramBotAdapter(&cfg.Bot, rateLimiter, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("telegram")
		}
		bot = realBot
	}
	engine := conversation.NewEngine(sessions, userRepo, ratingRepo, exporter, bot, cfg.Bot.AdminID, logger)

	if realBot != nil {
		realBot.SetEngine(engine)
		if strings.ToLower(cfg.Bot.Mode) != "polling" {
			logger.Warn().Str("mode", cfg.Bot.Mode).Msg("mode not implemented; falling back to polling")
		}
		go func() {
			if err := realBot.StartPolling(ctx); err != nil && err != context.Canceled {
				logger.Error().Err(err).Msg("telegram polling stopped")
			}
		}()
	}

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()
	_ = ops.Shutdown(context.Background())
}
