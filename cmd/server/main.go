package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/tuanona/kasir-bot/internal/catalog"
	"github.com/tuanona/kasir-bot/internal/config"
	"github.com/tuanona/kasir-bot/internal/handler"
	"github.com/tuanona/kasir-bot/internal/infra"
	"github.com/tuanona/kasir-bot/internal/ledger"
	"github.com/tuanona/kasir-bot/internal/middleware"
	"github.com/tuanona/kasir-bot/internal/router"
	"github.com/tuanona/kasir-bot/internal/service"
	"github.com/tuanona/kasir-bot/internal/session"
	"github.com/tuanona/kasir-bot/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}
	if cfg.Env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	admins, operators := cfg.Admins(), cfg.Operators()
	if len(admins)+len(operators) == 0 {
		log.Warn().Msg("ADMIN_IDS and USER_IDS are empty; every operator will be denied")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── Core ─────────────────────────────────────────────────────────────────
	cat := catalog.Default()
	led := ledger.NewMemoryLedger()
	cashier := service.NewCashierService(cat, session.NewMemoryStore(), led,
		service.NewPolicy(admins, operators), nil)

	// ── Job queue (optional) ─────────────────────────────────────────────────
	var (
		rdb     *redis.Client
		jobs    handler.JobDispatcher
		workers *sync.WaitGroup
	)
	if cfg.RedisURL != "" {
		rdb, err = infra.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		jobs = worker.NewDispatcher(rdb)
		workers = worker.StartWorkerPool(ctx, rdb, processors(cfg, cat), cfg.WorkerPoolSize)
	} else {
		log.Warn().Msg("REDIS_URL not set; receipts and closing reports are disabled")
	}

	limiter := middleware.NewRateLimiter(router.DefaultActionsPerMinute, time.Minute)
	go limiter.RunPurge(ctx, 5*time.Minute)

	r := router.New(cfg, router.Deps{Cashier: cashier, Jobs: jobs, Redis: rdb, Limiter: limiter})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Int("admins", len(admins)).
			Int("operators", len(operators)).
			Msgf("kasir-bot listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	cancel()
	if workers != nil {
		workers.Wait()
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	log.Info().Int("unsettled_sales", led.Len()).Msg("server exited")
}

// processors wires one worker per queue. The closing export is skipped
// when no mail relay is configured.
func processors(cfg *config.Config, cat *catalog.Catalog) map[string]worker.Processor {
	ps := map[string]worker.Processor{
		worker.QueueReceipt: worker.NewReceiptWorker(cat, cfg.ShopName, cfg.ReceiptStoragePath),
	}
	if cfg.MailEnabled() {
		cb := infra.NewCircuitBreaker(infra.DefaultCBConfig())
		ps[worker.QueueClosing] = worker.NewClosingWorker(infra.NewMailer(cfg), cb, cfg.ReportEmail, service.ReportText)
	} else {
		log.Warn().Msg("SMTP_HOST or REPORT_EMAIL not set; closing reports stay queued")
	}
	return ps
}
