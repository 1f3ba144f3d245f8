package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"payment-journey-tracker/config"
	httpHandler "payment-journey-tracker/internal/adapter/http/handler"
	pgStorage "payment-journey-tracker/internal/adapter/storage/postgres"
	redisStorage "payment-journey-tracker/internal/adapter/storage/redis"
	"payment-journey-tracker/internal/core/ports"
	"payment-journey-tracker/internal/service"
	"payment-journey-tracker/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Payment Journey Tracker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	eventRepo := pgStorage.NewEventRepo(pool)
	defRepo := pgStorage.NewDefinitionRepo(pool)
	instRepo := pgStorage.NewInstanceRepo(pool)
	stepRepo := pgStorage.NewStepRepo(pool)
	txRepo := pgStorage.NewTransactionRepo(pool)
	linkRepo := pgStorage.NewCustomerLinkRepo(pool)

	clock := service.SystemClock()

	// Seed journey definitions from YAML
	loader := service.NewDefinitionLoader(defRepo, clock, log)
	if _, err := loader.Load(ctx, cfg.Journeys.File); err != nil {
		log.Fatal().Err(err).Str("file", cfg.Journeys.File).Msg("Failed to load journey definitions")
	}
	if cfg.Journeys.Watch {
		if err := loader.Watch(ctx, cfg.Journeys.File); err != nil {
			log.Error().Err(err).Msg("Definition hot-reload unavailable")
		}
	}

	// Initialize core services
	dedupStore := redisStorage.NewDedupStore(rdb, cfg.Webhook.DedupTTL)
	dedupSvc := service.NewDedupService(dedupStore, eventRepo, log)
	sigSvc := service.NewHMACSignatureService()
	breaker := service.NewCircuitBreaker(cfg.Breaker.ErrorThreshold, cfg.Breaker.ResetTimeout, clock, log)

	// Journey tracking and event processing
	tracker := service.NewTrackerService(defRepo, instRepo, stepRepo, clock, log)
	processors := []ports.ResourceProcessor{
		service.NewTransferProcessor(txRepo, clock, log),
		service.NewCustomerProcessor(linkRepo, clock, log),
	}
	pipeline := service.NewPipelineService(eventRepo, instRepo, processors, tracker, clock, log, service.PipelineOptions{
		Workers:     cfg.Pipeline.Workers,
		QueueSize:   cfg.Pipeline.QueueSize,
		MaxAttempts: cfg.Pipeline.MaxAttempts,
		MaxEventAge: cfg.Pipeline.MaxEventAge,
	})
	pipeline.Start(ctx)

	receiver, err := service.NewReceiverService(eventRepo, dedupSvc, breaker, pipeline, sigSvc, cfg.Webhook.Secret, clock, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize webhook receiver")
	}

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Receiver:       receiver,
		InstanceRepo:   instRepo,
		StepRepo:       stepRepo,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		MaxBodySize:    cfg.Webhook.MaxBodySize,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Stop intake, then let in-flight events finish.
	pipeline.Drain()

	log.Info().Msg("Server exited")
}
