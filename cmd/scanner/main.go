package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"repscan/internal/analyzer"
	"repscan/internal/analyzer/anthropic"
	"repscan/internal/config"
	"repscan/internal/publisher"
	"repscan/internal/scheduler"
	"repscan/internal/service"
	"repscan/internal/source/twitter"
	"repscan/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// Setup logger
	logger := setupLogger("info")

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// Initialize RabbitMQ publisher
	rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
		URL:        cfg.RabbitMQ.URL,
		Exchange:   cfg.RabbitMQ.Exchange,
		RoutingKey: cfg.RabbitMQ.RoutingKey,
		QueueName:  cfg.RabbitMQ.QueueName,
	}, logger)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", "error", err)
		os.Exit(1)
	}
	defer rabbitMQ.Close()

	// Initialize stores
	itemStore := postgres.NewItemStore(db, logger)
	analysisStore := postgres.NewAnalysisStore(db)
	linkStore := postgres.NewLinkStore(db)
	quotaStore := postgres.NewQuotaStore(db)
	txManager := postgres.NewTransactionManager(db)

	// Initialize model providers and analyzers
	models := anthropic.New(cfg.Anthropic.APIKey, cfg.Anthropic.TextModel, cfg.Anthropic.VisionModel)
	textAnalyzer := analyzer.NewTextAnalyzer(models, cfg.Anthropic.TextModel, logger)
	mediaAnalyzer := analyzer.NewMediaAnalyzer(models, analyzer.MediaConfig{
		GroupSize:       cfg.Scan.ImageConcurrency,
		VisionTimeout:   cfg.Anthropic.VisionTimeout,
		DownloadTimeout: cfg.Anthropic.DownloadTimeout,
	}, logger)

	// Initialize Twitter source
	source := twitter.New(twitter.Config{
		BaseURL:        cfg.Twitter.BaseURL,
		BearerToken:    cfg.Twitter.BearerToken,
		PageSize:       cfg.Twitter.PageSize,
		Timeout:        cfg.Twitter.Timeout,
		MaxAttempts:    cfg.Twitter.Retry.MaxAttempts,
		InitialBackoff: cfg.Twitter.Retry.InitialBackoff,
		MaxBackoff:     cfg.Twitter.Retry.MaxBackoff,
	}, logger)

	scanService := service.NewScanService(
		source,
		itemStore,
		analysisStore,
		linkStore,
		textAnalyzer,
		mediaAnalyzer,
		txManager,
		rabbitMQ,
		logger,
	)

	targets := make([]scheduler.Target, len(cfg.Scan.Targets))
	for i, t := range cfg.Scan.Targets {
		targets[i] = scheduler.Target{
			AccountID:     t.AccountID,
			Purpose:       t.Purpose,
			CustomContext: t.CustomContext,
			Tier:          t.Tier,
		}
	}

	sched := scheduler.NewScheduler(scanService, quotaStore, targets, cfg.Scan.Interval, cfg.Scan.Timeout, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	logger.Info("starting reputation scanner",
		"targets", len(targets),
		"interval", cfg.Scan.Interval,
	)

	if err := sched.Start(ctx); err != nil && err != context.Canceled {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
