// cmd/worker/main.go
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/ammerola/stockscan/internal/app"
	"github.com/ammerola/stockscan/internal/pkg/config"
	"github.com/ammerola/stockscan/internal/pkg/logger"
	"github.com/ammerola/stockscan/internal/workers"
)

func main() {
	// Setup logger
	slogger := logger.SetupLogger("info", "json")

	// Load configuration
	cfg, err := config.Load(slogger.Logger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	log := slogger.Logger
	log.Info("starting worker",
		slog.String("environment", cfg.App.Environment),
		slog.String("redis_addr", cfg.Asynq.RedisAddr))

	ctx := context.Background()

	// The worker never migrates, the scan daemon and stockctl own the schema
	cfg.Database.AutoMigrate = false
	cfg.Database.MaxConnections = 2
	deps, err := app.Open(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.Close()

	// Queued labels always go to the device
	printer, err := app.NewDevicePrinter(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize label printer", slog.String("error", err.Error()))
		os.Exit(1)
	}

	store, err := app.NewStorage(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := asynq.NewServer(
		app.AsynqRedisOpt(cfg),
		asynq.Config{
			Concurrency:         cfg.Asynq.Concurrency,
			Queues:              cfg.Asynq.Queues,
			StrictPriority:      cfg.Asynq.StrictPriority,
			ErrorHandler:        workers.ErrorHandler(log),
			RetryDelayFunc:      workers.RetryDelay,
			ShutdownTimeout:     cfg.Asynq.ShutdownTimeout,
			HealthCheckFunc:     healthCheck(log),
			HealthCheckInterval: cfg.Asynq.HealthCheckInterval,
			Logger:              workers.NewAsynqLogger(log),
		},
	)

	mux := asynq.NewServeMux()

	labelProcessor := workers.NewLabelProcessor(printer, log)
	mux.HandleFunc(workers.TypeLabelPrint, labelProcessor.ProcessLabel)

	exportProcessor := workers.NewExportProcessor(deps.Inventory, store, cfg.Export.Prefix, log)
	mux.HandleFunc(workers.TypeStockExport, exportProcessor.ProcessExport)

	cleanupProcessor := workers.NewCleanupProcessor(store, cfg.Export.Prefix, cfg.Export.Retention, log)
	mux.HandleFunc(workers.TypeExportPrune, cleanupProcessor.PruneExports)

	scheduler := asynq.NewScheduler(app.AsynqRedisOpt(cfg), &asynq.SchedulerOpts{
		Logger: workers.NewAsynqLogger(log),
	})
	if cfg.Export.Retention > 0 {
		if _, err := scheduler.Register("@daily", workers.NewExportPruneTask(),
			asynq.Queue(workers.QueueLow), asynq.MaxRetry(1)); err != nil {
			log.Error("failed to schedule export pruning", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// Handle shutdown gracefully
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Run(mux); err != nil {
			log.Error("failed to run worker server", slog.String("error", err.Error()))
			shutdown <- syscall.SIGTERM
		}
	}()

	if err := scheduler.Start(); err != nil {
		log.Error("failed to start scheduler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("worker started successfully",
		slog.Int("concurrency", cfg.Asynq.Concurrency),
		slog.Any("queues", cfg.Asynq.Queues))

	sig := <-shutdown
	log.Info("shutdown signal received", slog.String("signal", sig.String()))

	scheduler.Shutdown()
	srv.Shutdown()
	log.Info("worker shutdown complete")
}

func healthCheck(log *slog.Logger) func(error) {
	return func(err error) {
		if err != nil {
			log.Error("worker health check failed", slog.String("error", err.Error()))
		}
	}
}
