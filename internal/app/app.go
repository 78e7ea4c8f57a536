// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/ammerola/stockscan/internal/adapters/db"
	"github.com/ammerola/stockscan/internal/adapters/labels"
	"github.com/ammerola/stockscan/internal/adapters/niimbot"
	"github.com/ammerola/stockscan/internal/adapters/openfoodfacts"
	"github.com/ammerola/stockscan/internal/adapters/queue"
	redis_a "github.com/ammerola/stockscan/internal/adapters/redis_adapter"
	"github.com/ammerola/stockscan/internal/adapters/storage"
	"github.com/ammerola/stockscan/internal/core/ports"
	"github.com/ammerola/stockscan/internal/core/services"
	"github.com/ammerola/stockscan/internal/pkg/config"
)

// Dependencies holds the shared stores and services of every binary
type Dependencies struct {
	Database    *db.Database
	RedisClient *redis.Client
	Cache       ports.CacheRepository
	AsynqClient *asynq.Client
	Inventory   *services.InventoryService
}

// Close releases every open connection
func (d *Dependencies) Close() {
	if d.AsynqClient != nil {
		d.AsynqClient.Close()
	}
	if d.RedisClient != nil {
		d.RedisClient.Close()
	}
	if d.Database != nil {
		d.Database.Close()
	}
}

// Open connects the database and, when enabled, redis. Migrations run first
// when auto-migrate is on.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{}

	if cfg.Database.AutoMigrate {
		if err := Migrate(ctx, cfg, logger); err != nil {
			return nil, err
		}
	}

	database, err := OpenDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	deps.Database = database

	if cfg.Redis.Enabled {
		client, err := OpenRedis(ctx, cfg)
		if err != nil {
			// lookups and the scanner lock work without redis
			logger.WarnContext(ctx, "redis unavailable, continuing without cache",
				slog.String("addr", cfg.Redis.Addr),
				slog.String("error", err.Error()))
		} else {
			deps.RedisClient = client
			deps.Cache = redis_a.NewCache(client, cfg.Redis.TTL, logger)
		}
	}

	deps.Inventory = services.NewInventoryService(
		db.NewItemRepository(database, logger),
		db.NewStockRepository(database, logger),
		logger,
	)

	return deps, nil
}

// OpenDatabase creates the connection pool
func OpenDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*db.Database, error) {
	database, err := db.NewDatabase(ctx, &db.Config{
		URL:               cfg.Database.URL,
		MaxConnections:    cfg.Database.MaxConnections,
		MinConnections:    cfg.Database.MinConnections,
		MaxConnLifetime:   cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:   cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod: cfg.Database.HealthCheckPeriod,
		ConnectTimeout:    cfg.Database.ConnectTimeout,
		LogQueries:        cfg.Database.EnableQueryLogging,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return database, nil
}

// Migrate applies the embedded schema
func Migrate(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.InfoContext(ctx, "running database migrations")
	if err := db.RunMigrationsWithRetry(ctx, MigrationConfig(cfg), logger, 3); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// MigrationConfig returns the migrator settings for cfg
func MigrationConfig(cfg *config.Config) *db.MigrationConfig {
	return &db.MigrationConfig{
		DatabaseURL: cfg.Database.URL,
		TableName:   "schema_migrations",
	}
}

// OpenRedis connects and pings the cache instance
func OpenRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		PoolSize:     cfg.Redis.PoolSize,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// AsynqRedisOpt returns the connection of the task queue
func AsynqRedisOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	}
}

// NewLookup builds the product lookup chain. It returns nil when lookups
// are disabled.
func NewLookup(cfg *config.Config, cache ports.CacheRepository, logger *slog.Logger) ports.ProductLookup {
	if !cfg.Lookup.Enabled {
		return nil
	}

	var lookup ports.ProductLookup = openfoodfacts.NewClient(openfoodfacts.Config{
		BaseURL:           cfg.Lookup.BaseURL,
		Timeout:           cfg.Lookup.Timeout,
		UserAgent:         cfg.Lookup.UserAgent,
		RequestsPerMinute: cfg.Lookup.RequestsPerMinute,
		IgnoredCodes:      cfg.Lookup.IgnoredCodes,
	}, logger)

	if cache != nil {
		lookup = openfoodfacts.NewCachedLookup(lookup, cache, cfg.Lookup.CacheTTL, logger)
	}
	return lookup
}

// NewStorage returns S3 when a bucket is configured and the export
// directory otherwise
func NewStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.StorageClient, error) {
	if !cfg.ArchiveEnabled() {
		return storage.NewLocalStorage(cfg.Export.OutputDir, logger), nil
	}

	s3, err := storage.NewS3Storage(ctx, &storage.S3Config{
		Region:          cfg.AWS.Region,
		Bucket:          cfg.AWS.S3Bucket,
		AccessKeyID:     cfg.AWS.AccessKeyID,
		SecretAccessKey: cfg.AWS.SecretAccessKey,
		Endpoint:        cfg.AWS.S3Endpoint,
		UsePathStyle:    cfg.AWS.UsePathStyle,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize S3 storage: %w", err)
	}
	return s3, nil
}

// NewDevicePrinter renders labels and sends them to the print service.
// Images go to S3 as well when a bucket is configured.
func NewDevicePrinter(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*labels.DirectPrinter, error) {
	var archive labels.Archive
	if cfg.ArchiveEnabled() {
		s3, err := NewStorage(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		archive = s3
	}

	client := niimbot.NewClient(PrinterConfig(cfg), logger)
	return labels.NewDirectPrinter(labels.NewRenderer(), client, archive, cfg.AWS.LabelPrefix, logger), nil
}

// PrinterConfig returns the print service settings for cfg
func PrinterConfig(cfg *config.Config) niimbot.Config {
	return niimbot.Config{
		BaseURL:   cfg.Printer.BaseURL,
		Transport: cfg.Printer.Transport,
		Address:   cfg.Printer.Address,
		Density:   cfg.Printer.Density,
		LabelType: cfg.Printer.LabelType,
		Threshold: cfg.Printer.Threshold,
		Timeout:   cfg.Printer.Timeout,
	}
}

// NewLabelPrinter selects the printer for the configured mode. Queue mode
// opens an asynq client that is stored in deps for Close.
func NewLabelPrinter(ctx context.Context, cfg *config.Config, deps *Dependencies, logger *slog.Logger) (ports.LabelPrinter, error) {
	switch cfg.Printer.Mode {
	case labels.ModeDirect:
		return NewDevicePrinter(ctx, cfg, logger)
	case labels.ModeQueue:
		if deps.AsynqClient == nil {
			deps.AsynqClient = asynq.NewClient(AsynqRedisOpt(cfg))
		}
		return queue.NewLabelQueue(deps.AsynqClient, cfg.Asynq.RetryMax, logger), nil
	case labels.ModeOff:
		return labels.NewDisabledPrinter(logger), nil
	default:
		return nil, fmt.Errorf("unknown printer mode %q", cfg.Printer.Mode)
	}
}
