// internal/adapters/db/migrations.go
package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// MigrationConfig selects the database and the version table
type MigrationConfig struct {
	DatabaseURL string
	TableName   string
	// ForceDirty clears a dirty flag left by an interrupted run before
	// migrating up
	ForceDirty bool
}

// Migrator applies the embedded schema with golang-migrate
type Migrator struct {
	m      *migrate.Migrate
	conn   *sql.DB
	force  bool
	logger *slog.Logger
}

// NewMigrator opens a dedicated connection for schema changes
func NewMigrator(cfg *MigrationConfig, logger *slog.Logger) (*Migrator, error) {
	if cfg == nil || cfg.DatabaseURL == "" {
		return nil, errors.New("migration database url is required")
	}
	table := cfg.TableName
	if table == "" {
		table = "schema_migrations"
	}

	conn, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// golang-migrate pins one connection, Verify needs another
	conn.SetMaxOpenConns(2)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	m, err := newMigrate(conn, table)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &Migrator{
		m:      m,
		conn:   conn,
		force:  cfg.ForceDirty,
		logger: logger.With(slog.String("component", "migrator")),
	}, nil
}

func newMigrate(conn *sql.DB, table string) (*migrate.Migrate, error) {
	target, err := postgres.WithInstance(conn, &postgres.Config{
		MigrationsTable:  table,
		StatementTimeout: time.Minute,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	source, err := iofs.New(embeddedMigrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", target)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	return m, nil
}

// Up applies every pending migration
func (mg *Migrator) Up(ctx context.Context) error {
	version, dirty, err := mg.Version(ctx)
	if err != nil {
		return err
	}
	if dirty {
		if !mg.force {
			return fmt.Errorf("schema version %d is dirty, fix it by hand or migrate with force", version)
		}
		mg.logger.WarnContext(ctx, "clearing dirty schema version", slog.Uint64("version", uint64(version)))
		if err := mg.m.Force(int(version)); err != nil {
			return fmt.Errorf("failed to force version %d: %w", version, err)
		}
	}

	switch err := mg.m.Up(); {
	case errors.Is(err, migrate.ErrNoChange):
		mg.logger.InfoContext(ctx, "schema is up to date", slog.Uint64("version", uint64(version)))
		return nil
	case err != nil:
		return fmt.Errorf("failed to migrate up: %w", err)
	}

	if now, _, err := mg.Version(ctx); err == nil {
		mg.logger.InfoContext(ctx, "schema migrated",
			slog.Uint64("from", uint64(version)),
			slog.Uint64("to", uint64(now)))
	}
	return nil
}

// Down reverts the most recent migration
func (mg *Migrator) Down(ctx context.Context) error {
	version, dirty, err := mg.Version(ctx)
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("schema version %d is dirty", version)
	}

	switch err := mg.m.Steps(-1); {
	case errors.Is(err, migrate.ErrNoChange), errors.Is(err, fs.ErrNotExist):
		mg.logger.InfoContext(ctx, "nothing to roll back")
		return nil
	case err != nil:
		return fmt.Errorf("failed to roll back version %d: %w", version, err)
	}

	mg.logger.InfoContext(ctx, "schema rolled back", slog.Uint64("from", uint64(version)))
	return nil
}

// Version returns the applied version. An empty database reports 0.
func (mg *Migrator) Version(_ context.Context) (uint, bool, error) {
	version, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, dirty, nil
}

// Verify checks the relations the stock engine relies on
func (mg *Migrator) Verify(ctx context.Context) error {
	return VerifySchema(ctx, mg.conn)
}

// Close releases the source and the database connection
func (mg *Migrator) Close() error {
	sourceErr, dbErr := mg.m.Close()
	return errors.Join(sourceErr, dbErr)
}

// requiredRelations are the tables and indexes the stock engine uses
var requiredRelations = []string{
	"items",
	"aliases",
	"stock",
	"stock_one_open_per_item",
}

// VerifySchema reports the first required relation missing from the
// current search path.
func VerifySchema(ctx context.Context, conn *sql.DB) error {
	for _, name := range requiredRelations {
		var found sql.NullString
		if err := conn.QueryRowContext(ctx, `SELECT to_regclass($1)::text`, name).Scan(&found); err != nil {
			return fmt.Errorf("failed to check relation %s: %w", name, err)
		}
		if !found.Valid {
			return fmt.Errorf("schema is missing relation %s, run migrations first", name)
		}
	}
	return nil
}

// RunMigrationsWithRetry migrates up and verifies the schema, retrying
// with a linear backoff while the database is still starting
func RunMigrationsWithRetry(ctx context.Context, cfg *MigrationConfig, logger *slog.Logger, attempts int) error {
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			wait := time.Duration(attempt-1) * 2 * time.Second
			logger.InfoContext(ctx, "retrying migrations",
				slog.Int("attempt", attempt),
				slog.Duration("wait", wait))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}

		if lastErr = migrateOnce(ctx, cfg, logger); lastErr == nil {
			return nil
		}
		logger.ErrorContext(ctx, "migration attempt failed",
			slog.Int("attempt", attempt),
			slog.String("error", lastErr.Error()))
	}
	return fmt.Errorf("migrations failed after %d attempts: %w", attempts, lastErr)
}

func migrateOnce(ctx context.Context, cfg *MigrationConfig, logger *slog.Logger) (err error) {
	mg, err := NewMigrator(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, mg.Close())
	}()

	if err := mg.Up(ctx); err != nil {
		return err
	}
	return mg.Verify(ctx)
}
