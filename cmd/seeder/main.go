// cmd/seeder/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ammerola/stockscan/internal/adapters/export"
	"github.com/ammerola/stockscan/internal/app"
	"github.com/ammerola/stockscan/internal/pkg/config"
	"github.com/ammerola/stockscan/internal/pkg/logger"
)

func main() {
	// Parse flags
	var (
		catalogFile = flag.String("catalog", "./catalog.xlsx", "Excel workbook with Items and Aliases sheets")
		logLevel    = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
		dryRun      = flag.Bool("dry-run", false, "Preview changes without modifying database")
	)
	flag.Parse()

	slogger := logger.SetupLogger(*logLevel, "json")
	log := slogger.Logger

	cfg, err := config.Load(log)
	if err != nil {
		log.Error("Failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	catalog, err := export.ReadCatalog(*catalogFile)
	if err != nil {
		log.Error("Failed to read catalog", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Printf("Catalog %s: %d items, %d aliases\n", *catalogFile, len(catalog.Items), len(catalog.Aliases))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// dry runs only read, never migrate
	if *dryRun {
		cfg.Database.AutoMigrate = false
	}
	cfg.Redis.Enabled = false

	deps, err := app.Open(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.Close()

	result, err := newImporter(deps.Inventory, *dryRun, log).Import(ctx, catalog)
	printSummary(result, *dryRun)
	if err != nil {
		log.Error("Seed operation aborted", slog.String("error", err.Error()))
		deps.Close()
		os.Exit(1)
	}

	log.Info("Seed operation completed",
		slog.Int("items_created", result.Created),
		slog.Int("aliases_created", result.Aliased),
		slog.Int("skipped", result.Skipped),
		slog.Int("failed", len(result.Failed)))
}

func printSummary(result *ImportResult, dryRun bool) {
	if result == nil {
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("CATALOG IMPORT SUMMARY")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Items created:   %d\n", result.Created)
	fmt.Printf("Aliases created: %d\n", result.Aliased)
	fmt.Printf("Already known:   %d\n", result.Skipped)

	if len(result.Failed) > 0 {
		fmt.Printf("\nFailed rows (%d):\n", len(result.Failed))
		for _, row := range result.Failed {
			fmt.Printf("  - %s\n", row)
		}
	}

	if dryRun {
		fmt.Println("\n[DRY RUN] No changes were made to the database")
	}
}
