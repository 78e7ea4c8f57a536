// cmd/stockctl/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/stockscan/internal/adapters/db"
	"github.com/ammerola/stockscan/internal/adapters/labels"
	"github.com/ammerola/stockscan/internal/adapters/queue"
	"github.com/ammerola/stockscan/internal/app"
	"github.com/ammerola/stockscan/internal/handlers"
	"github.com/ammerola/stockscan/internal/pkg/config"
	"github.com/ammerola/stockscan/internal/pkg/logger"
)

const usage = `usage: stockctl [flags] <command> [args]

commands:
  migrate up [-force]|down|version
  add <itemId> [count]
  remove <itemId> [unitId]
  open <itemId>
  finish <itemId>
  summary [-in-stock] [-kind k] [-name s] [-sort col] [-desc] [-limit n]
  export [filter flags] <file.xlsx|key>
  reprint <itemId> <unitId>
  forget [code...]
  status

flags:
`

func main() {
	queued := flag.Bool("queue", false, "hand exports to the worker instead of writing them here")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	slogger := logger.SetupLogger("warn", "text")
	cfg, err := config.Load(slogger.Logger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log := logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat).Logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, flag.Arg(0), flag.Args()[1:], *queued, log)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "stockctl: %v\n", err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, command string, args []string, queued bool, log *slog.Logger) error {
	if command == "migrate" {
		return migrate(ctx, cfg, args, log)
	}

	// the admin path never changes the schema implicitly
	cfg.Database.AutoMigrate = false
	deps, err := app.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.Close()

	if command == "status" {
		return status(ctx, cfg, deps, log)
	}

	cmds := &stockCommands{
		inventory: deps.Inventory,
		cache:     deps.Cache,
		out:       os.Stdout,
		now:       time.Now,
		logger:    log,
	}

	if command == "add" || command == "reprint" {
		cmds.printer, err = app.NewLabelPrinter(ctx, cfg, deps, log)
		if err != nil {
			return err
		}
	}
	if command == "export" && queued {
		if deps.AsynqClient == nil {
			deps.AsynqClient = asynq.NewClient(app.AsynqRedisOpt(cfg))
		}
		cmds.exports = queue.NewLabelQueue(deps.AsynqClient, cfg.Asynq.RetryMax, log)
	}

	return cmds.run(ctx, command, args)
}

func migrate(ctx context.Context, cfg *config.Config, args []string, log *slog.Logger) error {
	mc := app.MigrationConfig(cfg)
	switch {
	case len(args) == 2 && args[0] == "up" && args[1] == "-force":
		mc.ForceDirty = true
	case len(args) != 1:
		return fmt.Errorf("%w: migrate up [-force]|down|version", errUsage)
	}

	migrator, err := db.NewMigrator(mc, log)
	if err != nil {
		return err
	}
	defer migrator.Close()

	switch args[0] {
	case "up":
		if err := migrator.Up(ctx); err != nil {
			return err
		}
		if err := migrator.Verify(ctx); err != nil {
			return err
		}
	case "down":
		if err := migrator.Down(ctx); err != nil {
			return err
		}
	case "version":
	default:
		return fmt.Errorf("%w: migrate up [-force]|down|version", errUsage)
	}

	version, dirty, err := migrator.Version(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("schema version %d (dirty: %t)\n", version, dirty)
	return nil
}

func status(ctx context.Context, cfg *config.Config, deps *app.Dependencies, log *slog.Logger) error {
	var inspector handlers.QueueInspector
	if cfg.Printer.Mode == labels.ModeQueue {
		ins := asynq.NewInspector(app.AsynqRedisOpt(cfg))
		defer ins.Close()
		inspector = ins
	}

	checker := handlers.NewHealthChecker(deps.Database, deps.Cache, inspector, cfg.App.Version, cfg.App.Environment, log)
	health := checker.Check(ctx)
	if err := handlers.WriteHealth(os.Stdout, health); err != nil {
		return err
	}
	if health.Status == handlers.StatusUnhealthy {
		return errors.New("database unavailable")
	}
	return nil
}
