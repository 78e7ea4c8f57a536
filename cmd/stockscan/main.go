// cmd/stockscan/main.go
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

	"github.com/ammerola/stockscan/internal/adapters/input"
	"github.com/ammerola/stockscan/internal/adapters/terminal"
	"github.com/ammerola/stockscan/internal/app"
	"github.com/ammerola/stockscan/internal/core/services"
	"github.com/ammerola/stockscan/internal/handlers"
	"github.com/ammerola/stockscan/internal/pkg/config"
	"github.com/ammerola/stockscan/internal/pkg/logger"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// scanReader feeds the scan queue until its input ends
type scanReader interface {
	Run(ctx context.Context, q *input.Queue) error
}

func main() {
	source := flag.String("source", "", "scan input: evdev or lines (overrides SCANNER_SOURCE)")
	noGrab := flag.Bool("no-grab", false, "do not take the input device exclusively")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] [device]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	slogger := logger.SetupLogger("info", "text")
	slogger.Info("starting stockscan",
		slog.String("version", Version),
		slog.String("build_time", BuildTime))

	cfg, err := config.Load(slogger.Logger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)

	if flag.NArg() > 0 {
		cfg.Scanner.Device = flag.Arg(0)
	}
	if *source != "" {
		cfg.Scanner.Source = *source
	}
	if *noGrab {
		cfg.Scanner.Grab = false
	}

	if err := run(cfg, slogger.Logger); err != nil {
		if errors.Is(err, context.Canceled) {
			slogger.Info("stockscan stopped")
			return
		}
		slogger.Error("stockscan failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx = logger.WithValue(ctx, logger.ContextKeyDevice, cfg.Scanner.Device)

	reader, closeInput, err := newScanReader(cfg, log)
	if err != nil {
		return err
	}
	defer closeInput()

	deps, err := app.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.Close()

	health := handlers.NewHealthChecker(deps.Database, deps.Cache, nil, cfg.App.Version, cfg.App.Environment, log)
	if err := health.Ready(ctx); err != nil {
		return err
	}

	if deps.Cache != nil {
		lock, err := app.AcquireScannerLock(ctx, deps.Cache, cfg.Scanner.Device, log)
		if err != nil {
			return err
		}
		defer lock.Release(context.Background())
		go lock.Keep(ctx)
	}

	operator := terminal.NewOperator(os.Stdin, os.Stdout, log)

	printer, err := app.NewLabelPrinter(ctx, cfg, deps, log)
	if err != nil {
		return err
	}

	lookup := app.NewLookup(cfg, deps.Cache, log)
	registrar := services.NewRegistrationService(deps.Inventory, lookup, operator, log)
	custom := services.NewCustomItemService(deps.Inventory, printer, operator, log)

	scans := input.NewQueue(cfg.Scanner.QueueSize)
	interpreter := handlers.NewInterpreter(scans, deps.Inventory, registrar, custom, operator, cfg.Scanner.IdleTimeout, log)

	go func() {
		if err := reader.Run(ctx, scans); err != nil && !errors.Is(err, context.Canceled) {
			log.ErrorContext(ctx, "scan reader stopped", slog.String("error", err.Error()))
		}
	}()

	log.InfoContext(ctx, "ready for scans",
		slog.String("device", cfg.Scanner.Device),
		slog.String("source", cfg.Scanner.Source),
		slog.String("printer", cfg.Printer.Mode),
		slog.Bool("lookup", lookup != nil))
	operator.Say(ctx, "ready, mode: %s", interpreter.Mode())

	err = interpreter.Run(ctx)
	state := interpreter.State()
	log.InfoContext(ctx, "scan session ended",
		slog.Int("handled", state.Handled),
		slog.Int("failed", state.Failed),
		slog.Int("idle_resets", state.Resets))

	// a signal also closes the input, report it as the cause
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// newScanReader opens the configured input. Operator answers come from
// stdin, so scans never do.
func newScanReader(cfg *config.Config, log *slog.Logger) (scanReader, func(), error) {
	device := cfg.Scanner.Device
	if device == "" {
		return nil, nil, errors.New("no scanner device given")
	}

	switch cfg.Scanner.Source {
	case "evdev":
		return input.NewEvdevReader(device, cfg.Scanner.Grab, log), func() {}, nil
	case "lines":
		if device == "-" {
			return nil, nil, errors.New("stdin is reserved for operator answers, use a file or fifo")
		}
		f, err := os.Open(device)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open scan input: %w", err)
		}
		return input.NewLineReader(f, device, log), func() { f.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown scanner source %q", cfg.Scanner.Source)
	}
}
