// internal/handlers/interpreter.go
package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ammerola/stockscan/internal/core/domain"
	"github.com/ammerola/stockscan/internal/core/ports"
	"github.com/ammerola/stockscan/internal/core/services"
	"github.com/ammerola/stockscan/internal/handlers/middleware"
)

// DefaultIdleTimeout is how long a non-idle mode survives without scans
const DefaultIdleTimeout = 120 * time.Second

// Registrar creates an item for an unknown barcode
type Registrar interface {
	Register(ctx context.Context, code string) (*domain.Item, error)
}

// CustomItemFlow runs the interactive custom item dialogue
type CustomItemFlow interface {
	Run(ctx context.Context) (*services.CustomItemResult, error)
}

// State is the interpreter's view of the session
type State struct {
	Mode       domain.Mode
	Handled    int
	Failed     int
	Resets     int
	LastScanAt time.Time
}

// Interpreter turns scan strings into mode changes, special actions and
// stock operations. It consumes one scan at a time.
type Interpreter struct {
	source      ports.ScanSource
	inventory   ports.InventoryService
	registrar   Registrar
	custom      CustomItemFlow
	operator    ports.Operator
	idleTimeout time.Duration
	now         func() time.Time
	logger      *slog.Logger

	mu      sync.Mutex
	state   State
	handler middleware.ScanHandler
}

// NewInterpreter creates an interpreter in idle mode
func NewInterpreter(
	source ports.ScanSource,
	inventory ports.InventoryService,
	registrar Registrar,
	custom CustomItemFlow,
	operator ports.Operator,
	idleTimeout time.Duration,
	logger *slog.Logger,
) *Interpreter {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}

	i := &Interpreter{
		source:      source,
		inventory:   inventory,
		registrar:   registrar,
		custom:      custom,
		operator:    operator,
		idleTimeout: idleTimeout,
		now:         time.Now,
		logger:      logger.With(slog.String("component", "interpreter")),
		state:       State{Mode: domain.ModeIdle},
	}

	i.handler = middleware.Chain(
		middleware.ScanHandlerFunc(i.dispatch),
		middleware.ScanID(i.Mode),
		middleware.Logger(i.logger),
		middleware.Recovery(i.logger),
	)

	return i
}

// Mode returns the current mode
func (i *Interpreter) Mode() domain.Mode {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state.Mode
}

// State returns a snapshot of the session state
func (i *Interpreter) State() State {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

func (i *Interpreter) setMode(mode domain.Mode) (domain.Mode, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	prev := i.state.Mode
	i.state.Mode = mode
	return prev, prev != mode
}

// Run consumes scans until the source disconnects or ctx ends. A
// disconnected source is returned as an error wrapping
// ports.ErrInputDisconnected.
func (i *Interpreter) Run(ctx context.Context) error {
	i.logger.InfoContext(ctx, "scan loop started",
		slog.Duration("idle_timeout", i.idleTimeout))

	for {
		scan, err := i.source.Next(ctx, i.idleTimeout)
		switch {
		case err == nil:
			i.Handle(ctx, scan)
		case errors.Is(err, ports.ErrScanTimeout):
			i.IdleTimeout(ctx)
		case errors.Is(err, ports.ErrInputDisconnected):
			i.logger.ErrorContext(ctx, "scan input disconnected")
			return fmt.Errorf("scan loop stopped: %w", err)
		case ctx.Err() != nil:
			i.logger.InfoContext(ctx, "scan loop stopped", slog.Any("reason", ctx.Err()))
			return ctx.Err()
		default:
			return fmt.Errorf("failed to read scan: %w", err)
		}
	}
}

// IdleTimeout resets a non-idle mode. It makes no resolver or stock call.
func (i *Interpreter) IdleTimeout(ctx context.Context) {
	prev, changed := i.setMode(domain.ModeIdle)
	if !changed {
		return
	}

	i.mu.Lock()
	i.state.Resets++
	i.mu.Unlock()

	i.logger.InfoContext(ctx, "scan mode reset after idle timeout",
		slog.String("from", string(prev)),
		slog.String("to", string(domain.ModeIdle)))
	i.operator.Say(ctx, "scan mode reset: %s -> %s", prev, domain.ModeIdle)
}

// Handle processes one scan. Failures are reported to the operator and
// never change the mode.
func (i *Interpreter) Handle(ctx context.Context, scan string) {
	err := i.handler.HandleScan(ctx, scan)

	i.mu.Lock()
	i.state.Handled++
	i.state.LastScanAt = i.now()
	if err != nil {
		i.state.Failed++
	}
	i.mu.Unlock()

	if err == nil {
		return
	}

	switch domain.Outcome(err) {
	case domain.OutcomeExpected:
		i.operator.Say(ctx, "  %v", err)
	default:
		i.operator.Say(ctx, "  failed: %v", err)
	}
}

// dispatch applies the first matching rule: mode token, custom item
// action, removal reference, barcode.
func (i *Interpreter) dispatch(ctx context.Context, scan string) error {
	if mode, ok := domain.ParseModeToken(scan); ok {
		i.switchMode(ctx, mode)
		return nil
	}

	if scan == domain.TokenCustomItem {
		return i.customItem(ctx)
	}

	if ref, ok := domain.ParseRemovalRef(scan); ok {
		return i.removeByRef(ctx, ref)
	}

	return i.barcode(ctx, scan)
}

func (i *Interpreter) switchMode(ctx context.Context, mode domain.Mode) {
	prev, changed := i.setMode(mode)
	if !changed {
		return
	}

	i.logger.InfoContext(ctx, "scan mode changed",
		slog.String("from", string(prev)),
		slog.String("to", string(mode)))
	i.operator.Say(ctx, "scan mode changed: %s -> %s", prev, mode)
}

func (i *Interpreter) customItem(ctx context.Context) error {
	result, err := i.custom.Run(ctx)
	if err != nil {
		return fmt.Errorf("creating custom item failed: %w", err)
	}

	if len(result.PrintErrors) > 0 {
		i.logger.WarnContext(ctx, "some labels were not printed",
			slog.Int64("item_id", result.Item.ID),
			slog.Int("units", len(result.Units)),
			slog.Int("printed", result.Printed))
	}
	return nil
}

func (i *Interpreter) removeByRef(ctx context.Context, ref domain.RemovalRef) error {
	item, err := i.inventory.ResolveByID(ctx, ref.ItemID)
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("cannot remove custom item %d: %w", ref.ItemID, domain.ErrNotFound)
	}

	i.operator.Say(ctx, "removing custom from stock: %s", item.Name)

	unitID := ref.UnitID
	if _, err := i.inventory.RemoveUnit(ctx, item.ID, &unitID); err != nil {
		return err
	}

	i.operator.Say(ctx, "  successful")
	return nil
}

func (i *Interpreter) barcode(ctx context.Context, code string) error {
	item, err := i.inventory.ResolveByCode(ctx, code)
	if err != nil {
		return err
	}

	switch mode := i.Mode(); mode {
	case domain.ModeIdle:
		return i.report(ctx, code, item)

	case domain.ModeRegister:
		if item != nil {
			i.operator.Say(ctx, "already registered (%s)", item.Name)
			return nil
		}
		_, err := i.registrar.Register(ctx, code)
		return err

	case domain.ModeAdd:
		if item == nil {
			i.operator.Say(ctx, "trying to add %s, but no item found", code)
			item, err = i.registrar.Register(ctx, code)
			if err != nil {
				return fmt.Errorf("no item added: %w", err)
			}
		}
		i.operator.Say(ctx, "adding to stock: %s", item.Name)
		if _, err := i.inventory.AddUnit(ctx, item.ID); err != nil {
			return err
		}

	case domain.ModeRemove, domain.ModeOpen, domain.ModeFinish:
		if item == nil {
			return fmt.Errorf("cannot %s %s: %w", mode, code, domain.ErrNotFound)
		}
		if err := i.transition(ctx, mode, item); err != nil {
			return err
		}

	default:
		return fmt.Errorf("unknown scan mode %q", mode)
	}

	i.operator.Say(ctx, "  successful")
	return nil
}

func (i *Interpreter) transition(ctx context.Context, mode domain.Mode, item *domain.Item) error {
	var err error
	switch mode {
	case domain.ModeRemove:
		i.operator.Say(ctx, "removing from stock: %s", item.Name)
		_, err = i.inventory.RemoveUnit(ctx, item.ID, nil)
	case domain.ModeOpen:
		i.operator.Say(ctx, "opening: %s", item.Name)
		_, err = i.inventory.OpenUnit(ctx, item.ID)
	case domain.ModeFinish:
		i.operator.Say(ctx, "finishing: %s", item.Name)
		_, err = i.inventory.FinishUnit(ctx, item.ID)
	}
	return err
}

// report answers an idle-mode scan with the item and its stock counts
func (i *Interpreter) report(ctx context.Context, code string, item *domain.Item) error {
	if item == nil {
		i.operator.Say(ctx, "no such item: %s", code)
		return nil
	}

	summary, err := i.inventory.Summary(ctx, item.ID)
	if err != nil {
		i.logger.WarnContext(ctx, "failed to load stock summary",
			slog.Int64("item_id", item.ID),
			slog.Any("error", err))
		i.operator.Say(ctx, "item found: %s", item)
		return nil
	}

	i.operator.Say(ctx, "item found: %s, %s", item, summary)
	return nil
}
