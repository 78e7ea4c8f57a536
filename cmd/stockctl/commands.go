// cmd/stockctl/commands.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/ammerola/stockscan/internal/adapters/export"
	"github.com/ammerola/stockscan/internal/adapters/openfoodfacts"
	"github.com/ammerola/stockscan/internal/core/domain"
	"github.com/ammerola/stockscan/internal/core/ports"
	"github.com/ammerola/stockscan/internal/pkg/logger"
)

var errUsage = errors.New("usage")

// exportQueue hands stock reports to the worker
type exportQueue interface {
	EnqueueExport(ctx context.Context, filter domain.StockFilter, key string) (string, error)
}

// stockCommands are the subcommands that only need the inventory
type stockCommands struct {
	inventory ports.InventoryService
	printer   ports.LabelPrinter
	exports   exportQueue
	cache     ports.CacheRepository
	out       io.Writer
	now       func() time.Time
	logger    *slog.Logger
}

func (c *stockCommands) run(ctx context.Context, name string, args []string) error {
	ctx = logger.WithValue(ctx, logger.ContextKeyCommand, name)

	switch name {
	case "add":
		return c.add(ctx, args)
	case "remove":
		return c.remove(ctx, args)
	case "open":
		return c.lifecycle(ctx, args, "opened", c.inventory.OpenUnit)
	case "finish":
		return c.lifecycle(ctx, args, "finished", c.inventory.FinishUnit)
	case "summary":
		return c.summary(ctx, args)
	case "export":
		return c.export(ctx, args)
	case "reprint":
		return c.reprint(ctx, args)
	case "forget":
		return c.forget(ctx, args)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, name)
	}
}

func (c *stockCommands) add(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: add <itemId> [count]", errUsage)
	}
	item, err := c.item(ctx, args[0])
	if err != nil {
		return err
	}

	count := 1
	if len(args) == 2 {
		if count, err = strconv.Atoi(args[1]); err != nil || count < 1 || count > 255 {
			return fmt.Errorf("%w: count must be between 1 and 255", errUsage)
		}
	}

	units, err := c.inventory.AddUnits(ctx, item.ID, count)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "added %d x %s\n", len(units), item)

	// only custom items carry printed labels
	if item.HasCode() || c.printer == nil {
		return nil
	}
	for _, unit := range units {
		label := domain.NewUnitLabel(item, unit)
		if err := c.printer.Print(ctx, label); err != nil {
			fmt.Fprintf(c.out, "label %s failed: %v\n", label.Code, err)
			continue
		}
		fmt.Fprintf(c.out, "label %s printed\n", label.Code)
	}
	return nil
}

func (c *stockCommands) remove(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: remove <itemId> [unitId]", errUsage)
	}
	itemID, err := parseID(args[0])
	if err != nil {
		return err
	}

	var unitID *int64
	if len(args) == 2 {
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		unitID = &id
	}

	unit, err := c.inventory.RemoveUnit(ctx, itemID, unitID)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "removed unit %d of item %d\n", unit.ID, itemID)
	return nil
}

func (c *stockCommands) lifecycle(ctx context.Context, args []string, verb string,
	op func(context.Context, int64) (*domain.StockUnit, error)) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: %s <itemId>", errUsage, verb)
	}
	itemID, err := parseID(args[0])
	if err != nil {
		return err
	}

	unit, err := op(ctx, itemID)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s unit %d of item %d\n", verb, unit.ID, itemID)
	return nil
}

func (c *stockCommands) summary(ctx context.Context, args []string) error {
	filter, rest, err := parseFilter("summary", args)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("%w: summary [flags]", errUsage)
	}

	summaries, err := c.inventory.Summaries(ctx, filter)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCODE\tAVAILABLE\tOPEN\tREMOVED")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\n",
			s.Item.ID, s.Item.Name, s.Item.CodeOrEmpty(), s.Available, s.Open, s.Removed)
	}
	return tw.Flush()
}

func (c *stockCommands) export(ctx context.Context, args []string) error {
	filter, rest, err := parseFilter("export", args)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return fmt.Errorf("%w: export [flags] <file.xlsx|key>", errUsage)
	}
	target := rest[0]

	if c.exports != nil {
		jobID, err := c.exports.EnqueueExport(ctx, filter, target)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "export queued as job %s\n", jobID)
		return nil
	}

	summaries, err := c.inventory.Summaries(ctx, filter)
	if err != nil {
		return err
	}
	data, err := export.NewStockWorkbook(summaries, c.now()).Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	c.logger.InfoContext(ctx, "stock exported",
		slog.String("file", target),
		slog.Int("items", len(summaries)))
	fmt.Fprintf(c.out, "exported %d items to %s\n", len(summaries), target)
	return nil
}

func (c *stockCommands) reprint(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: reprint <itemId> <unitId>", errUsage)
	}
	itemID, err := parseID(args[0])
	if err != nil {
		return err
	}
	unitID, err := parseID(args[1])
	if err != nil {
		return err
	}
	if c.printer == nil {
		return errors.New("label printing is disabled")
	}

	label, err := c.inventory.UnitLabel(ctx, itemID, unitID)
	if err != nil {
		return err
	}
	if err := c.printer.Print(ctx, *label); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "label %s printed\n", label.Code)
	return nil
}

// forget drops cached product lookups so the next registration asks the
// product database again
func (c *stockCommands) forget(ctx context.Context, args []string) error {
	if c.cache == nil {
		return errors.New("lookup cache is disabled")
	}

	n, err := openfoodfacts.Forget(ctx, c.cache, args...)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "forgot %d cached lookups\n", n)
	return nil
}

func (c *stockCommands) item(ctx context.Context, arg string) (*domain.Item, error) {
	id, err := parseID(arg)
	if err != nil {
		return nil, err
	}
	item, err := c.inventory.ResolveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: item %d", domain.ErrNotFound, id)
	}
	return item, nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", errUsage, arg)
	}
	return id, nil
}

func parseFilter(name string, args []string) (domain.StockFilter, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var filter domain.StockFilter
	kind := fs.String("kind", "", "bought or custom")
	fs.StringVar(&filter.NameLike, "name", "", "name substring")
	fs.BoolVar(&filter.InStockOnly, "in-stock", false, "only items with available units")
	fs.StringVar(&filter.SortBy, "sort", "name", "name, id, available or oldest")
	desc := fs.Bool("desc", false, "sort descending")
	fs.IntVar(&filter.Limit, "limit", 0, "maximum rows")

	if err := fs.Parse(args); err != nil {
		return filter, nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	if *desc {
		filter.SortOrder = "desc"
	}
	if *kind != "" {
		filter.Kind = domain.ItemKind(*kind)
		if !filter.Kind.IsValid() {
			return filter, nil, fmt.Errorf("%w: unknown kind %q", errUsage, *kind)
		}
	}
	return filter, fs.Args(), nil
}
