// cmd/seeder/importer.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ammerola/stockscan/internal/adapters/export"
	"github.com/ammerola/stockscan/internal/core/domain"
	"github.com/ammerola/stockscan/internal/core/ports"
	"github.com/ammerola/stockscan/internal/core/services"
)

// ImportResult counts what a catalog import did
type ImportResult struct {
	Created int
	Aliased int
	Skipped int
	Failed  []string
}

func (r *ImportResult) count(outcome rowOutcome) {
	switch outcome {
	case rowCreated:
		r.Created++
	case rowAliased:
		r.Aliased++
	default:
		r.Skipped++
	}
}

// catalogLookup answers product lookups from the catalog itself
type catalogLookup map[string]string

func (c catalogLookup) LookupName(_ context.Context, code string) (string, bool, error) {
	name, ok := c[code]
	return name, ok, nil
}

// batchOperator accepts every alias prompt and logs messages
type batchOperator struct {
	logger *slog.Logger
}

func (o batchOperator) Say(ctx context.Context, format string, args ...any) {
	o.logger.DebugContext(ctx, fmt.Sprintf(format, args...))
}

func (o batchOperator) Ask(ctx context.Context, prompt string) (string, error) {
	o.logger.DebugContext(ctx, "auto confirmed", slog.String("prompt", prompt))
	return "y", nil
}

type rowOutcome int

const (
	rowSkipped rowOutcome = iota
	rowCreated
	rowAliased
)

// importer applies catalog rows through the same rules the scanner uses
type importer struct {
	inventory ports.InventoryService
	dryRun    bool
	logger    *slog.Logger
}

func newImporter(inventory ports.InventoryService, dryRun bool, logger *slog.Logger) *importer {
	return &importer{
		inventory: inventory,
		dryRun:    dryRun,
		logger:    logger.With(slog.String("component", "catalog_import")),
	}
}

// Import creates missing items, then aliases. Row failures are collected and
// do not stop the import.
func (im *importer) Import(ctx context.Context, catalog *export.Catalog) (*ImportResult, error) {
	result := &ImportResult{}

	names := make(catalogLookup, len(catalog.Items))
	for _, row := range catalog.Items {
		if row.Code != "" {
			names[row.Code] = row.Name
		}
	}
	registrar := services.NewRegistrationService(im.inventory, names, batchOperator{logger: im.logger}, im.logger)

	for _, row := range catalog.Items {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		outcome, err := im.importItem(ctx, registrar, row)
		if err != nil && isStorageFailure(err) {
			return result, fmt.Errorf("failed to import %s row %d: %w", export.ItemsSheet, row.Row, err)
		}
		if err != nil {
			result.Failed = append(result.Failed, fmt.Sprintf("%s row %d: %v", export.ItemsSheet, row.Row, err))
			continue
		}
		result.count(outcome)
	}

	for _, row := range catalog.Aliases {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		outcome, err := im.importAlias(ctx, row, names)
		if err != nil && isStorageFailure(err) {
			return result, fmt.Errorf("failed to import %s row %d: %w", export.AliasesSheet, row.Row, err)
		}
		if err != nil {
			result.Failed = append(result.Failed, fmt.Sprintf("%s row %d: %v", export.AliasesSheet, row.Row, err))
			continue
		}
		result.count(outcome)
	}

	return result, nil
}

func (im *importer) importItem(ctx context.Context, registrar *services.RegistrationService, row export.CatalogItem) (rowOutcome, error) {
	if row.Code == "" {
		existing, err := im.inventory.ResolveByName(ctx, row.Name)
		if err != nil {
			return rowSkipped, err
		}
		if existing != nil {
			return rowSkipped, nil
		}
		if im.dryRun {
			im.logger.InfoContext(ctx, "would create custom item", slog.String("name", row.Name))
			return rowCreated, nil
		}
		if _, err := im.inventory.RegisterCustom(ctx, row.Name); err != nil {
			return rowSkipped, err
		}
		return rowCreated, nil
	}

	existing, err := im.inventory.ResolveByCode(ctx, row.Code)
	if err != nil {
		return rowSkipped, err
	}
	if existing != nil {
		return rowSkipped, nil
	}

	if im.dryRun {
		im.logger.InfoContext(ctx, "would register item",
			slog.String("code", row.Code),
			slog.String("name", row.Name))
		return rowCreated, nil
	}

	item, err := registrar.Register(ctx, row.Code)
	if err != nil {
		return rowSkipped, err
	}
	// a name collision resolves to an alias of the existing item
	if item.CodeOrEmpty() != row.Code {
		return rowAliased, nil
	}
	return rowCreated, nil
}

func (im *importer) importAlias(ctx context.Context, row export.CatalogAlias, pending catalogLookup) (rowOutcome, error) {
	existing, err := im.inventory.ResolveByCode(ctx, row.Code)
	if err != nil {
		return rowSkipped, err
	}
	if existing != nil {
		return rowSkipped, nil
	}

	target, err := im.inventory.ResolveByCode(ctx, row.Target)
	if err != nil {
		return rowSkipped, err
	}
	if target == nil {
		if _, ok := pending[row.Target]; ok && im.dryRun {
			return rowAliased, nil
		}
		return rowSkipped, fmt.Errorf("%w: alias target %s", domain.ErrNotFound, row.Target)
	}

	if im.dryRun {
		im.logger.InfoContext(ctx, "would create alias",
			slog.String("code", row.Code),
			slog.String("target", target.CodeOrEmpty()))
		return rowAliased, nil
	}

	if _, err := im.inventory.CreateAlias(ctx, row.Code, target.CodeOrEmpty()); err != nil {
		return rowSkipped, err
	}
	return rowAliased, nil
}

func isStorageFailure(err error) bool {
	return !errors.Is(err, context.Canceled) && domain.Outcome(err) == domain.OutcomeStorage
}
