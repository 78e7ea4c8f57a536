// internal/core/services/inventory.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ammerola/stockscan/internal/core/domain"
	"github.com/ammerola/stockscan/internal/core/ports"
)

// InventoryService resolves scanned codes to items and drives the stock
// lifecycle of their units.
type InventoryService struct {
	items  ports.ItemRepository
	stock  ports.StockRepository
	now    func() time.Time
	logger *slog.Logger
}

// Statically assert that *InventoryService implements the InventoryService interface.
var _ ports.InventoryService = (*InventoryService)(nil)

// NewInventoryService creates a new inventory service
func NewInventoryService(items ports.ItemRepository, stock ports.StockRepository, logger *slog.Logger) *InventoryService {
	return &InventoryService{
		items:  items,
		stock:  stock,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger.With(slog.String("service", "inventory")),
	}
}

// WithClock replaces the time source used for stock timestamps
func (s *InventoryService) WithClock(now func() time.Time) *InventoryService {
	s.now = now
	return s
}

// ResolveByCode returns the item a scanned code refers to. An alias is
// followed exactly once; its target is looked up as an item code only.
func (s *InventoryService) ResolveByCode(ctx context.Context, code string) (*domain.Item, error) {
	alias, err := s.items.FindAlias(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve code %s: %w", code, err)
	}

	lookup := code
	if alias != nil {
		lookup = alias.TargetCode
	}

	item, err := s.items.FindByCode(ctx, lookup)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve code %s: %w", code, err)
	}

	if item != nil && alias != nil {
		s.logger.DebugContext(ctx, "code resolved through alias",
			slog.String("code", code),
			slog.String("target_code", alias.TargetCode),
			slog.Int64("item_id", item.ID))
	}

	return item, nil
}

// ResolveByID returns the item with the given id, or nil
func (s *InventoryService) ResolveByID(ctx context.Context, id int64) (*domain.Item, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve item %d: %w", id, err)
	}
	return item, nil
}

// ResolveByName returns the item whose name matches ignoring case, or nil
func (s *InventoryService) ResolveByName(ctx context.Context, name string) (*domain.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	item, err := s.items.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve name %q: %w", name, err)
	}
	return item, nil
}

// SearchCustomByName lists custom items whose name contains substring
func (s *InventoryService) SearchCustomByName(ctx context.Context, substring string) ([]*domain.Item, error) {
	items, err := s.items.SearchCustomByName(ctx, strings.TrimSpace(substring))
	if err != nil {
		return nil, fmt.Errorf("failed to search custom items: %w", err)
	}
	return items, nil
}

// RegisterBought creates a bought item for code. Callers check for name
// collisions first.
func (s *InventoryService) RegisterBought(ctx context.Context, code, name string) (*domain.Item, error) {
	item := domain.NewBoughtItem(code, name)
	if err := s.items.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to register item %s: %w", code, err)
	}

	s.logger.InfoContext(ctx, "item registered",
		slog.Int64("item_id", item.ID),
		slog.String("code", code),
		slog.String("name", item.Name))

	return item, nil
}

// RegisterCustom creates a custom item without a code
func (s *InventoryService) RegisterCustom(ctx context.Context, name string) (*domain.Item, error) {
	item := domain.NewCustomItem(name)
	if err := s.items.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to register custom item: %w", err)
	}

	s.logger.InfoContext(ctx, "custom item registered",
		slog.Int64("item_id", item.ID),
		slog.String("name", item.Name))

	return item, nil
}

// CreateAlias redirects code to the item carrying targetCode. A code that
// is already known fails with domain.ErrConflict.
func (s *InventoryService) CreateAlias(ctx context.Context, code, targetCode string) (*domain.Alias, error) {
	alias := &domain.Alias{
		Code:       strings.TrimSpace(code),
		TargetCode: strings.TrimSpace(targetCode),
	}
	if err := s.items.SaveAlias(ctx, alias); err != nil {
		return nil, fmt.Errorf("failed to create alias %s -> %s: %w", alias.Code, alias.TargetCode, err)
	}

	s.logger.InfoContext(ctx, "alias created",
		slog.String("code", alias.Code),
		slog.String("target_code", alias.TargetCode))

	return alias, nil
}

// AddUnit stocks one new unit of the item
func (s *InventoryService) AddUnit(ctx context.Context, itemID int64) (*domain.StockUnit, error) {
	unit, err := s.stock.Add(ctx, itemID, s.now())
	if err != nil {
		return nil, domain.NewStockError("add", itemID, nil, err)
	}

	s.logger.InfoContext(ctx, "unit added",
		slog.Int64("item_id", itemID),
		slog.Int64("unit_id", unit.ID))

	return unit, nil
}

// AddUnits stocks count units of the item in one transaction
func (s *InventoryService) AddUnits(ctx context.Context, itemID int64, count int) ([]*domain.StockUnit, error) {
	if count <= 0 {
		return nil, domain.NewStockError("add", itemID, nil, fmt.Errorf("count must be positive, got %d", count))
	}

	units, err := s.stock.AddMany(ctx, itemID, count, s.now())
	if err != nil {
		return nil, domain.NewStockError("add", itemID, nil, err)
	}

	s.logger.InfoContext(ctx, "units added",
		slog.Int64("item_id", itemID),
		slog.Int("count", len(units)))

	return units, nil
}

// RemoveUnit removes the given unit, or the oldest unopened one when
// unitID is nil.
func (s *InventoryService) RemoveUnit(ctx context.Context, itemID int64, unitID *int64) (*domain.StockUnit, error) {
	var (
		unit *domain.StockUnit
		err  error
	)
	if unitID != nil {
		unit, err = s.stock.RemoveUnit(ctx, itemID, *unitID, s.now())
	} else {
		unit, err = s.stock.RemoveOldest(ctx, itemID, s.now())
	}
	if err != nil {
		return nil, domain.NewStockError("remove", itemID, unitID, err)
	}

	s.logger.InfoContext(ctx, "unit removed",
		slog.Int64("item_id", itemID),
		slog.Int64("unit_id", unit.ID))

	return unit, nil
}

// OpenUnit opens the oldest unopened unit unless one is already open
func (s *InventoryService) OpenUnit(ctx context.Context, itemID int64) (*domain.StockUnit, error) {
	unit, err := s.stock.OpenOldest(ctx, itemID, s.now())
	if err != nil {
		return nil, domain.NewStockError("open", itemID, nil, err)
	}

	s.logger.InfoContext(ctx, "unit opened",
		slog.Int64("item_id", itemID),
		slog.Int64("unit_id", unit.ID))

	return unit, nil
}

// FinishUnit removes the open unit of the item
func (s *InventoryService) FinishUnit(ctx context.Context, itemID int64) (*domain.StockUnit, error) {
	unit, err := s.stock.FinishOpen(ctx, itemID, s.now())
	if err != nil {
		return nil, domain.NewStockError("finish", itemID, nil, err)
	}

	s.logger.InfoContext(ctx, "unit finished",
		slog.Int64("item_id", itemID),
		slog.Int64("unit_id", unit.ID))

	return unit, nil
}

// Summary returns the stock counts of one item
func (s *InventoryService) Summary(ctx context.Context, itemID int64) (*domain.StockSummary, error) {
	summaries, err := s.stock.Summaries(ctx, domain.StockFilter{ItemID: &itemID})
	if err != nil {
		return nil, fmt.Errorf("failed to summarize item %d: %w", itemID, err)
	}
	if len(summaries) == 0 {
		return nil, fmt.Errorf("item %d: %w", itemID, domain.ErrNotFound)
	}
	return summaries[0], nil
}

// Summaries lists stock counts per item
func (s *InventoryService) Summaries(ctx context.Context, filter domain.StockFilter) ([]*domain.StockSummary, error) {
	summaries, err := s.stock.Summaries(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock summaries: %w", err)
	}
	return summaries, nil
}

// UnitLabel rebuilds the printed label of a unit
func (s *InventoryService) UnitLabel(ctx context.Context, itemID, unitID int64) (*domain.Label, error) {
	item, err := s.ResolveByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("item %d: %w", itemID, domain.ErrNotFound)
	}

	unit, err := s.stock.FindUnit(ctx, unitID)
	if err != nil {
		return nil, fmt.Errorf("failed to find unit %d: %w", unitID, err)
	}
	if unit == nil || unit.ItemID != itemID {
		return nil, fmt.Errorf("unit %d of item %d: %w", unitID, itemID, domain.ErrNotFound)
	}

	label := domain.NewUnitLabel(item, unit)
	return &label, nil
}
