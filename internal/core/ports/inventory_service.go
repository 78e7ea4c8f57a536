// internal/core/ports/inventory_service.go
package ports

import (
	"context"

	"github.com/ammerola/stockscan/internal/core/domain"
)

// InventoryService defines the application service port used by the scan
// interpreter, the admin CLI and the workers.
type InventoryService interface {
	// Resolver
	ResolveByCode(ctx context.Context, code string) (*domain.Item, error)
	ResolveByID(ctx context.Context, id int64) (*domain.Item, error)
	ResolveByName(ctx context.Context, name string) (*domain.Item, error)
	SearchCustomByName(ctx context.Context, substring string) ([]*domain.Item, error)
	RegisterBought(ctx context.Context, code, name string) (*domain.Item, error)
	RegisterCustom(ctx context.Context, name string) (*domain.Item, error)
	CreateAlias(ctx context.Context, code, targetCode string) (*domain.Alias, error)

	// Stock lifecycle
	AddUnit(ctx context.Context, itemID int64) (*domain.StockUnit, error)
	AddUnits(ctx context.Context, itemID int64, count int) ([]*domain.StockUnit, error)
	RemoveUnit(ctx context.Context, itemID int64, unitID *int64) (*domain.StockUnit, error)
	OpenUnit(ctx context.Context, itemID int64) (*domain.StockUnit, error)
	FinishUnit(ctx context.Context, itemID int64) (*domain.StockUnit, error)

	// Reporting
	Summary(ctx context.Context, itemID int64) (*domain.StockSummary, error)
	Summaries(ctx context.Context, filter domain.StockFilter) ([]*domain.StockSummary, error)
	UnitLabel(ctx context.Context, itemID, unitID int64) (*domain.Label, error)
}
