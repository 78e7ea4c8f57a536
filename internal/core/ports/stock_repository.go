// internal/core/ports/stock_repository.go
package ports

import (
	"context"
	"time"

	"github.com/ammerola/stockscan/internal/core/domain"
)

// StockRepository defines the persistence port for stock units. Every
// method runs in its own transaction; selection of the eligible unit and
// its update happen under a row lock.
type StockRepository interface {
	Add(ctx context.Context, itemID int64, at time.Time) (*domain.StockUnit, error)
	AddMany(ctx context.Context, itemID int64, count int, at time.Time) ([]*domain.StockUnit, error)
	RemoveUnit(ctx context.Context, itemID, unitID int64, at time.Time) (*domain.StockUnit, error)
	RemoveOldest(ctx context.Context, itemID int64, at time.Time) (*domain.StockUnit, error)
	OpenOldest(ctx context.Context, itemID int64, at time.Time) (*domain.StockUnit, error)
	FinishOpen(ctx context.Context, itemID int64, at time.Time) (*domain.StockUnit, error)
	FindUnit(ctx context.Context, unitID int64) (*domain.StockUnit, error)
	ListUnits(ctx context.Context, itemID int64) ([]*domain.StockUnit, error)
	Summaries(ctx context.Context, filter domain.StockFilter) ([]*domain.StockSummary, error)
}
