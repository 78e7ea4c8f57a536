// internal/core/ports/item_repository.go
package ports

import (
	"context"

	"github.com/ammerola/stockscan/internal/core/domain"
)

// ItemRepository defines the persistence port for items and aliases.
// Lookups return (nil, nil) on a miss.
type ItemRepository interface {
	FindByCode(ctx context.Context, code string) (*domain.Item, error)
	FindByID(ctx context.Context, id int64) (*domain.Item, error)
	FindByName(ctx context.Context, name string) (*domain.Item, error)
	SearchCustomByName(ctx context.Context, substring string) ([]*domain.Item, error)
	Save(ctx context.Context, item *domain.Item) error
	SaveAlias(ctx context.Context, alias *domain.Alias) error
	FindAlias(ctx context.Context, code string) (*domain.Alias, error)
	Count(ctx context.Context) (int64, error)
}
