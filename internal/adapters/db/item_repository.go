// internal/adapters/db/item_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/stockscan/internal/core/domain"
	"github.com/ammerola/stockscan/internal/core/ports"
)

const itemColumns = "id, name, kind, code"

// itemRepository implements ports.ItemRepository
type itemRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *Database, logger *slog.Logger) ports.ItemRepository {
	return &itemRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "item")),
	}
}

func scanItem(row pgx.Row) (*domain.Item, error) {
	item := &domain.Item{}
	var kind string
	if err := row.Scan(&item.ID, &item.Name, &kind, &item.Code); err != nil {
		return nil, err
	}
	item.Kind = domain.ItemKind(kind)
	return item, nil
}

// FindByCode returns the item whose canonical code is code
func (r *itemRepository) FindByCode(ctx context.Context, code string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE code = $1`

	item, err := ScanOne(r.db.QueryRow(ctx, query, code), scanItem)
	if err != nil {
		return nil, fmt.Errorf("failed to find item by code: %w", err)
	}
	return item, nil
}

// FindByID returns the item with the given id
func (r *itemRepository) FindByID(ctx context.Context, id int64) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	item, err := ScanOne(r.db.QueryRow(ctx, query, id), scanItem)
	if err != nil {
		return nil, fmt.Errorf("failed to find item by id: %w", err)
	}
	return item, nil
}

// FindByName returns the item whose name equals name ignoring case, the
// oldest one if several exist.
func (r *itemRepository) FindByName(ctx context.Context, name string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE lower(name) = lower($1) ORDER BY id LIMIT 1`

	item, err := ScanOne(r.db.QueryRow(ctx, query, name), scanItem)
	if err != nil {
		return nil, fmt.Errorf("failed to find item by name: %w", err)
	}
	return item, nil
}

// SearchCustomByName returns custom items whose name contains substring,
// case-insensitively, ordered by name.
func (r *itemRepository) SearchCustomByName(ctx context.Context, substring string) ([]*domain.Item, error) {
	qb := squirrel.Select(itemColumns).
		From("items").
		Where(squirrel.Eq{"kind": string(domain.ItemKindCustom)}).
		Where(squirrel.ILike{"name": "%" + escapeLike(substring) + "%"}).
		OrderBy("lower(name)", "id").
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build search query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search custom items: %w", err)
	}

	items, err := ScanMany(rows, scanItem)
	if err != nil {
		return nil, fmt.Errorf("failed to scan custom items: %w", err)
	}

	r.logger.DebugContext(ctx, "custom item search",
		slog.String("substring", substring),
		slog.Int("matches", len(items)))

	return items, nil
}

// Save inserts a new item and sets its id
func (r *itemRepository) Save(ctx context.Context, item *domain.Item) error {
	item.PrepareForStorage()
	if err := item.Validate(); err != nil {
		return fmt.Errorf("invalid item: %w", err)
	}

	err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
		if item.HasCode() {
			if err := lockCode(ctx, tx, *item.Code); err != nil {
				return err
			}
			var aliased bool
			if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM aliases WHERE code = $1)`, *item.Code).Scan(&aliased); err != nil {
				return fmt.Errorf("failed to check aliases: %w", err)
			}
			if aliased {
				return fmt.Errorf("item code %s: %w: code is an alias", *item.Code, domain.ErrConflict)
			}
		}

		query := `INSERT INTO items (name, kind, code) VALUES ($1, $2, $3) RETURNING id`
		if err := tx.QueryRow(ctx, query, item.Name, string(item.Kind), item.Code).Scan(&item.ID); err != nil {
			return fmt.Errorf("failed to save item: %w", mapPgError(err))
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.DebugContext(ctx, "item saved",
		slog.Int64("item_id", item.ID),
		slog.String("kind", string(item.Kind)))

	return nil
}

// lockCode serialises item and alias inserts of the same barcode until the
// transaction ends, so a code is never both an item code and an alias.
func lockCode(ctx context.Context, tx pgx.Tx, code string) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, code); err != nil {
		return fmt.Errorf("failed to lock code %s: %w", code, err)
	}
	return nil
}

// SaveAlias inserts an alias. An alias code that is already an item code
// or an alias is a conflict; a missing target is not found.
func (r *itemRepository) SaveAlias(ctx context.Context, alias *domain.Alias) error {
	if err := alias.Validate(); err != nil {
		return fmt.Errorf("invalid alias: %w", err)
	}

	err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
		if err := lockCode(ctx, tx, alias.Code); err != nil {
			return err
		}

		query := `
			INSERT INTO aliases (code, target_code)
			SELECT $1, $2
			WHERE NOT EXISTS (SELECT 1 FROM items WHERE code = $1)
			RETURNING created_at`

		err := tx.QueryRow(ctx, query, alias.Code, alias.TargetCode).Scan(&alias.CreatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("alias %s: %w: code belongs to an item", alias.Code, domain.ErrConflict)
		}
		if err != nil {
			return fmt.Errorf("failed to save alias: %w", mapPgError(err))
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.DebugContext(ctx, "alias saved",
		slog.String("code", alias.Code),
		slog.String("target_code", alias.TargetCode))

	return nil
}

// FindAlias returns the alias registered for code
func (r *itemRepository) FindAlias(ctx context.Context, code string) (*domain.Alias, error) {
	query := `SELECT code, target_code, created_at FROM aliases WHERE code = $1`

	alias, err := ScanOne(r.db.QueryRow(ctx, query, code), func(row pgx.Row) (*domain.Alias, error) {
		a := &domain.Alias{}
		if err := row.Scan(&a.Code, &a.TargetCode, &a.CreatedAt); err != nil {
			return nil, err
		}
		return a, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find alias: %w", err)
	}
	return alias, nil
}

// Count returns the total number of items
func (r *itemRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM items`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike quotes LIKE wildcards so substring matches literally
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
