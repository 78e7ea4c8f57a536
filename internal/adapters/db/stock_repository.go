// internal/adapters/db/stock_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/stockscan/internal/core/domain"
	"github.com/ammerola/stockscan/internal/core/ports"
)

const unitColumns = "id, item_id, added_at, opened_at, removed_at"

// stockRepository implements ports.StockRepository. Every mutation locks
// the owning item row first, so operations on one item serialize while
// plain adds only take the foreign key share lock.
type stockRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewStockRepository creates a new stock repository
func NewStockRepository(db *Database, logger *slog.Logger) ports.StockRepository {
	return &stockRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "stock")),
	}
}

func scanUnit(row pgx.Row) (*domain.StockUnit, error) {
	u := &domain.StockUnit{}
	if err := row.Scan(&u.ID, &u.ItemID, &u.AddedAt, &u.OpenedAt, &u.RemovedAt); err != nil {
		return nil, err
	}
	return u, nil
}

// Add inserts one unopened unit for the item
func (r *stockRepository) Add(ctx context.Context, itemID int64, at time.Time) (*domain.StockUnit, error) {
	query := `INSERT INTO stock (item_id, added_at) VALUES ($1, $2) RETURNING ` + unitColumns

	unit, err := scanUnit(r.db.QueryRow(ctx, query, itemID, at))
	if err != nil {
		return nil, fmt.Errorf("failed to add stock unit: %w", mapPgError(err))
	}

	r.logger.DebugContext(ctx, "stock unit added",
		slog.Int64("item_id", itemID),
		slog.Int64("unit_id", unit.ID))

	return unit, nil
}

// AddMany inserts count units in one transaction
func (r *stockRepository) AddMany(ctx context.Context, itemID int64, count int, at time.Time) ([]*domain.StockUnit, error) {
	if count <= 0 {
		return nil, fmt.Errorf("unit count must be positive, got %d", count)
	}

	query := `INSERT INTO stock (item_id, added_at) VALUES ($1, $2) RETURNING ` + unitColumns

	units := make([]*domain.StockUnit, 0, count)
	err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
		for i := 0; i < count; i++ {
			unit, err := scanUnit(tx.QueryRow(ctx, query, itemID, at))
			if err != nil {
				return fmt.Errorf("failed to add stock unit %d of %d: %w", i+1, count, mapPgError(err))
			}
			units = append(units, unit)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.DebugContext(ctx, "stock units added",
		slog.Int64("item_id", itemID),
		slog.Int("count", count))

	return units, nil
}

// RemoveUnit removes a specific unit iff it belongs to the item and is
// still available.
func (r *stockRepository) RemoveUnit(ctx context.Context, itemID, unitID int64, at time.Time) (*domain.StockUnit, error) {
	var unit *domain.StockUnit
	err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
		if err := lockItem(ctx, tx, itemID); err != nil {
			return err
		}

		query := `
			UPDATE stock SET removed_at = GREATEST($3::timestamptz, added_at, opened_at)
			WHERE id = $1 AND item_id = $2 AND removed_at IS NULL
			RETURNING ` + unitColumns

		var err error
		unit, err = scanUnit(tx.QueryRow(ctx, query, unitID, itemID, at))
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotInStock
		}
		if err != nil {
			return fmt.Errorf("failed to remove stock unit: %w", mapPgError(err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.DebugContext(ctx, "stock unit removed",
		slog.Int64("item_id", itemID),
		slog.Int64("unit_id", unit.ID))

	return unit, nil
}

// RemoveOldest removes the oldest unopened available unit
func (r *stockRepository) RemoveOldest(ctx context.Context, itemID int64, at time.Time) (*domain.StockUnit, error) {
	return r.transition(ctx, "remove", itemID, at, transitionRule{
		selectWhere: "opened_at IS NULL AND removed_at IS NULL",
		orderBy:     "added_at, id",
		set:         "removed_at = GREATEST($2::timestamptz, added_at)",
		empty:       domain.ErrNotInStock,
	})
}

// OpenOldest opens the oldest unopened unit unless one is already open
func (r *stockRepository) OpenOldest(ctx context.Context, itemID int64, at time.Time) (*domain.StockUnit, error) {
	return r.transition(ctx, "open", itemID, at, transitionRule{
		guard:       "opened_at IS NOT NULL AND removed_at IS NULL",
		guardErr:    domain.ErrAlreadyOpen,
		selectWhere: "opened_at IS NULL AND removed_at IS NULL",
		orderBy:     "added_at, id",
		set:         "opened_at = GREATEST($2::timestamptz, added_at)",
		empty:       domain.ErrNotInStock,
	})
}

// FinishOpen removes the open unit with the earliest opened_at
func (r *stockRepository) FinishOpen(ctx context.Context, itemID int64, at time.Time) (*domain.StockUnit, error) {
	return r.transition(ctx, "finish", itemID, at, transitionRule{
		selectWhere: "opened_at IS NOT NULL AND removed_at IS NULL",
		orderBy:     "opened_at, id",
		set:         "removed_at = GREATEST($2::timestamptz, added_at, opened_at)",
		empty:       domain.ErrNotOpen,
	})
}

// transitionRule describes a select-oldest-then-update step
type transitionRule struct {
	guard       string
	guardErr    error
	selectWhere string
	orderBy     string
	set         string
	empty       error
}

func (r *stockRepository) transition(ctx context.Context, op string, itemID int64, at time.Time, rule transitionRule) (*domain.StockUnit, error) {
	var unit *domain.StockUnit
	err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
		if err := lockItem(ctx, tx, itemID); err != nil {
			return err
		}

		if rule.guard != "" {
			var blocked bool
			guardQuery := `SELECT EXISTS (SELECT 1 FROM stock WHERE item_id = $1 AND ` + rule.guard + `)`
			if err := tx.QueryRow(ctx, guardQuery, itemID).Scan(&blocked); err != nil {
				return fmt.Errorf("failed to check stock state: %w", err)
			}
			if blocked {
				return rule.guardErr
			}
		}

		selectQuery := `
			SELECT id FROM stock
			WHERE item_id = $1 AND ` + rule.selectWhere + `
			ORDER BY ` + rule.orderBy + `
			LIMIT 1
			FOR UPDATE`

		var unitID int64
		err := tx.QueryRow(ctx, selectQuery, itemID).Scan(&unitID)
		if errors.Is(err, pgx.ErrNoRows) {
			return rule.empty
		}
		if err != nil {
			return fmt.Errorf("failed to select stock unit: %w", err)
		}

		updateQuery := `UPDATE stock SET ` + rule.set + ` WHERE id = $1 RETURNING ` + unitColumns
		unit, err = scanUnit(tx.QueryRow(ctx, updateQuery, unitID, at))
		if err != nil {
			return fmt.Errorf("failed to update stock unit: %w", mapPgError(err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.DebugContext(ctx, "stock unit transitioned",
		slog.String("op", op),
		slog.Int64("item_id", itemID),
		slog.Int64("unit_id", unit.ID),
		slog.String("state", string(unit.State())))

	return unit, nil
}

// lockItem takes the per-item lock that serializes stock mutations
func lockItem(ctx context.Context, tx pgx.Tx, itemID int64) error {
	var id int64
	err := tx.QueryRow(ctx, `SELECT id FROM items WHERE id = $1 FOR NO KEY UPDATE`, itemID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("item %d: %w", itemID, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to lock item: %w", err)
	}
	return nil
}

// FindUnit returns the unit with the given id
func (r *stockRepository) FindUnit(ctx context.Context, unitID int64) (*domain.StockUnit, error) {
	query := `SELECT ` + unitColumns + ` FROM stock WHERE id = $1`

	unit, err := ScanOne(r.db.QueryRow(ctx, query, unitID), scanUnit)
	if err != nil {
		return nil, fmt.Errorf("failed to find stock unit: %w", err)
	}
	return unit, nil
}

// ListUnits returns all units of an item in FIFO order
func (r *stockRepository) ListUnits(ctx context.Context, itemID int64) ([]*domain.StockUnit, error) {
	query := `SELECT ` + unitColumns + ` FROM stock WHERE item_id = $1 ORDER BY added_at, id`

	rows, err := r.db.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock units: %w", err)
	}

	units, err := ScanMany(rows, scanUnit)
	if err != nil {
		return nil, fmt.Errorf("failed to scan stock units: %w", err)
	}
	return units, nil
}

// Summaries aggregates unit counts per item
func (r *stockRepository) Summaries(ctx context.Context, filter domain.StockFilter) ([]*domain.StockSummary, error) {
	qb := squirrel.Select(
		"i.id", "i.name", "i.kind", "i.code",
		"COUNT(s.id) FILTER (WHERE s.removed_at IS NULL)",
		"COUNT(s.id) FILTER (WHERE s.opened_at IS NOT NULL AND s.removed_at IS NULL)",
		"COUNT(s.id) FILTER (WHERE s.removed_at IS NOT NULL)",
		"MIN(s.added_at) FILTER (WHERE s.removed_at IS NULL)",
		"MAX(GREATEST(s.added_at, s.opened_at, s.removed_at))",
	).From("items i").
		LeftJoin("stock s ON s.item_id = i.id").
		GroupBy("i.id").
		PlaceholderFormat(squirrel.Dollar)

	if filter.ItemID != nil {
		qb = qb.Where(squirrel.Eq{"i.id": *filter.ItemID})
	}
	if filter.Kind != "" {
		qb = qb.Where(squirrel.Eq{"i.kind": string(filter.Kind)})
	}
	if filter.NameLike != "" {
		qb = qb.Where(squirrel.ILike{"i.name": "%" + escapeLike(filter.NameLike) + "%"})
	}
	if filter.InStockOnly {
		qb = qb.Having("COUNT(s.id) FILTER (WHERE s.removed_at IS NULL) > 0")
	}

	direction := "ASC"
	if filter.SortOrder == "desc" {
		direction = "DESC"
	}
	switch filter.SortBy {
	case "available":
		qb = qb.OrderBy(fmt.Sprintf("COUNT(s.id) FILTER (WHERE s.removed_at IS NULL) %s", direction), "i.id")
	case "oldest":
		qb = qb.OrderBy(fmt.Sprintf("MIN(s.added_at) FILTER (WHERE s.removed_at IS NULL) %s NULLS LAST", direction), "i.id")
	case "id":
		qb = qb.OrderBy(fmt.Sprintf("i.id %s", direction))
	default:
		qb = qb.OrderBy(fmt.Sprintf("lower(i.name) %s", direction), "i.id")
	}

	if filter.Limit > 0 {
		qb = qb.Limit(uint64(filter.Limit))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build summary query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock summaries: %w", err)
	}

	summaries, err := ScanMany(rows, func(row pgx.Row) (*domain.StockSummary, error) {
		s := &domain.StockSummary{}
		var kind string
		err := row.Scan(
			&s.Item.ID, &s.Item.Name, &kind, &s.Item.Code,
			&s.Available, &s.Open, &s.Removed,
			&s.OldestAdd, &s.LastChange,
		)
		if err != nil {
			return nil, err
		}
		s.Item.Kind = domain.ItemKind(kind)
		return s, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan stock summaries: %w", err)
	}

	return summaries, nil
}
