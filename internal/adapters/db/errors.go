// internal/adapters/db/errors.go
package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ammerola/stockscan/internal/core/domain"
)

// Postgres error codes mapped to domain errors
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

const oneOpenPerItemIndex = "stock_one_open_per_item"

// mapPgError translates constraint violations into domain errors. Other
// errors pass through unchanged.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		if pgErr.ConstraintName == oneOpenPerItemIndex {
			return fmt.Errorf("%w: %s", domain.ErrAlreadyOpen, pgErr.Detail)
		}
		return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.Detail)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, pgErr.Detail)
	case pgCheckViolation:
		return fmt.Errorf("%w: constraint %s", domain.ErrConflict, pgErr.ConstraintName)
	}
	return err
}
