// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the resolver, the stock engine and the scan loop
var (
	ErrNotFound    = errors.New("not found")
	ErrNotInStock  = errors.New("not in stock")
	ErrNotOpen     = errors.New("no open unit")
	ErrAlreadyOpen = errors.New("a unit is already open")
	ErrConflict    = errors.New("conflict")
	ErrIntegration = errors.New("integration failure")
	ErrAborted     = errors.New("aborted by operator")
)

// StockError carries the context of a failed stock operation
type StockError struct {
	Op     string
	ItemID int64
	UnitID *int64
	Err    error
}

func (e *StockError) Error() string {
	if e.UnitID != nil {
		return fmt.Sprintf("stock %s failed for item %d unit %d: %v", e.Op, e.ItemID, *e.UnitID, e.Err)
	}
	return fmt.Sprintf("stock %s failed for item %d: %v", e.Op, e.ItemID, e.Err)
}

func (e *StockError) Unwrap() error {
	return e.Err
}

// NewStockError wraps err with the operation context
func NewStockError(op string, itemID int64, unitID *int64, err error) *StockError {
	return &StockError{Op: op, ItemID: itemID, UnitID: unitID, Err: err}
}

// OutcomeKind classifies an error for reporting
type OutcomeKind string

// Outcome kinds
const (
	OutcomeOK          OutcomeKind = "ok"
	OutcomeExpected    OutcomeKind = "expected"
	OutcomeIntegration OutcomeKind = "integration"
	OutcomeStorage     OutcomeKind = "storage"
)

// Outcome classifies err. Policy violations and operator decisions are
// expected; anything unclassified is treated as a storage failure.
func Outcome(err error) OutcomeKind {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrNotInStock),
		errors.Is(err, ErrNotOpen),
		errors.Is(err, ErrAlreadyOpen),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrAborted):
		return OutcomeExpected
	case errors.Is(err, ErrIntegration):
		return OutcomeIntegration
	default:
		return OutcomeStorage
	}
}
