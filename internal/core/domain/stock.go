// internal/core/domain/stock.go
package domain

import (
	"fmt"
	"time"
)

// UnitState is the lifecycle state of a stock unit
type UnitState string

// State constants
const (
	UnitStateAdded   UnitState = "added"
	UnitStateOpened  UnitState = "opened"
	UnitStateRemoved UnitState = "removed"
)

// StockUnit is one physical instance of an item
type StockUnit struct {
	ID        int64      `json:"id" db:"id"`
	ItemID    int64      `json:"item_id" db:"item_id"`
	AddedAt   time.Time  `json:"added_at" db:"added_at"`
	OpenedAt  *time.Time `json:"opened_at,omitempty" db:"opened_at"`
	RemovedAt *time.Time `json:"removed_at,omitempty" db:"removed_at"`
}

// State derives the lifecycle state from the timestamps
func (u *StockUnit) State() UnitState {
	switch {
	case u.RemovedAt != nil:
		return UnitStateRemoved
	case u.OpenedAt != nil:
		return UnitStateOpened
	default:
		return UnitStateAdded
	}
}

// IsAvailable reports whether the unit has not been removed
func (u *StockUnit) IsAvailable() bool {
	return u.RemovedAt == nil
}

// IsOpen reports whether the unit is opened and not removed
func (u *StockUnit) IsOpen() bool {
	return u.OpenedAt != nil && u.RemovedAt == nil
}

// IsUnopened reports whether the unit is available and never opened
func (u *StockUnit) IsUnopened() bool {
	return u.OpenedAt == nil && u.RemovedAt == nil
}

// Validate checks the timestamp ordering of the unit
func (u *StockUnit) Validate() error {
	if u.AddedAt.IsZero() {
		return fmt.Errorf("added_at is required")
	}
	if u.OpenedAt != nil && u.OpenedAt.Before(u.AddedAt) {
		return fmt.Errorf("opened_at cannot precede added_at")
	}
	if u.RemovedAt != nil {
		if u.RemovedAt.Before(u.AddedAt) {
			return fmt.Errorf("removed_at cannot precede added_at")
		}
		if u.OpenedAt != nil && u.RemovedAt.Before(*u.OpenedAt) {
			return fmt.Errorf("removed_at cannot precede opened_at")
		}
	}
	return nil
}

// StockSummary aggregates the units of one item
type StockSummary struct {
	Item       Item       `json:"item"`
	Available  int        `json:"available"`
	Open       int        `json:"open"`
	Removed    int        `json:"removed"`
	OldestAdd  *time.Time `json:"oldest_added_at,omitempty"`
	LastChange *time.Time `json:"last_change_at,omitempty"`
}

// Unopened returns the number of available units that are still sealed
func (s *StockSummary) Unopened() int {
	return s.Available - s.Open
}

// String renders the summary for operator reports
func (s *StockSummary) String() string {
	return fmt.Sprintf("%d in stock (%d open), %d used up", s.Available, s.Open, s.Removed)
}

// StockFilter narrows stock summary listings
type StockFilter struct {
	ItemID      *int64
	Kind        ItemKind
	NameLike    string
	InStockOnly bool
	SortBy      string
	SortOrder   string
	Limit       int
}
