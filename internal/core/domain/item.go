// internal/core/domain/item.go
package domain

import (
	"fmt"
	"strings"
	"time"
)

// ItemKind distinguishes barcoded goods from home-made ones
type ItemKind string

// Kind constants, matching the item_kind enum in the database
const (
	ItemKindBought ItemKind = "bought"
	ItemKindCustom ItemKind = "custom"
)

// IsValid reports whether the kind is one of the known values
func (k ItemKind) IsValid() bool {
	return k == ItemKindBought || k == ItemKindCustom
}

// Item is a distinct trackable good
type Item struct {
	ID   int64    `json:"id" db:"id"`
	Name string   `json:"name" db:"name"`
	Kind ItemKind `json:"kind" db:"kind"`
	// Code is the canonical barcode, set iff Kind is bought.
	Code *string `json:"code,omitempty" db:"code"`
}

// NewBoughtItem builds an unsaved bought item
func NewBoughtItem(code, name string) *Item {
	return &Item{
		Name: name,
		Kind: ItemKindBought,
		Code: &code,
	}
}

// NewCustomItem builds an unsaved custom item
func NewCustomItem(name string) *Item {
	return &Item{
		Name: name,
		Kind: ItemKindCustom,
	}
}

// HasCode reports whether the item carries a canonical barcode
func (i *Item) HasCode() bool {
	return i.Code != nil && *i.Code != ""
}

// CodeOrEmpty returns the canonical barcode or an empty string
func (i *Item) CodeOrEmpty() string {
	if i.Code == nil {
		return ""
	}
	return *i.Code
}

// String renders the item for operator reports
func (i *Item) String() string {
	if i.HasCode() {
		return fmt.Sprintf("#%d %q (%s, %s)", i.ID, i.Name, i.Kind, *i.Code)
	}
	return fmt.Sprintf("#%d %q (%s)", i.ID, i.Name, i.Kind)
}

// Validate checks the item before it is stored
func (i *Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if !i.Kind.IsValid() {
		return fmt.Errorf("invalid item kind: %s", i.Kind)
	}
	switch i.Kind {
	case ItemKindBought:
		if !i.HasCode() {
			return fmt.Errorf("bought item requires a code")
		}
	case ItemKindCustom:
		if i.Code != nil {
			return fmt.Errorf("custom item cannot have a code")
		}
	}
	return nil
}

// PrepareForStorage normalizes fields before insert
func (i *Item) PrepareForStorage() {
	i.Name = strings.TrimSpace(i.Name)
	if i.Code != nil {
		code := strings.TrimSpace(*i.Code)
		i.Code = &code
	}
}

// Alias redirects a scanned code to another item's canonical code
type Alias struct {
	Code       string    `json:"code" db:"code"`
	TargetCode string    `json:"target_code" db:"target_code"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Validate checks the alias before it is stored
func (a *Alias) Validate() error {
	if a.Code == "" {
		return fmt.Errorf("alias code is required")
	}
	if a.TargetCode == "" {
		return fmt.Errorf("alias target code is required")
	}
	if a.Code == a.TargetCode {
		return fmt.Errorf("alias cannot point to itself: %s", a.Code)
	}
	return nil
}
