// internal/adapters/export/catalog.go
package export

import (
	"fmt"
	"strings"

	"github.com/tealeg/xlsx/v3"
)

// Catalog sheet names
const (
	ItemsSheet   = "Items"
	AliasesSheet = "Aliases"
)

// CatalogItem is one row of the Items sheet. An empty code means a custom
// item.
type CatalogItem struct {
	Row  int
	Name string
	Code string
}

// CatalogAlias is one row of the Aliases sheet
type CatalogAlias struct {
	Row    int
	Code   string
	Target string
}

// Catalog is an item and alias import
type Catalog struct {
	Items   []CatalogItem
	Aliases []CatalogAlias
}

// ReadCatalog opens an xlsx catalog from disk
func ReadCatalog(path string) (*Catalog, error) {
	file, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	return parseCatalog(file)
}

// ParseCatalog reads an xlsx catalog from memory
func ParseCatalog(data []byte) (*Catalog, error) {
	file, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	return parseCatalog(file)
}

func parseCatalog(file *xlsx.File) (*Catalog, error) {
	catalog := &Catalog{}

	items, ok := file.Sheet[ItemsSheet]
	if !ok {
		return nil, fmt.Errorf("catalog has no %q sheet", ItemsSheet)
	}

	err := forEachDataRow(items, func(n int, get func(int) string) {
		if name := get(0); name != "" {
			catalog.Items = append(catalog.Items, CatalogItem{Row: n, Name: name, Code: get(1)})
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s sheet: %w", ItemsSheet, err)
	}

	if aliases, ok := file.Sheet[AliasesSheet]; ok {
		err := forEachDataRow(aliases, func(n int, get func(int) string) {
			code, target := get(0), get(1)
			if code != "" || target != "" {
				catalog.Aliases = append(catalog.Aliases, CatalogAlias{Row: n, Code: code, Target: target})
			}
		})
		if err != nil {
			return nil, fmt.Errorf("failed to read %s sheet: %w", AliasesSheet, err)
		}
	}

	return catalog, nil
}

// forEachDataRow calls fn for every row after the header with its 1-based
// spreadsheet row number.
func forEachDataRow(sheet *xlsx.Sheet, fn func(n int, get func(int) string)) error {
	rowIdx := 0
	return sheet.ForEachRow(func(r *xlsx.Row) error {
		rowIdx++
		if rowIdx == 1 {
			return nil
		}

		get := func(i int) string {
			c := r.GetCell(i)
			if c == nil {
				return ""
			}
			return strings.TrimSpace(c.String())
		}
		fn(rowIdx, get)
		return nil
	})
}
