package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/stockscan/internal/adapters/export"
	"github.com/ammerola/stockscan/internal/core/domain"
	"github.com/ammerola/stockscan/test/helpers"
	"github.com/ammerola/stockscan/test/mocks"
)

func TestImporter_Import(t *testing.T) {
	milk := &domain.Item{ID: 1, Name: "Whole Milk 1L", Kind: domain.ItemKindBought, Code: helpers.Ptr("4000400")}
	oat := &domain.Item{ID: 2, Name: "Oat Drink", Kind: domain.ItemKindBought, Code: helpers.Ptr("B")}
	jam := &domain.Item{ID: 3, Name: "Plum Jam", Kind: domain.ItemKindCustom}

	tests := []struct {
		name       string
		catalog    *export.Catalog
		dryRun     bool
		setupMocks func(*mocks.MockInventoryService)
		expected   ImportResult
		expectErr  bool
	}{
		{
			name: "registers_new_bought_item",
			catalog: &export.Catalog{Items: []export.CatalogItem{
				{Row: 2, Name: "Whole Milk 1L", Code: "4000400"},
			}},
			setupMocks: func(inv *mocks.MockInventoryService) {
				inv.EXPECT().ResolveByCode(gomock.Any(), "4000400").Return(nil, nil)
				inv.EXPECT().ResolveByName(gomock.Any(), "Whole Milk 1L").Return(nil, nil)
				inv.EXPECT().RegisterBought(gomock.Any(), "4000400", "Whole Milk 1L").Return(milk, nil)
			},
			expected: ImportResult{Created: 1},
		},
		{
			name: "known_code_is_skipped",
			catalog: &export.Catalog{Items: []export.CatalogItem{
				{Row: 2, Name: "Whole Milk 1L", Code: "4000400"},
			}},
			setupMocks: func(inv *mocks.MockInventoryService) {
				inv.EXPECT().ResolveByCode(gomock.Any(), "4000400").Return(milk, nil)
			},
			expected: ImportResult{Skipped: 1},
		},
		{
			name: "name_collision_becomes_alias",
			catalog: &export.Catalog{Items: []export.CatalogItem{
				{Row: 3, Name: "Oat Drink", Code: "A"},
			}},
			setupMocks: func(inv *mocks.MockInventoryService) {
				inv.EXPECT().ResolveByCode(gomock.Any(), "A").Return(nil, nil)
				inv.EXPECT().ResolveByName(gomock.Any(), "Oat Drink").Return(oat, nil)
				inv.EXPECT().CreateAlias(gomock.Any(), "A", "B").Return(&domain.Alias{Code: "A", TargetCode: "B"}, nil)
			},
			expected: ImportResult{Aliased: 1},
		},
		{
			name: "custom_collision_is_reported",
			catalog: &export.Catalog{Items: []export.CatalogItem{
				{Row: 4, Name: "Plum Jam", Code: "777"},
			}},
			setupMocks: func(inv *mocks.MockInventoryService) {
				inv.EXPECT().ResolveByCode(gomock.Any(), "777").Return(nil, nil)
				inv.EXPECT().ResolveByName(gomock.Any(), "Plum Jam").Return(jam, nil)
			},
			expected: ImportResult{Failed: []string{`Items row 4: conflict: name collision with custom item "Plum Jam"`}},
		},
		{
			name: "custom_rows",
			catalog: &export.Catalog{Items: []export.CatalogItem{
				{Row: 5, Name: "Plum Jam"},
				{Row: 6, Name: "Apple Pie"},
			}},
			setupMocks: func(inv *mocks.MockInventoryService) {
				inv.EXPECT().ResolveByName(gomock.Any(), "Plum Jam").Return(jam, nil)
				inv.EXPECT().ResolveByName(gomock.Any(), "Apple Pie").Return(nil, nil)
				inv.EXPECT().RegisterCustom(gomock.Any(), "Apple Pie").Return(&domain.Item{ID: 9, Name: "Apple Pie"}, nil)
			},
			expected: ImportResult{Created: 1, Skipped: 1},
		},
		{
			name: "alias_targets_resolved_item",
			catalog: &export.Catalog{Aliases: []export.CatalogAlias{
				{Row: 2, Code: "C", Target: "A"},
				{Row: 3, Code: "D", Target: "missing"},
			}},
			setupMocks: func(inv *mocks.MockInventoryService) {
				inv.EXPECT().ResolveByCode(gomock.Any(), "C").Return(nil, nil)
				// A is itself an alias of B
				inv.EXPECT().ResolveByCode(gomock.Any(), "A").Return(oat, nil)
				inv.EXPECT().CreateAlias(gomock.Any(), "C", "B").Return(&domain.Alias{Code: "C", TargetCode: "B"}, nil)
				inv.EXPECT().ResolveByCode(gomock.Any(), "D").Return(nil, nil)
				inv.EXPECT().ResolveByCode(gomock.Any(), "missing").Return(nil, nil)
			},
			expected: ImportResult{Aliased: 1, Failed: []string{"Aliases row 3: not found: alias target missing"}},
		},
		{
			name:   "dry_run_writes_nothing",
			dryRun: true,
			catalog: &export.Catalog{
				Items:   []export.CatalogItem{{Row: 2, Name: "Whole Milk 1L", Code: "4000400"}, {Row: 3, Name: "Apple Pie"}},
				Aliases: []export.CatalogAlias{{Row: 2, Code: "X", Target: "4000400"}},
			},
			setupMocks: func(inv *mocks.MockInventoryService) {
				inv.EXPECT().ResolveByCode(gomock.Any(), "4000400").Return(nil, nil).Times(2)
				inv.EXPECT().ResolveByName(gomock.Any(), "Apple Pie").Return(nil, nil)
				inv.EXPECT().ResolveByCode(gomock.Any(), "X").Return(nil, nil)
			},
			expected: ImportResult{Created: 2, Aliased: 1},
		},
		{
			name: "storage_failure_aborts",
			catalog: &export.Catalog{Items: []export.CatalogItem{
				{Row: 2, Name: "Whole Milk 1L", Code: "4000400"},
				{Row: 3, Name: "Apple Pie"},
			}},
			setupMocks: func(inv *mocks.MockInventoryService) {
				inv.EXPECT().ResolveByCode(gomock.Any(), "4000400").Return(nil, errors.New("connection reset"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			inv := mocks.NewMockInventoryService(ctrl)
			tt.setupMocks(inv)

			result, err := newImporter(inv, tt.dryRun, helpers.TestLogger()).Import(context.Background(), tt.catalog)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, *result)
		})
	}
}
