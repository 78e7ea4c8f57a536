package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/stockscan/internal/core/domain"
	"github.com/ammerola/stockscan/internal/core/services"
	"github.com/ammerola/stockscan/test/helpers"
	"github.com/ammerola/stockscan/test/mocks"
)

var fixedNow = time.Date(2025, 9, 14, 8, 30, 0, 0, time.UTC)

func newInventoryService(t *testing.T) (*services.InventoryService, *mocks.MockItemRepository, *mocks.MockStockRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	items := mocks.NewMockItemRepository(ctrl)
	stock := mocks.NewMockStockRepository(ctrl)
	svc := services.NewInventoryService(items, stock, helpers.TestLogger()).
		WithClock(func() time.Time { return fixedNow })
	return svc, items, stock
}

func TestInventoryService_ResolveByCode(t *testing.T) {
	milk := helpers.CreateTestItem(func(i *domain.Item) { i.ID = 7; i.Code = helpers.Ptr("B") })

	tests := []struct {
		name       string
		code       string
		setupMocks func(*mocks.MockItemRepository)
		expectedID int64
		expectNil  bool
		expectErr  bool
	}{
		{
			name: "direct_code",
			code: "B",
			setupMocks: func(m *mocks.MockItemRepository) {
				m.EXPECT().FindAlias(gomock.Any(), "B").Return(nil, nil)
				m.EXPECT().FindByCode(gomock.Any(), "B").Return(milk, nil)
			},
			expectedID: 7,
		},
		{
			name: "alias_followed_once",
			code: "A",
			setupMocks: func(m *mocks.MockItemRepository) {
				m.EXPECT().FindAlias(gomock.Any(), "A").Return(&domain.Alias{Code: "A", TargetCode: "B"}, nil)
				m.EXPECT().FindByCode(gomock.Any(), "B").Return(milk, nil)
			},
			expectedID: 7,
		},
		{
			name: "alias_target_is_not_reresolved",
			code: "A",
			setupMocks: func(m *mocks.MockItemRepository) {
				m.EXPECT().FindAlias(gomock.Any(), "A").Return(&domain.Alias{Code: "A", TargetCode: "C"}, nil)
				m.EXPECT().FindByCode(gomock.Any(), "C").Return(nil, nil)
			},
			expectNil: true,
		},
		{
			name: "unknown_code_is_not_an_error",
			code: "999",
			setupMocks: func(m *mocks.MockItemRepository) {
				m.EXPECT().FindAlias(gomock.Any(), "999").Return(nil, nil)
				m.EXPECT().FindByCode(gomock.Any(), "999").Return(nil, nil)
			},
			expectNil: true,
		},
		{
			name: "storage_error",
			code: "B",
			setupMocks: func(m *mocks.MockItemRepository) {
				m.EXPECT().FindAlias(gomock.Any(), "B").Return(nil, errors.New("connection reset"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, items, _ := newInventoryService(t)
			tt.setupMocks(items)

			item, err := svc.ResolveByCode(context.Background(), tt.code)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.expectNil {
				assert.Nil(t, item)
				return
			}
			require.NotNil(t, item)
			assert.Equal(t, tt.expectedID, item.ID)
		})
	}
}

func TestInventoryService_ResolveByName(t *testing.T) {
	svc, items, _ := newInventoryService(t)

	items.EXPECT().FindByName(gomock.Any(), "Milk").Return(&domain.Item{ID: 1, Name: "milk"}, nil)

	item, err := svc.ResolveByName(context.Background(), "  Milk ")
	require.NoError(t, err)
	assert.Equal(t, int64(1), item.ID)

	blank, err := svc.ResolveByName(context.Background(), "   ")
	require.NoError(t, err)
	assert.Nil(t, blank)
}

func TestInventoryService_CreateAlias(t *testing.T) {
	t.Run("saves_alias", func(t *testing.T) {
		svc, items, _ := newInventoryService(t)
		items.EXPECT().SaveAlias(gomock.Any(), &domain.Alias{Code: "A", TargetCode: "B"}).Return(nil)

		alias, err := svc.CreateAlias(context.Background(), "A", "B")
		require.NoError(t, err)
		assert.Equal(t, "B", alias.TargetCode)
	})

	t.Run("conflict_is_not_swallowed", func(t *testing.T) {
		svc, items, _ := newInventoryService(t)
		items.EXPECT().SaveAlias(gomock.Any(), gomock.Any()).Return(domain.ErrConflict)

		_, err := svc.CreateAlias(context.Background(), "A", "B")
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestInventoryService_RegisterBought(t *testing.T) {
	svc, items, _ := newInventoryService(t)

	items.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, item *domain.Item) error {
			assert.Equal(t, domain.ItemKindBought, item.Kind)
			assert.Equal(t, "111", item.CodeOrEmpty())
			item.ID = 3
			return nil
		})

	item, err := svc.RegisterBought(context.Background(), "111", "Milk")
	require.NoError(t, err)
	assert.Equal(t, int64(3), item.ID)
}

func TestInventoryService_StockOperations(t *testing.T) {
	unitID := int64(42)
	unit := &domain.StockUnit{ID: unitID, ItemID: 7, AddedAt: fixedNow}

	tests := []struct {
		name       string
		call       func(*services.InventoryService) (*domain.StockUnit, error)
		setupMocks func(*mocks.MockStockRepository)
		expectErr  error
		expectOp   string
	}{
		{
			name: "add_uses_clock",
			call: func(s *services.InventoryService) (*domain.StockUnit, error) {
				return s.AddUnit(context.Background(), 7)
			},
			setupMocks: func(m *mocks.MockStockRepository) {
				m.EXPECT().Add(gomock.Any(), int64(7), fixedNow).Return(unit, nil)
			},
		},
		{
			name: "remove_without_unit_takes_oldest",
			call: func(s *services.InventoryService) (*domain.StockUnit, error) {
				return s.RemoveUnit(context.Background(), 7, nil)
			},
			setupMocks: func(m *mocks.MockStockRepository) {
				m.EXPECT().RemoveOldest(gomock.Any(), int64(7), fixedNow).Return(unit, nil)
			},
		},
		{
			name: "remove_specific_unit",
			call: func(s *services.InventoryService) (*domain.StockUnit, error) {
				return s.RemoveUnit(context.Background(), 7, &unitID)
			},
			setupMocks: func(m *mocks.MockStockRepository) {
				m.EXPECT().RemoveUnit(gomock.Any(), int64(7), unitID, fixedNow).Return(unit, nil)
			},
		},
		{
			name: "remove_empty_stock",
			call: func(s *services.InventoryService) (*domain.StockUnit, error) {
				return s.RemoveUnit(context.Background(), 7, nil)
			},
			setupMocks: func(m *mocks.MockStockRepository) {
				m.EXPECT().RemoveOldest(gomock.Any(), int64(7), fixedNow).Return(nil, domain.ErrNotInStock)
			},
			expectErr: domain.ErrNotInStock,
			expectOp:  "remove",
		},
		{
			name: "open_already_open",
			call: func(s *services.InventoryService) (*domain.StockUnit, error) {
				return s.OpenUnit(context.Background(), 7)
			},
			setupMocks: func(m *mocks.MockStockRepository) {
				m.EXPECT().OpenOldest(gomock.Any(), int64(7), fixedNow).Return(nil, domain.ErrAlreadyOpen)
			},
			expectErr: domain.ErrAlreadyOpen,
			expectOp:  "open",
		},
		{
			name: "finish_nothing_open",
			call: func(s *services.InventoryService) (*domain.StockUnit, error) {
				return s.FinishUnit(context.Background(), 7)
			},
			setupMocks: func(m *mocks.MockStockRepository) {
				m.EXPECT().FinishOpen(gomock.Any(), int64(7), fixedNow).Return(nil, domain.ErrNotOpen)
			},
			expectErr: domain.ErrNotOpen,
			expectOp:  "finish",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, stock := newInventoryService(t)
			tt.setupMocks(stock)

			got, err := tt.call(svc)
			if tt.expectErr != nil {
				require.ErrorIs(t, err, tt.expectErr)
				var stockErr *domain.StockError
				require.ErrorAs(t, err, &stockErr)
				assert.Equal(t, tt.expectOp, stockErr.Op)
				assert.Equal(t, int64(7), stockErr.ItemID)
				assert.Equal(t, domain.OutcomeExpected, domain.Outcome(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, unitID, got.ID)
		})
	}
}

func TestInventoryService_AddUnits(t *testing.T) {
	t.Run("rejects_non_positive_count", func(t *testing.T) {
		svc, _, _ := newInventoryService(t)
		_, err := svc.AddUnits(context.Background(), 7, 0)
		assert.Error(t, err)
	})

	t.Run("adds_in_one_call", func(t *testing.T) {
		svc, _, stock := newInventoryService(t)
		stock.EXPECT().AddMany(gomock.Any(), int64(7), 3, fixedNow).
			Return([]*domain.StockUnit{{ID: 1}, {ID: 2}, {ID: 3}}, nil)

		units, err := svc.AddUnits(context.Background(), 7, 3)
		require.NoError(t, err)
		assert.Len(t, units, 3)
	})
}

func TestInventoryService_Summary(t *testing.T) {
	t.Run("single_item", func(t *testing.T) {
		svc, _, stock := newInventoryService(t)
		stock.EXPECT().Summaries(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, f domain.StockFilter) ([]*domain.StockSummary, error) {
				require.NotNil(t, f.ItemID)
				assert.Equal(t, int64(7), *f.ItemID)
				return []*domain.StockSummary{{Available: 2, Open: 1}}, nil
			})

		summary, err := svc.Summary(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Unopened())
	})

	t.Run("unknown_item", func(t *testing.T) {
		svc, _, stock := newInventoryService(t)
		stock.EXPECT().Summaries(gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := svc.Summary(context.Background(), 7)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestInventoryService_UnitLabel(t *testing.T) {
	jam := &domain.Item{ID: 7, Name: "Grandma's plum jam with cinnamon", Kind: domain.ItemKindCustom}
	added := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("builds_removal_reference", func(t *testing.T) {
		svc, items, stock := newInventoryService(t)
		items.EXPECT().FindByID(gomock.Any(), int64(7)).Return(jam, nil)
		stock.EXPECT().FindUnit(gomock.Any(), int64(42)).Return(&domain.StockUnit{ID: 42, ItemID: 7, AddedAt: added}, nil)

		label, err := svc.UnitLabel(context.Background(), 7, 42)
		require.NoError(t, err)
		assert.Equal(t, "~7|42~", label.Code)
		assert.Equal(t, "Grandma's plum jam", label.Line1)
		assert.Equal(t, "with cinnamon", label.Line2)
		assert.Equal(t, "09/25", label.Date)
	})

	t.Run("unit_of_other_item", func(t *testing.T) {
		svc, items, stock := newInventoryService(t)
		items.EXPECT().FindByID(gomock.Any(), int64(7)).Return(jam, nil)
		stock.EXPECT().FindUnit(gomock.Any(), int64(42)).Return(&domain.StockUnit{ID: 42, ItemID: 8, AddedAt: added}, nil)

		_, err := svc.UnitLabel(context.Background(), 7, 42)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
