//go:build integration

package db_test

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/ammerola/stockscan/internal/adapters/db"
	"github.com/ammerola/stockscan/internal/core/domain"
	"github.com/ammerola/stockscan/internal/core/ports"
	"github.com/ammerola/stockscan/test/helpers"
)

type RepositorySuite struct {
	suite.Suite
	testDB *helpers.TestDB
	items  ports.ItemRepository
	stock  ports.StockRepository
	ctx    context.Context
	t0     time.Time
}

func TestRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	s.items = db.NewItemRepository(s.testDB.Database, helpers.TestLogger())
	s.stock = db.NewStockRepository(s.testDB.Database, helpers.TestLogger())
	s.ctx = context.Background()
}

func (s *RepositorySuite) SetupTest() {
	helpers.TruncateAllTables(s.T(), s.testDB.PgxPool)
	s.t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (s *RepositorySuite) newItem(code, name string) *domain.Item {
	item := domain.NewBoughtItem(code, name)
	s.Require().NoError(s.items.Save(s.ctx, item))
	return item
}

func (s *RepositorySuite) at(minutes int) time.Time {
	return s.t0.Add(time.Duration(minutes) * time.Minute)
}

func (s *RepositorySuite) TestZeroStockOperationsFail() {
	item := s.newItem("111", "Milk")

	_, err := s.stock.RemoveOldest(s.ctx, item.ID, s.at(1))
	s.ErrorIs(err, domain.ErrNotInStock)

	_, err = s.stock.OpenOldest(s.ctx, item.ID, s.at(1))
	s.ErrorIs(err, domain.ErrNotInStock)

	_, err = s.stock.FinishOpen(s.ctx, item.ID, s.at(1))
	s.ErrorIs(err, domain.ErrNotOpen)

	units, err := s.stock.ListUnits(s.ctx, item.ID)
	s.Require().NoError(err)
	s.Empty(units)
}

func (s *RepositorySuite) TestUnknownItemIsNotFound() {
	_, err := s.stock.OpenOldest(s.ctx, 9999, s.at(1))
	s.ErrorIs(err, domain.ErrNotFound)

	_, err = s.stock.Add(s.ctx, 9999, s.at(1))
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *RepositorySuite) TestRemoveOldestIsFIFO() {
	item := s.newItem("111", "Milk")

	first, err := s.stock.Add(s.ctx, item.ID, s.at(1))
	s.Require().NoError(err)
	second, err := s.stock.Add(s.ctx, item.ID, s.at(2))
	s.Require().NoError(err)

	removed, err := s.stock.RemoveOldest(s.ctx, item.ID, s.at(3))
	s.Require().NoError(err)
	s.Equal(first.ID, removed.ID)
	s.Require().NotNil(removed.RemovedAt)

	removed, err = s.stock.RemoveOldest(s.ctx, item.ID, s.at(4))
	s.Require().NoError(err)
	s.Equal(second.ID, removed.ID)

	_, err = s.stock.RemoveOldest(s.ctx, item.ID, s.at(5))
	s.ErrorIs(err, domain.ErrNotInStock)
}

func (s *RepositorySuite) TestRemoveOldestSkipsOpenUnit() {
	item := s.newItem("111", "Milk")

	first, err := s.stock.Add(s.ctx, item.ID, s.at(1))
	s.Require().NoError(err)
	second, err := s.stock.Add(s.ctx, item.ID, s.at(2))
	s.Require().NoError(err)

	opened, err := s.stock.OpenOldest(s.ctx, item.ID, s.at(3))
	s.Require().NoError(err)
	s.Equal(first.ID, opened.ID)

	removed, err := s.stock.RemoveOldest(s.ctx, item.ID, s.at(4))
	s.Require().NoError(err)
	s.Equal(second.ID, removed.ID)
}

func (s *RepositorySuite) TestOpenAtMostOnce() {
	item := s.newItem("111", "Milk")
	for i := 1; i <= 2; i++ {
		_, err := s.stock.Add(s.ctx, item.ID, s.at(i))
		s.Require().NoError(err)
	}

	_, err := s.stock.OpenOldest(s.ctx, item.ID, s.at(3))
	s.Require().NoError(err)

	_, err = s.stock.OpenOldest(s.ctx, item.ID, s.at(4))
	s.ErrorIs(err, domain.ErrAlreadyOpen)

	finished, err := s.stock.FinishOpen(s.ctx, item.ID, s.at(5))
	s.Require().NoError(err)
	s.Require().NotNil(finished.RemovedAt)

	_, err = s.stock.FinishOpen(s.ctx, item.ID, s.at(6))
	s.ErrorIs(err, domain.ErrNotOpen)
}

func (s *RepositorySuite) TestConcurrentOpensLeaveOneOpen() {
	item := s.newItem("111", "Milk")
	_, err := s.stock.AddMany(s.ctx, item.ID, 5, s.at(1))
	s.Require().NoError(err)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.stock.OpenOldest(s.ctx, item.ID, s.at(2))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		s.ErrorIs(err, domain.ErrAlreadyOpen)
	}
	s.Equal(1, succeeded)

	summaries, err := s.stock.Summaries(s.ctx, domain.StockFilter{ItemID: &item.ID})
	s.Require().NoError(err)
	s.Require().Len(summaries, 1)
	s.Equal(1, summaries[0].Open)
	s.Equal(5, summaries[0].Available)
}

func (s *RepositorySuite) TestRemoveSpecificUnit() {
	item := s.newItem("111", "Milk")
	other := s.newItem("222", "Bread")

	unit, err := s.stock.Add(s.ctx, item.ID, s.at(1))
	s.Require().NoError(err)

	_, err = s.stock.RemoveUnit(s.ctx, other.ID, unit.ID, s.at(2))
	s.ErrorIs(err, domain.ErrNotInStock, "unit of another item")

	removed, err := s.stock.RemoveUnit(s.ctx, item.ID, unit.ID, s.at(2))
	s.Require().NoError(err)
	s.Equal(unit.ID, removed.ID)

	_, err = s.stock.RemoveUnit(s.ctx, item.ID, unit.ID, s.at(3))
	s.ErrorIs(err, domain.ErrNotInStock, "already removed")
}

func (s *RepositorySuite) TestTimestampsStayOrdered() {
	item := s.newItem("111", "Milk")
	unit, err := s.stock.Add(s.ctx, item.ID, s.at(10))
	s.Require().NoError(err)

	// A clock running behind must not produce removed_at < added_at.
	removed, err := s.stock.RemoveUnit(s.ctx, item.ID, unit.ID, s.at(5))
	s.Require().NoError(err)
	s.Require().NoError(removed.Validate())
	s.True(removed.RemovedAt.Equal(unit.AddedAt))
}

func (s *RepositorySuite) TestAddManyIsAtomic() {
	item := s.newItem("111", "Milk")

	units, err := s.stock.AddMany(s.ctx, item.ID, 3, s.at(1))
	s.Require().NoError(err)
	s.Len(units, 3)

	_, err = s.stock.AddMany(s.ctx, 9999, 3, s.at(1))
	s.Error(err)

	_, err = s.stock.AddMany(s.ctx, item.ID, 0, s.at(1))
	s.Error(err)

	all, err := s.stock.ListUnits(s.ctx, item.ID)
	s.Require().NoError(err)
	s.Len(all, 3)
}

func (s *RepositorySuite) TestAliasIndirection() {
	target := s.newItem("B", "Oat Drink")

	alias := &domain.Alias{Code: "A", TargetCode: "B"}
	s.Require().NoError(s.items.SaveAlias(s.ctx, alias))
	s.False(alias.CreatedAt.IsZero())

	found, err := s.items.FindAlias(s.ctx, "A")
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Equal("B", found.TargetCode)

	item, err := s.items.FindByCode(s.ctx, found.TargetCode)
	s.Require().NoError(err)
	s.Equal(target.ID, item.ID)

	missing, err := s.items.FindByCode(s.ctx, "A")
	s.Require().NoError(err)
	s.Nil(missing)
}

func (s *RepositorySuite) TestAliasConflicts() {
	s.newItem("B", "Oat Drink")
	s.newItem("C", "Soy Drink")

	s.Require().NoError(s.items.SaveAlias(s.ctx, &domain.Alias{Code: "A", TargetCode: "B"}))

	err := s.items.SaveAlias(s.ctx, &domain.Alias{Code: "A", TargetCode: "C"})
	s.ErrorIs(err, domain.ErrConflict, "alias code reused")

	err = s.items.SaveAlias(s.ctx, &domain.Alias{Code: "C", TargetCode: "B"})
	s.ErrorIs(err, domain.ErrConflict, "alias code is an item code")

	err = s.items.SaveAlias(s.ctx, &domain.Alias{Code: "D", TargetCode: "nope"})
	s.ErrorIs(err, domain.ErrNotFound, "missing target")
}

func (s *RepositorySuite) TestDuplicateCodeConflicts() {
	s.newItem("111", "Milk")

	err := s.items.Save(s.ctx, domain.NewBoughtItem("111", "Other Milk"))
	s.ErrorIs(err, domain.ErrConflict)
}

func (s *RepositorySuite) TestItemCodeThatIsAliasConflicts() {
	s.newItem("B", "Oat Drink")
	s.Require().NoError(s.items.SaveAlias(s.ctx, &domain.Alias{Code: "A", TargetCode: "B"}))

	err := s.items.Save(s.ctx, domain.NewBoughtItem("A", "Oat Drink Barista"))
	s.ErrorIs(err, domain.ErrConflict)
}

func (s *RepositorySuite) TestConcurrentItemAndAliasForSameCode() {
	s.newItem("B", "Oat Drink")

	for round := 0; round < 10; round++ {
		code := "X" + strconv.Itoa(round)

		var wg sync.WaitGroup
		var itemErr, aliasErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			itemErr = s.items.Save(s.ctx, domain.NewBoughtItem(code, "Racing Item"))
		}()
		go func() {
			defer wg.Done()
			aliasErr = s.items.SaveAlias(s.ctx, &domain.Alias{Code: code, TargetCode: "B"})
		}()
		wg.Wait()

		// exactly one of the two writers owns the code
		s.True((itemErr == nil) != (aliasErr == nil), "round %d: item=%v alias=%v", round, itemErr, aliasErr)
		if itemErr != nil {
			s.ErrorIs(itemErr, domain.ErrConflict)
		}
		if aliasErr != nil {
			s.ErrorIs(aliasErr, domain.ErrConflict)
		}
	}
}

func (s *RepositorySuite) TestFindByNameIgnoresCase() {
	item := s.newItem("111", "Whole Milk")

	found, err := s.items.FindByName(s.ctx, "whole MILK")
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Equal(item.ID, found.ID)

	missing, err := s.items.FindByName(s.ctx, "Whole")
	s.Require().NoError(err)
	s.Nil(missing)
}

func (s *RepositorySuite) TestSearchCustomByName() {
	for _, name := range []string{"plum jam", "Apricot Jam", "Jam_50%"} {
		s.Require().NoError(s.items.Save(s.ctx, domain.NewCustomItem(name)))
	}
	s.newItem("111", "Strawberry Jam")

	items, err := s.items.SearchCustomByName(s.ctx, "JAM")
	s.Require().NoError(err)

	var names []string
	for _, item := range items {
		names = append(names, item.Name)
		s.Equal(domain.ItemKindCustom, item.Kind)
	}
	s.Equal([]string{"Apricot Jam", "Jam_50%", "plum jam"}, names)

	literal, err := s.items.SearchCustomByName(s.ctx, "_50%")
	s.Require().NoError(err)
	s.Len(literal, 1)
}

func (s *RepositorySuite) TestSummaries() {
	milk := s.newItem("111", "Milk")
	bread := s.newItem("222", "Bread")
	s.newItem("333", "Butter")

	_, err := s.stock.AddMany(s.ctx, milk.ID, 3, s.at(1))
	s.Require().NoError(err)
	_, err = s.stock.OpenOldest(s.ctx, milk.ID, s.at(2))
	s.Require().NoError(err)
	_, err = s.stock.Add(s.ctx, bread.ID, s.at(3))
	s.Require().NoError(err)
	_, err = s.stock.RemoveOldest(s.ctx, bread.ID, s.at(4))
	s.Require().NoError(err)

	all, err := s.stock.Summaries(s.ctx, domain.StockFilter{})
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal("Bread", all[0].Item.Name)

	inStock, err := s.stock.Summaries(s.ctx, domain.StockFilter{InStockOnly: true})
	s.Require().NoError(err)
	s.Require().Len(inStock, 1)
	s.Equal(milk.ID, inStock[0].Item.ID)
	s.Equal(3, inStock[0].Available)
	s.Equal(1, inStock[0].Open)
	s.Equal(2, inStock[0].Unopened())

	one, err := s.stock.Summaries(s.ctx, domain.StockFilter{ItemID: &bread.ID})
	s.Require().NoError(err)
	s.Require().Len(one, 1)
	s.Equal(0, one[0].Available)
	s.Equal(1, one[0].Removed)
}

func TestVerifySchema_AfterMigrations(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}

	testDB := helpers.SetupTestDB(t)

	migrator, err := db.NewMigrator(&db.MigrationConfig{DatabaseURL: testDB.URL}, helpers.TestLogger())
	require.NoError(t, err)
	defer migrator.Close()

	version, dirty, err := migrator.Version(context.Background())
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(1), version)
	assert.NoError(t, migrator.Verify(context.Background()))
}
