package domain_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/stockscan/internal/core/domain"
)

func TestItem_Validate(t *testing.T) {
	code := "4001234567890"
	empty := ""

	tests := []struct {
		name      string
		item      *domain.Item
		wantError bool
		errorMsg  string
	}{
		{
			name: "valid_bought_item",
			item: domain.NewBoughtItem(code, "Milk"),
		},
		{
			name: "valid_custom_item",
			item: domain.NewCustomItem("Plum jam"),
		},
		{
			name:      "missing_name",
			item:      domain.NewCustomItem("   "),
			wantError: true,
			errorMsg:  "name is required",
		},
		{
			name:      "bought_without_code",
			item:      &domain.Item{Name: "Milk", Kind: domain.ItemKindBought, Code: &empty},
			wantError: true,
			errorMsg:  "bought item requires a code",
		},
		{
			name:      "custom_with_code",
			item:      &domain.Item{Name: "Jam", Kind: domain.ItemKindCustom, Code: &code},
			wantError: true,
			errorMsg:  "custom item cannot have a code",
		},
		{
			name:      "unknown_kind",
			item:      &domain.Item{Name: "Jam", Kind: "gifted"},
			wantError: true,
			errorMsg:  "invalid item kind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if tt.wantError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestItem_PrepareForStorage(t *testing.T) {
	item := domain.NewBoughtItem("  111 ", "  Milk  ")
	item.PrepareForStorage()

	assert.Equal(t, "Milk", item.Name)
	assert.Equal(t, "111", item.CodeOrEmpty())
	assert.True(t, item.HasCode())
}

func TestAlias_Validate(t *testing.T) {
	assert.NoError(t, (&domain.Alias{Code: "222", TargetCode: "111"}).Validate())
	assert.Error(t, (&domain.Alias{Code: "", TargetCode: "111"}).Validate())
	assert.Error(t, (&domain.Alias{Code: "111", TargetCode: ""}).Validate())
	assert.Error(t, (&domain.Alias{Code: "111", TargetCode: "111"}).Validate())
}

func TestStockUnit_State(t *testing.T) {
	added := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	opened := added.Add(time.Hour)
	removed := opened.Add(time.Hour)

	tests := []struct {
		name      string
		unit      domain.StockUnit
		state     domain.UnitState
		available bool
		open      bool
		unopened  bool
	}{
		{
			name:      "freshly_added",
			unit:      domain.StockUnit{AddedAt: added},
			state:     domain.UnitStateAdded,
			available: true,
			unopened:  true,
		},
		{
			name:      "opened",
			unit:      domain.StockUnit{AddedAt: added, OpenedAt: &opened},
			state:     domain.UnitStateOpened,
			available: true,
			open:      true,
		},
		{
			name:  "removed_after_open",
			unit:  domain.StockUnit{AddedAt: added, OpenedAt: &opened, RemovedAt: &removed},
			state: domain.UnitStateRemoved,
		},
		{
			name:  "removed_unopened",
			unit:  domain.StockUnit{AddedAt: added, RemovedAt: &removed},
			state: domain.UnitStateRemoved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.state, tt.unit.State())
			assert.Equal(t, tt.available, tt.unit.IsAvailable())
			assert.Equal(t, tt.open, tt.unit.IsOpen())
			assert.Equal(t, tt.unopened, tt.unit.IsUnopened())
			assert.NoError(t, tt.unit.Validate())
		})
	}
}

func TestStockUnit_Validate_TimestampOrdering(t *testing.T) {
	added := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	before := added.Add(-time.Minute)
	after := added.Add(time.Hour)

	assert.Error(t, (&domain.StockUnit{}).Validate())
	assert.Error(t, (&domain.StockUnit{AddedAt: added, OpenedAt: &before}).Validate())
	assert.Error(t, (&domain.StockUnit{AddedAt: added, RemovedAt: &before}).Validate())
	assert.Error(t, (&domain.StockUnit{AddedAt: added, OpenedAt: &after, RemovedAt: &added}).Validate())
}

func TestParseModeToken(t *testing.T) {
	tests := []struct {
		scan   string
		mode   domain.Mode
		isMode bool
	}{
		{scan: "???", mode: domain.ModeIdle, isMode: true},
		{scan: "+++", mode: domain.ModeRegister, isMode: true},
		{scan: ">>>", mode: domain.ModeAdd, isMode: true},
		{scan: "<<<", mode: domain.ModeRemove, isMode: true},
		{scan: "///", mode: domain.ModeOpen, isMode: true},
		{scan: "</<", mode: domain.ModeFinish, isMode: true},
		{scan: "~+~"},
		{scan: "4001234567890"},
		{scan: ""},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("token_%q", tt.scan), func(t *testing.T) {
			mode, ok := domain.ParseModeToken(tt.scan)
			assert.Equal(t, tt.isMode, ok)
			if tt.isMode {
				assert.Equal(t, tt.mode, mode)
				assert.Equal(t, tt.scan, mode.Token())
			}
		})
	}
}

func TestParseRemovalRef(t *testing.T) {
	tests := []struct {
		name  string
		scan  string
		want  domain.RemovalRef
		match bool
	}{
		{name: "valid_reference", scan: "~12|345~", want: domain.RemovalRef{ItemID: 12, UnitID: 345}, match: true},
		{name: "custom_action_token", scan: "~+~"},
		{name: "missing_unit", scan: "~12|~"},
		{name: "trailing_garbage", scan: "~12|345~x"},
		{name: "non_numeric", scan: "~a|b~"},
		{name: "overflowing_id", scan: "~99999999999999999999|1~"},
		{name: "plain_barcode", scan: "4001234567890"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, ok := domain.ParseRemovalRef(tt.scan)
			assert.Equal(t, tt.match, ok)
			if tt.match {
				assert.Equal(t, tt.want, ref)
				assert.Equal(t, tt.scan, ref.String())
			}
		})
	}
}

func TestSplitLabelName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line1 string
		line2 string
	}{
		{name: "short_name", input: "Plum jam", line1: "Plum jam"},
		{name: "exactly_twenty", input: "Strawberry rhubarb j", line1: "Strawberry rhubarb j"},
		{name: "two_lines", input: "Grandma's strawberry rhubarb jam", line1: "Grandma's strawberry", line2: "rhubarb jam"},
		{name: "rest_joined_on_second_line", input: "Very long name that keeps going and going on", line1: "Very long name that", line2: "keeps going and going on"},
		{name: "long_word_is_split", input: "Pflaumenmusmarmeladenglas", line1: "Pflaumenmusmarmelade", line2: "nglas"},
		{name: "empty_name", input: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line1, line2 := domain.SplitLabelName(tt.input, domain.LabelLineWidth)
			assert.Equal(t, tt.line1, line1)
			assert.Equal(t, tt.line2, line2)
		})
	}
}

func TestNewUnitLabel(t *testing.T) {
	item := &domain.Item{ID: 7, Name: "Apple sauce from the garden", Kind: domain.ItemKindCustom}
	unit := &domain.StockUnit{ID: 42, ItemID: 7, AddedAt: time.Date(2025, 9, 14, 12, 0, 0, 0, time.UTC)}

	label := domain.NewUnitLabel(item, unit)

	assert.Equal(t, "~7|42~", label.Code)
	assert.Equal(t, "Apple sauce from the", label.Line1)
	assert.Equal(t, "garden", label.Line2)
	assert.Equal(t, "09/25", label.Date)
	assert.Equal(t, int64(7), label.ItemID)
	assert.Equal(t, int64(42), label.UnitID)
}

func TestFormatLabelDate(t *testing.T) {
	saved := time.Local
	t.Cleanup(func() { time.Local = saved })

	// 23:30 UTC on the last day of September
	added := time.Date(2025, 9, 30, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		zone *time.Location
		want string
	}{
		{name: "utc", zone: time.UTC, want: "09/25"},
		{name: "east_of_utc", zone: time.FixedZone("CEST", 2*60*60), want: "10/25"},
		{name: "west_of_utc", zone: time.FixedZone("EDT", -4*60*60), want: "09/25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			time.Local = tt.zone
			assert.Equal(t, tt.want, domain.FormatLabelDate(added))

			label := domain.NewUnitLabel(
				&domain.Item{ID: 1, Name: "Soup", Kind: domain.ItemKindCustom},
				&domain.StockUnit{ID: 2, ItemID: 1, AddedAt: added})
			assert.Equal(t, tt.want, label.Date)
		})
	}

	t.Run("new_year_in_local_zone", func(t *testing.T) {
		time.Local = time.FixedZone("CET", 60*60)
		assert.Equal(t, "01/26", domain.FormatLabelDate(time.Date(2025, 12, 31, 23, 30, 0, 0, time.UTC)))
	})
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want domain.OutcomeKind
	}{
		{name: "nil_is_ok", err: nil, want: domain.OutcomeOK},
		{name: "wrapped_not_in_stock", err: fmt.Errorf("remove: %w", domain.ErrNotInStock), want: domain.OutcomeExpected},
		{name: "stock_error_already_open", err: domain.NewStockError("open", 1, nil, domain.ErrAlreadyOpen), want: domain.OutcomeExpected},
		{name: "conflict", err: domain.ErrConflict, want: domain.OutcomeExpected},
		{name: "aborted", err: domain.ErrAborted, want: domain.OutcomeExpected},
		{name: "integration", err: fmt.Errorf("printer: %w", domain.ErrIntegration), want: domain.OutcomeIntegration},
		{name: "unknown_is_storage", err: errors.New("connection reset"), want: domain.OutcomeStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.Outcome(tt.err))
		})
	}
}

func TestStockError_Unwrap(t *testing.T) {
	unitID := int64(9)
	err := domain.NewStockError("remove", 3, &unitID, domain.ErrNotInStock)

	assert.ErrorIs(t, err, domain.ErrNotInStock)
	assert.Equal(t, "stock remove failed for item 3 unit 9: not in stock", err.Error())

	var stockErr *domain.StockError
	require.ErrorAs(t, fmt.Errorf("scan: %w", err), &stockErr)
	assert.Equal(t, int64(3), stockErr.ItemID)
}
