package benchmarks

import (
	"context"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/ammerola/stockscan/internal/adapters/export"
	"github.com/ammerola/stockscan/internal/adapters/input"
	"github.com/ammerola/stockscan/internal/adapters/labels"
	"github.com/ammerola/stockscan/internal/core/domain"
	"github.com/ammerola/stockscan/internal/handlers"
	"github.com/ammerola/stockscan/test/helpers"
	"github.com/ammerola/stockscan/test/mocks"
)

func BenchmarkScanParsing(b *testing.B) {
	scans := []string{"+++", ">>>", "~12|3456~", "4001234567890", "~+~", "~x|1~"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scan := scans[i%len(scans)]
		if _, ok := domain.ParseModeToken(scan); ok {
			continue
		}
		_, _ = domain.ParseRemovalRef(scan)
	}
}

func BenchmarkKeyDecoder(b *testing.B) {
	events := scanEvents("4001234567890")
	var decoder input.KeyDecoder

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, ev := range events {
			decoder.Feed(ev.evType, ev.code, ev.value)
		}
	}
}

func BenchmarkLabelRender(b *testing.B) {
	renderer := labels.NewRenderer()
	item := domain.NewCustomItem("Grandma's plum jam with cinnamon")
	item.ID = 12
	label := domain.NewUnitLabel(item, &domain.StockUnit{
		ID:      3456,
		ItemID:  12,
		AddedAt: time.Date(2025, 9, 14, 18, 0, 0, 0, time.UTC),
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := renderer.Render(label); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkStockWorkbook(b *testing.B) {
	summaries := createSummaries(500)
	at := time.Date(2025, 9, 14, 18, 0, 0, 0, time.UTC)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := export.NewStockWorkbook(summaries, at).Bytes(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkInterpreterIdleLookup(b *testing.B) {
	ctrl := gomock.NewController(b)
	inventory := mocks.NewMockInventoryService(ctrl)
	source := mocks.NewMockScanSource(ctrl)

	milk := domain.NewBoughtItem("4001234567890", "Whole Milk 1L")
	milk.ID = 1
	inventory.EXPECT().ResolveByCode(gomock.Any(), "4001234567890").Return(milk, nil).AnyTimes()
	inventory.EXPECT().Summary(gomock.Any(), int64(1)).Return(&domain.StockSummary{Item: *milk, Available: 3}, nil).AnyTimes()

	interp := handlers.NewInterpreter(source, inventory, nil, nil, quietOperator{}, 0, helpers.TestLogger())
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		interp.Handle(ctx, "4001234567890")
	}
}
