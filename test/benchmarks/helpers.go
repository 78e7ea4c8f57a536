// test/benchmarks/helpers.go
package benchmarks

import (
	"context"
	"fmt"
	"time"

	"github.com/ammerola/stockscan/internal/core/domain"
)

// key codes of the digit row on a US layout
var digitCodes = map[rune]uint16{
	'1': 2, '2': 3, '3': 4, '4': 5, '5': 6,
	'6': 7, '7': 8, '8': 9, '9': 10, '0': 11,
}

type keyEvent struct {
	evType uint16
	code   uint16
	value  int32
}

// scanEvents returns the press and release events a scanner emits for a
// numeric barcode, followed by Enter
func scanEvents(code string) []keyEvent {
	events := make([]keyEvent, 0, 2*len(code)+2)
	for _, r := range code {
		c, ok := digitCodes[r]
		if !ok {
			panic(fmt.Sprintf("no key code for %q", r))
		}
		events = append(events, keyEvent{1, c, 1}, keyEvent{1, c, 0})
	}
	return append(events, keyEvent{1, 28, 1}, keyEvent{1, 28, 0})
}

// createSummaries builds n summaries with mixed kinds and counts
func createSummaries(n int) []*domain.StockSummary {
	added := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	summaries := make([]*domain.StockSummary, 0, n)
	for i := 0; i < n; i++ {
		var item *domain.Item
		if i%3 == 0 {
			item = domain.NewCustomItem(fmt.Sprintf("Preserve batch %d", i))
		} else {
			item = domain.NewBoughtItem(fmt.Sprintf("40%011d", i), fmt.Sprintf("Bought item %d", i))
		}
		item.ID = int64(i + 1)
		oldest := added.Add(time.Duration(i) * time.Hour)
		summaries = append(summaries, &domain.StockSummary{
			Item:      *item,
			Available: i % 7,
			Open:      i % 2,
			Removed:   i % 5,
			OldestAdd: &oldest,
		})
	}
	return summaries
}

// quietOperator discards messages and never answers
type quietOperator struct{}

func (quietOperator) Say(context.Context, string, ...any) {}

func (quietOperator) Ask(context.Context, string) (string, error) {
	return "", domain.ErrAborted
}
