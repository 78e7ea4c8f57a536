// internal/core/domain/label.go
package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Label layout constants
const (
	LabelLineWidth  = 20
	LabelDateLayout = "01/06"
)

// Label is the rendering payload for one printed label
type Label struct {
	Code   string `json:"code"`
	Line1  string `json:"line1"`
	Line2  string `json:"line2,omitempty"`
	Date   string `json:"date"`
	ItemID int64  `json:"item_id,omitempty"`
	UnitID int64  `json:"unit_id,omitempty"`
}

// NewUnitLabel builds the label for a custom item unit
func NewUnitLabel(item *Item, unit *StockUnit) Label {
	line1, line2 := SplitLabelName(item.Name, LabelLineWidth)
	return Label{
		Code:   RemovalRef{ItemID: item.ID, UnitID: unit.ID}.String(),
		Line1:  line1,
		Line2:  line2,
		Date:   FormatLabelDate(unit.AddedAt),
		ItemID: item.ID,
		UnitID: unit.ID,
	}
}

// FormatLabelDate formats t as month/two-digit year in the local zone.
// Timestamps come back from the database in UTC.
func FormatLabelDate(t time.Time) string {
	return t.In(time.Local).Format(LabelDateLayout)
}

// SplitLabelName wraps name first-fit at width columns. The first wrapped
// line is returned as is, the remaining lines are joined with a space.
func SplitLabelName(name string, width int) (string, string) {
	lines := WrapFirstFit(name, width)
	if len(lines) == 0 {
		return "", ""
	}
	return lines[0], strings.Join(lines[1:], " ")
}

// WrapFirstFit breaks text into lines of at most width runes, placing each
// word on the current line when it fits. Words longer than width are split.
func WrapFirstFit(text string, width int) []string {
	if width <= 0 {
		width = LabelLineWidth
	}

	var lines []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen > 0 {
			lines = append(lines, current.String())
			current.Reset()
			currentLen = 0
		}
	}

	for _, word := range strings.Fields(text) {
		for utf8.RuneCountInString(word) > width {
			flush()
			runes := []rune(word)
			lines = append(lines, string(runes[:width]))
			word = string(runes[width:])
		}

		wordLen := utf8.RuneCountInString(word)
		if wordLen == 0 {
			continue
		}
		if currentLen > 0 && currentLen+1+wordLen > width {
			flush()
		}
		if currentLen > 0 {
			current.WriteByte(' ')
			currentLen++
		}
		current.WriteString(word)
		currentLen += wordLen
	}
	flush()

	return lines
}
