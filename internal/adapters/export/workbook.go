// internal/adapters/export/workbook.go
package export

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/stockscan/internal/core/domain"
)

// StockSheet is the sheet name of the stock report
const StockSheet = "Stock"

var stockHeader = []string{
	"ID", "Name", "Kind", "Code", "Available", "Open", "Unopened", "Removed", "Oldest Added", "Last Change",
}

// StockWorkbook renders stock summaries as an xlsx report
type StockWorkbook struct {
	generatedAt time.Time
	summaries   []*domain.StockSummary
}

// NewStockWorkbook creates a report of summaries
func NewStockWorkbook(summaries []*domain.StockSummary, generatedAt time.Time) *StockWorkbook {
	return &StockWorkbook{generatedAt: generatedAt, summaries: summaries}
}

// Build returns the xlsx file
func (w *StockWorkbook) Build() (*xlsx.File, error) {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet(StockSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to add sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, title := range stockHeader {
		header.AddCell().SetString(title)
	}

	for _, s := range w.summaries {
		row := sheet.AddRow()
		row.AddCell().SetInt64(s.Item.ID)
		row.AddCell().SetString(s.Item.Name)
		row.AddCell().SetString(string(s.Item.Kind))
		row.AddCell().SetString(s.Item.CodeOrEmpty())
		row.AddCell().SetInt(s.Available)
		row.AddCell().SetInt(s.Open)
		row.AddCell().SetInt(s.Unopened())
		row.AddCell().SetInt(s.Removed)
		setTime(row.AddCell(), s.OldestAdd)
		setTime(row.AddCell(), s.LastChange)
	}

	footer := sheet.AddRow()
	footer.AddCell().SetString("Generated")
	footer.AddCell().SetDateTime(w.generatedAt)

	return file, nil
}

// WriteTo writes the xlsx encoding to out
func (w *StockWorkbook) WriteTo(out io.Writer) (int64, error) {
	data, err := w.Bytes()
	if err != nil {
		return 0, err
	}
	n, err := out.Write(data)
	return int64(n), err
}

// Bytes returns the xlsx encoding
func (w *StockWorkbook) Bytes() ([]byte, error) {
	file, err := w.Build()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setTime(cell *xlsx.Cell, t *time.Time) {
	if t == nil {
		cell.SetString("")
		return
	}
	cell.SetDateTime(*t)
}

// ContentType is the MIME type of xlsx files
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
