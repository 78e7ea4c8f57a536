// internal/workers/export_processor.go
package workers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/stockscan/internal/adapters/export"
	"github.com/ammerola/stockscan/internal/core/domain"
	"github.com/ammerola/stockscan/internal/core/ports"
)

// Uploader stores a finished report
type Uploader interface {
	Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error)
}

// ExportProcessor builds stock reports and uploads them to storage
type ExportProcessor struct {
	inventory ports.InventoryService
	storage   Uploader
	prefix    string
	now       func() time.Time
	logger    *slog.Logger
}

// NewExportProcessor creates a new export processor
func NewExportProcessor(inventory ports.InventoryService, storage Uploader, prefix string, logger *slog.Logger) *ExportProcessor {
	if prefix == "" {
		prefix = "exports"
	}
	return &ExportProcessor{
		inventory: inventory,
		storage:   storage,
		prefix:    prefix,
		now:       time.Now,
		logger:    logger.With(slog.String("processor", "export")),
	}
}

// ExportKey returns the default storage key of a report generated at at
func ExportKey(prefix string, at time.Time) string {
	return path.Join(prefix, "stock-"+at.UTC().Format("20060102-150405")+".xlsx")
}

// ProcessExport handles a stock:export task
func (p *ExportProcessor) ProcessExport(ctx context.Context, t *asynq.Task) error {
	ctx = taskContext(ctx, t)

	var payload StockExportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	p.logger.InfoContext(ctx, "processing stock export", slog.String("job_id", payload.JobID))

	location, err := p.Export(ctx, payload.Filter, payload.Key)
	if err != nil {
		return err
	}

	p.logger.InfoContext(ctx, "stock export completed",
		slog.String("job_id", payload.JobID),
		slog.String("location", location))
	return nil
}

// Export builds the report for filter and uploads it under key, or under a
// timestamped key when key is empty. It returns the storage location.
func (p *ExportProcessor) Export(ctx context.Context, filter domain.StockFilter, key string) (string, error) {
	start := p.now()

	summaries, err := p.inventory.Summaries(ctx, filter)
	if err != nil {
		return "", fmt.Errorf("failed to load stock summaries: %w", err)
	}

	data, err := export.NewStockWorkbook(summaries, start).Bytes()
	if err != nil {
		return "", fmt.Errorf("failed to build workbook: %w", err)
	}

	if key == "" {
		key = ExportKey(p.prefix, start)
	}

	location, err := p.storage.Upload(ctx, key, bytes.NewReader(data), export.ContentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload export: %w", err)
	}

	p.logger.InfoContext(ctx, "stock report stored",
		slog.String("key", key),
		slog.Int("items", len(summaries)),
		slog.Int("bytes", len(data)))

	return location, nil
}
