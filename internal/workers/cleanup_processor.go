// internal/workers/cleanup_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/hibiken/asynq"
)

// ReportStore lists and deletes stored reports
type ReportStore interface {
	List(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, key string) error
}

// CleanupProcessor prunes timestamped stock reports past their retention.
// Reports stored under an explicit key are never touched.
type CleanupProcessor struct {
	storage   ReportStore
	prefix    string
	retention time.Duration
	now       func() time.Time
	logger    *slog.Logger
}

// NewCleanupProcessor creates a new cleanup processor
func NewCleanupProcessor(storage ReportStore, prefix string, retention time.Duration, logger *slog.Logger) *CleanupProcessor {
	if prefix == "" {
		prefix = "exports"
	}
	return &CleanupProcessor{
		storage:   storage,
		prefix:    prefix,
		retention: retention,
		now:       time.Now,
		logger:    logger.With(slog.String("processor", "cleanup")),
	}
}

// PruneExports handles an export:prune task
func (p *CleanupProcessor) PruneExports(ctx context.Context, t *asynq.Task) error {
	ctx = taskContext(ctx, t)

	deleted, err := p.Prune(ctx)
	if err != nil {
		return err
	}

	p.logger.InfoContext(ctx, "old exports pruned", slog.Int("files_deleted", deleted))
	return nil
}

// Prune deletes reports generated before now minus the retention and returns
// how many were removed. A zero retention keeps everything.
func (p *CleanupProcessor) Prune(ctx context.Context) (int, error) {
	if p.retention <= 0 {
		return 0, nil
	}

	keys, err := p.storage.List(ctx, p.prefix+"/")
	if err != nil {
		return 0, fmt.Errorf("failed to list exports: %w", err)
	}

	cutoff := p.now().Add(-p.retention)
	var deleted int
	for _, key := range keys {
		at, ok := exportTime(key)
		if !ok || !at.Before(cutoff) {
			continue
		}

		if err := p.storage.Delete(ctx, key); err != nil {
			p.logger.WarnContext(ctx, "failed to delete export",
				slog.String("key", key),
				slog.String("error", err.Error()))
			continue
		}
		deleted++
	}

	return deleted, nil
}

// exportTime parses the generation time out of a key made by ExportKey
func exportTime(key string) (time.Time, bool) {
	name := path.Base(key)
	if !strings.HasPrefix(name, "stock-") || !strings.HasSuffix(name, ".xlsx") {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, "stock-"), ".xlsx")

	at, err := time.ParseInLocation("20060102-150405", stamp, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return at, true
}
