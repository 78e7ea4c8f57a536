// internal/adapters/queue/label_queue.go
package queue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/ammerola/stockscan/internal/core/domain"
	"github.com/ammerola/stockscan/internal/core/ports"
	"github.com/ammerola/stockscan/internal/workers"
)

// Enqueuer is the part of *asynq.Client the queue needs
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// LabelQueue defers label printing to the worker
type LabelQueue struct {
	client   Enqueuer
	maxRetry int
	now      func() time.Time
	logger   *slog.Logger
}

var _ ports.LabelPrinter = (*LabelQueue)(nil)

// NewLabelQueue creates a queueing printer
func NewLabelQueue(client Enqueuer, maxRetry int, logger *slog.Logger) *LabelQueue {
	if maxRetry <= 0 {
		maxRetry = 5
	}
	return &LabelQueue{
		client:   client,
		maxRetry: maxRetry,
		now:      time.Now,
		logger:   logger.With(slog.String("component", "label_queue")),
	}
}

// Print enqueues label. A queued label counts as printed for the caller.
func (q *LabelQueue) Print(ctx context.Context, label domain.Label) error {
	task, err := workers.NewLabelPrintTask(label, q.now())
	if err != nil {
		return err
	}

	info, err := q.client.EnqueueContext(ctx, task,
		asynq.Queue(workers.QueueLabels),
		asynq.MaxRetry(q.maxRetry),
		asynq.Retention(24*time.Hour))
	if err != nil {
		return fmt.Errorf("%w: failed to enqueue label %s: %v", domain.ErrIntegration, label.Code, err)
	}

	q.logger.InfoContext(ctx, "label queued",
		slog.String("code", label.Code),
		slog.String("task_id", info.ID),
		slog.String("queue", info.Queue))
	return nil
}

// EnqueueExport queues a stock report and returns its job id
func (q *LabelQueue) EnqueueExport(ctx context.Context, filter domain.StockFilter, key string) (string, error) {
	jobID := uuid.New().String()

	task, err := workers.NewStockExportTask(workers.StockExportPayload{
		JobID:       jobID,
		Key:         key,
		Filter:      filter,
		RequestedAt: q.now(),
	})
	if err != nil {
		return "", err
	}

	info, err := q.client.EnqueueContext(ctx, task,
		asynq.Queue(workers.QueueDefault),
		asynq.MaxRetry(3),
		asynq.Retention(24*time.Hour))
	if err != nil {
		return "", fmt.Errorf("failed to enqueue export: %w", err)
	}

	q.logger.InfoContext(ctx, "stock export queued",
		slog.String("job_id", jobID),
		slog.String("task_id", info.ID))
	return jobID, nil
}
