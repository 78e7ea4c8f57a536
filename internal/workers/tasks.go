// internal/workers/tasks.go
package workers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/stockscan/internal/core/domain"
)

const (
	TypeLabelPrint  = "label:print"
	TypeStockExport = "stock:export"
	TypeExportPrune = "export:prune"
)

// Queue names
const (
	QueueLabels  = "labels"
	QueueDefault = "default"
	QueueLow     = "low"
)

// LabelPrintPayload represents the payload for deferred label printing
type LabelPrintPayload struct {
	Label       domain.Label `json:"label"`
	RequestedAt time.Time    `json:"requested_at"`
}

// StockExportPayload represents the payload for stock report jobs
type StockExportPayload struct {
	JobID       string             `json:"job_id"`
	Key         string             `json:"key"`
	Filter      domain.StockFilter `json:"filter"`
	RequestedAt time.Time          `json:"requested_at"`
}

// NewLabelPrintTask creates a label:print task
func NewLabelPrintTask(label domain.Label, at time.Time) (*asynq.Task, error) {
	b, err := json.Marshal(LabelPrintPayload{Label: label, RequestedAt: at})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal label payload: %w", err)
	}
	return asynq.NewTask(TypeLabelPrint, b), nil
}

// NewStockExportTask creates a stock:export task
func NewStockExportTask(payload StockExportPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export payload: %w", err)
	}
	return asynq.NewTask(TypeStockExport, b), nil
}

// NewExportPruneTask creates an export:prune task. It has no payload, the
// retention comes from the processor.
func NewExportPruneTask() *asynq.Task {
	return asynq.NewTask(TypeExportPrune, nil)
}

// RetryDelay backs off exponentially from one second up to ten minutes
func RetryDelay(n int, _ error, _ *asynq.Task) time.Duration {
	baseDelay := time.Second
	maxDelay := 10 * time.Minute
	if n > 20 {
		return maxDelay
	}
	delay := baseDelay * time.Duration(1<<uint(n))
	if delay > maxDelay {
		delay = maxDelay
	}
	return delay
}
