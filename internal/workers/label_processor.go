// internal/workers/label_processor.go
package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/stockscan/internal/core/domain"
	"github.com/ammerola/stockscan/internal/core/ports"
	"github.com/ammerola/stockscan/internal/pkg/logger"
)

// LabelProcessor prints labels queued by the scan daemon
type LabelProcessor struct {
	printer ports.LabelPrinter
	logger  *slog.Logger
}

// NewLabelProcessor creates a new label processor. printer must be a
// device printer, never the label queue.
func NewLabelProcessor(printer ports.LabelPrinter, logger *slog.Logger) *LabelProcessor {
	return &LabelProcessor{
		printer: printer,
		logger:  logger.With(slog.String("processor", "label")),
	}
}

// ProcessLabel prints one label. Printer failures are retried, malformed
// payloads and rendering failures are not.
func (p *LabelProcessor) ProcessLabel(ctx context.Context, t *asynq.Task) error {
	ctx = taskContext(ctx, t)

	var payload LabelPrintPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.Label.Code == "" {
		return fmt.Errorf("label payload has no code: %w", asynq.SkipRetry)
	}

	p.logger.InfoContext(ctx, "printing queued label",
		slog.String("code", payload.Label.Code),
		slog.Duration("queued_for", time.Since(payload.RequestedAt)))

	if err := p.printer.Print(ctx, payload.Label); err != nil {
		if errors.Is(err, domain.ErrIntegration) {
			p.logger.WarnContext(ctx, "label printer unavailable, will retry",
				slog.String("code", payload.Label.Code),
				slog.Any("error", err))
			return err
		}
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	p.logger.InfoContext(ctx, "queued label printed", slog.String("code", payload.Label.Code))
	return nil
}

func taskContext(ctx context.Context, t *asynq.Task) context.Context {
	ctx = logger.WithValue(ctx, logger.ContextKeyTaskType, t.Type())
	if id, ok := asynq.GetTaskID(ctx); ok {
		ctx = logger.WithValue(ctx, logger.ContextKeyTaskID, id)
	}
	return ctx
}
