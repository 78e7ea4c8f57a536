// internal/handlers/middleware/middleware.go
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/stockscan/internal/core/domain"
	"github.com/ammerola/stockscan/internal/pkg/logger"
)

// ScanHandler handles one scan string
type ScanHandler interface {
	HandleScan(ctx context.Context, scan string) error
}

// ScanHandlerFunc adapts a function to ScanHandler
type ScanHandlerFunc func(ctx context.Context, scan string) error

// HandleScan calls f(ctx, scan)
func (f ScanHandlerFunc) HandleScan(ctx context.Context, scan string) error {
	return f(ctx, scan)
}

// Middleware wraps a ScanHandler
type Middleware func(next ScanHandler) ScanHandler

// Chain applies middlewares so that the first one listed runs outermost
func Chain(h ScanHandler, middlewares ...Middleware) ScanHandler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// ScanID adds a fresh correlation id and the current mode to the context
func ScanID(mode func() domain.Mode) Middleware {
	return func(next ScanHandler) ScanHandler {
		return ScanHandlerFunc(func(ctx context.Context, scan string) error {
			scanID, _ := ctx.Value(logger.ContextKeyScanID).(string)
			if scanID == "" {
				scanID = uuid.New().String()
			}
			ctx = logger.WithScan(ctx, scanID, string(mode()))
			return next.HandleScan(ctx, scan)
		})
	}
}

// Logger logs every handled scan. The level follows the outcome: expected
// refusals are warnings, storage and integration failures are errors.
func Logger(l *slog.Logger) Middleware {
	return func(next ScanHandler) ScanHandler {
		return ScanHandlerFunc(func(ctx context.Context, scan string) error {
			start := time.Now()

			l.DebugContext(ctx, "scan_received", slog.String("scan", scan))

			err := next.HandleScan(ctx, scan)

			duration := time.Since(start)
			outcome := domain.Outcome(err)

			level := slog.LevelInfo
			switch outcome {
			case domain.OutcomeExpected:
				level = slog.LevelWarn
			case domain.OutcomeIntegration, domain.OutcomeStorage:
				level = slog.LevelError
			}

			attrs := []any{
				slog.String("scan", scan),
				slog.String("outcome", string(outcome)),
				slog.Int64("duration_ms", duration.Milliseconds()),
			}
			if err != nil {
				attrs = append(attrs, slog.Any("error", err))
			}
			l.Log(ctx, level, "scan_completed", attrs...)

			return err
		})
	}
}

// Recovery turns a panic in the handler into an error so the scan loop
// keeps running.
func Recovery(l *slog.Logger) Middleware {
	return func(next ScanHandler) ScanHandler {
		return ScanHandlerFunc(func(ctx context.Context, scan string) (err error) {
			defer func() {
				if r := recover(); r != nil {
					scanID, _ := ctx.Value(logger.ContextKeyScanID).(string)

					l.ErrorContext(ctx, "panic recovered",
						slog.Any("error", r),
						slog.String("scan_id", scanID),
						slog.String("stack", string(debug.Stack())),
					)

					err = fmt.Errorf("scan handler panicked: %v", r)
				}
			}()

			return next.HandleScan(ctx, scan)
		})
	}
}
