// internal/pkg/logger/logger.go
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// ContextKey represents keys for context values
type ContextKey string

const (
	// Context keys for logging
	ContextKeyScanID   ContextKey = "scan_id"
	ContextKeyMode     ContextKey = "scan_mode"
	ContextKeyDevice   ContextKey = "device"
	ContextKeyTaskID   ContextKey = "task_id"
	ContextKeyTaskType ContextKey = "task_type"
	ContextKeyCommand  ContextKey = "command"
)

// contextKeys are copied from the context onto every record, in this order
var contextKeys = []ContextKey{
	ContextKeyDevice,
	ContextKeyScanID,
	ContextKeyMode,
	ContextKeyTaskType,
	ContextKeyTaskID,
	ContextKeyCommand,
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level       string
	Format      string // json or text
	Output      string // stderr, stdout or file:<path>
	AddSource   bool
	Color       bool
	Service     string
	Version     string
	Environment string
}

// Logger wraps slog.Logger with its configuration
type Logger struct {
	*slog.Logger
	config *LogConfig
}

// SetupLogger initializes the process logger. Output goes to stderr so
// operator prompts on stdout stay readable.
func SetupLogger(level string, format string) *Logger {
	_, noColor := os.LookupEnv("NO_COLOR")
	logger := NewLogger(&LogConfig{
		Level:       level,
		Format:      format,
		Output:      "stderr",
		AddSource:   strings.EqualFold(level, "debug"),
		Color:       !noColor,
		Service:     os.Getenv("SERVICE_NAME"),
		Version:     os.Getenv("SERVICE_VERSION"),
		Environment: os.Getenv("APP_ENV"),
	})
	slog.SetDefault(logger.Logger)
	return logger
}

// NewLogger builds the handler chain: format handler, context extraction,
// then redaction.
func NewLogger(config *LogConfig) *Logger {
	if config == nil {
		config = &LogConfig{Level: "info", Format: "json", Output: "stderr"}
	}

	opts := &slog.HandlerOptions{
		Level:     parseLevel(config.Level),
		AddSource: config.AddSource,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			return replaceAttr(config, groups, a)
		},
	}

	writer := getWriter(config.Output)

	var handler slog.Handler
	switch config.Format {
	case "text":
		handler = NewPrettyTextHandler(writer, opts, config.Color)
	default:
		handler = slog.NewJSONHandler(writer, opts)
	}
	handler = NewContextHandler(handler)
	handler = NewSanitizationHandler(handler)

	var attrs []slog.Attr
	if config.Service != "" {
		attrs = append(attrs, slog.String("service", config.Service))
	}
	if config.Version != "" {
		attrs = append(attrs, slog.String("version", config.Version))
	}
	if config.Environment != "" {
		attrs = append(attrs, slog.String("env", config.Environment))
	}
	if len(attrs) > 0 {
		handler = handler.WithAttrs(attrs)
	}

	return &Logger{Logger: slog.New(handler), config: config}
}

// WithScan returns a context carrying the scan correlation fields
func WithScan(ctx context.Context, scanID string, mode string) context.Context {
	ctx = context.WithValue(ctx, ContextKeyScanID, scanID)
	return context.WithValue(ctx, ContextKeyMode, mode)
}

// WithValue stores a logging field in the context
func WithValue(ctx context.Context, key ContextKey, value any) context.Context {
	return context.WithValue(ctx, key, value)
}

func parseLevel(level string) slog.Leveler {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getWriter(output string) io.Writer {
	switch {
	case output == "stdout":
		return os.Stdout
	case strings.HasPrefix(output, "file:"):
		file, err := os.OpenFile(strings.TrimPrefix(output, "file:"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return os.Stderr
		}
		return file
	default:
		return os.Stderr
	}
}

func extractContextAttrs(ctx context.Context) []slog.Attr {
	var attrs []slog.Attr
	for _, key := range contextKeys {
		switch v := ctx.Value(key).(type) {
		case nil:
		case string:
			if v != "" {
				attrs = append(attrs, slog.String(string(key), v))
			}
		case int64:
			attrs = append(attrs, slog.Int64(string(key), v))
		default:
			attrs = append(attrs, slog.Any(string(key), v))
		}
	}
	return attrs
}

func replaceAttr(config *LogConfig, _ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		if t, ok := a.Value.Any().(time.Time); ok {
			a.Value = slog.StringValue(t.Format(time.RFC3339Nano))
		}
	}

	// log aggregators read severity
	if a.Key == slog.LevelKey && config.Format == "json" {
		a.Key = "severity"
	}

	if strings.HasSuffix(a.Key, "_ms") {
		if d, ok := a.Value.Any().(time.Duration); ok {
			a.Value = slog.Int64Value(d.Milliseconds())
		}
	}

	return a
}
