package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestContextHandler_ExtractsScanFields(t *testing.T) {
	var buf bytes.Buffer
	handler := NewContextHandler(slog.NewJSONHandler(&buf, nil))
	log := slog.New(handler)

	ctx := WithScan(context.Background(), "scan-1", "add")
	ctx = WithValue(ctx, ContextKeyDevice, "/dev/input/event3")

	log.InfoContext(ctx, "stock unit added", slog.Int64("item_id", 7))

	entry := decodeLine(t, &buf)
	assert.Equal(t, "scan-1", entry["scan_id"])
	assert.Equal(t, "add", entry["scan_mode"])
	assert.Equal(t, "/dev/input/event3", entry["device"])
	assert.Equal(t, float64(7), entry["item_id"])
}

func TestSanitizationHandler_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewSanitizationHandler(slog.NewJSONHandler(&buf, nil)))

	log.Info("connecting with password=hunter2", slog.String("api_key", "abc"), slog.String("code", "4001234567890"))

	entry := decodeLine(t, &buf)
	assert.NotContains(t, entry["msg"], "hunter2")
	assert.Equal(t, "***REDACTED***", entry["api_key"])
	assert.Equal(t, "4001234567890", entry["code"])
}

func TestSanitizationHandler_RedactsConnectionStrings(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewSanitizationHandler(slog.NewJSONHandler(&buf, nil)))

	log.Info("database unreachable", slog.String("url", "postgres://stock:s3cret@db:5432/stockscan?sslmode=disable"))

	entry := decodeLine(t, &buf)
	assert.Equal(t, "postgres://stock:***REDACTED***@db:5432/stockscan?sslmode=disable", entry["url"])
}

func TestPrettyTextHandler(t *testing.T) {
	var buf bytes.Buffer
	handler := NewPrettyTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}, false)
	log := slog.New(handler).With(slog.String("component", "interpreter")).WithGroup("scan")

	log.Debug("hidden")
	log.Info("scan mode changed", slog.String("to", "add"))

	line := buf.String()
	assert.Contains(t, line, "INFO  scan mode changed component=interpreter scan.to=add\n")
	assert.NotContains(t, line, "hidden")
}

func TestNewLogger_JSONFields(t *testing.T) {
	log := NewLogger(&LogConfig{Level: "debug", Format: "json", Service: "stockscan"})
	assert.True(t, log.Enabled(context.Background(), slog.LevelDebug))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "WARN", want: slog.LevelWarn},
		{input: "warning", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "bogus", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input).Level())
		})
	}
}
