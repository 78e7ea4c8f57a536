// internal/adapters/input/lines.go
package input

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LineReader reads newline-delimited scans from a file, FIFO or pipe
type LineReader struct {
	r      io.Reader
	name   string
	logger *slog.Logger
}

// NewLineReader creates a reader over r. name is used for logging only.
func NewLineReader(r io.Reader, name string, logger *slog.Logger) *LineReader {
	return &LineReader{
		r:      r,
		name:   name,
		logger: logger.With(slog.String("component", "line_reader"), slog.String("device", name)),
	}
}

// Run pushes every non-empty trimmed line into q and closes q when the input
// ends. A clean end of input returns nil.
func (lr *LineReader) Run(ctx context.Context, q *Queue) error {
	defer q.Close()

	scanner := bufio.NewScanner(lr.r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := q.Push(ctx, line); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		lr.logger.ErrorContext(ctx, "scan input failed", slog.Any("error", err))
		return fmt.Errorf("failed to read %s: %w", lr.name, err)
	}

	lr.logger.InfoContext(ctx, "scan input closed")
	return nil
}
