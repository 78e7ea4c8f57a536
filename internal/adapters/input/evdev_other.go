// internal/adapters/input/evdev_other.go

//go:build !linux

package input

import (
	"context"
	"errors"
	"log/slog"
)

// EvdevReader is only available on Linux
type EvdevReader struct{}

// NewEvdevReader returns a reader that always fails
func NewEvdevReader(path string, grab bool, logger *slog.Logger) *EvdevReader {
	return &EvdevReader{}
}

// Run closes q and reports that evdev input is unsupported
func (er *EvdevReader) Run(ctx context.Context, q *Queue) error {
	q.Close()
	return errors.New("evdev scanner input requires linux")
}
