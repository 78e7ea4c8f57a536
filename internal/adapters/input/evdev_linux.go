// internal/adapters/input/evdev_linux.go

//go:build linux

package input

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/sys/unix"
)

// EVIOCGRAB is _IOW('E', 0x90, int)
const eviocgrab = 0x40044590

type inputEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// EvdevReader reads a keyboard-emulating scanner from /dev/input/eventN
type EvdevReader struct {
	path   string
	grab   bool
	logger *slog.Logger
}

// NewEvdevReader creates a reader for the event device at path. With grab
// set the device is taken exclusively so scans do not reach the console.
func NewEvdevReader(path string, grab bool, logger *slog.Logger) *EvdevReader {
	return &EvdevReader{
		path:   path,
		grab:   grab,
		logger: logger.With(slog.String("component", "evdev_reader"), slog.String("device", path)),
	}
}

// Run decodes key events into scans and pushes them into q until the device
// goes away or ctx ends. q is closed on return.
func (er *EvdevReader) Run(ctx context.Context, q *Queue) error {
	defer q.Close()

	f, err := os.OpenFile(er.path, os.O_RDONLY, 0)
	if err != nil {
		return fmt.Errorf("failed to open scanner device: %w", err)
	}
	defer f.Close()

	if er.grab {
		if err := setGrab(f, true); err != nil {
			return fmt.Errorf("failed to grab scanner device: %w", err)
		}
		defer func() {
			if err := setGrab(f, false); err != nil {
				er.logger.WarnContext(ctx, "failed to release scanner device", slog.Any("error", err))
			}
		}()
	}

	stop := context.AfterFunc(ctx, func() { f.Close() })
	defer stop()

	er.logger.InfoContext(ctx, "reading scanner device", slog.Bool("grab", er.grab))

	var (
		decoder KeyDecoder
		ev      inputEvent
	)
	for {
		if err := binary.Read(f, binary.NativeEndian, &ev); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) {
				er.logger.WarnContext(ctx, "scanner device closed")
				return nil
			}
			return fmt.Errorf("failed to read scanner event: %w", err)
		}

		line, ok := decoder.Feed(ev.Type, ev.Code, ev.Value)
		if !ok {
			continue
		}
		if err := q.Push(ctx, line); err != nil {
			return err
		}
	}
}

func setGrab(f *os.File, grab bool) error {
	raw, err := f.SyscallConn()
	if err != nil {
		return err
	}

	value := 0
	if grab {
		value = 1
	}

	var ioctlErr error
	if err := raw.Control(func(fd uintptr) {
		ioctlErr = unix.IoctlSetInt(int(fd), eviocgrab, value)
	}); err != nil {
		return err
	}
	return ioctlErr
}
