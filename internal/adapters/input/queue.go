// internal/adapters/input/queue.go
package input

import (
	"context"
	"sync"
	"time"

	"github.com/ammerola/stockscan/internal/core/ports"
)

// DefaultQueueSize is the number of scans buffered between reader and loop
const DefaultQueueSize = 64

// Queue hands completed scans from one producer to the scan loop.
// The producer must call Close after its last Push.
type Queue struct {
	scans     chan string
	done      chan struct{}
	closeOnce sync.Once
}

var _ ports.ScanSource = (*Queue)(nil)

// NewQueue creates a queue buffering up to size scans
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{
		scans: make(chan string, size),
		done:  make(chan struct{}),
	}
}

// Push enqueues a scan, blocking while the buffer is full
func (q *Queue) Push(ctx context.Context, scan string) error {
	select {
	case q.scans <- scan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close marks the producer side finished. Scans already queued are still
// delivered before Next reports ports.ErrInputDisconnected.
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		close(q.scans)
		close(q.done)
	})
}

// Done is closed once the producer has finished
func (q *Queue) Done() <-chan struct{} {
	return q.done
}

// Next waits up to timeout for the next scan
func (q *Queue) Next(ctx context.Context, timeout time.Duration) (string, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case scan, ok := <-q.scans:
		if !ok {
			return "", ports.ErrInputDisconnected
		}
		return scan, nil
	case <-timer.C:
		return "", ports.ErrScanTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
