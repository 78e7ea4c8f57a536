// internal/adapters/terminal/operator.go
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/ammerola/stockscan/internal/core/domain"
	"github.com/ammerola/stockscan/internal/core/ports"
)

// Operator talks to the person at the scanner over a terminal. Answers are
// typed on the keyboard while scans arrive on a separate device.
type Operator struct {
	out     io.Writer
	answers chan string
	readErr error
	mu      sync.Mutex
	logger  *slog.Logger
}

var _ ports.Operator = (*Operator)(nil)

// NewOperator starts reading answers from in
func NewOperator(in io.Reader, out io.Writer, logger *slog.Logger) *Operator {
	o := &Operator{
		out:     out,
		answers: make(chan string, 16),
		logger:  logger.With(slog.String("component", "operator")),
	}
	go o.read(in)
	return o
}

func (o *Operator) read(in io.Reader) {
	defer close(o.answers)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		o.answers <- strings.TrimRight(scanner.Text(), "\r")
	}
	if err := scanner.Err(); err != nil {
		o.mu.Lock()
		o.readErr = err
		o.mu.Unlock()
		o.logger.Error("operator input failed", slog.String("error", err.Error()))
	}
}

// Say writes one line
func (o *Operator) Say(_ context.Context, format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.out, format+"\n", args...)
}

// Ask discards lines typed before the prompt, then waits for the next one
func (o *Operator) Ask(ctx context.Context, prompt string) (string, error) {
	if dropped := o.drain(); dropped > 0 {
		o.logger.DebugContext(ctx, "discarded stale operator input", slog.Int("lines", dropped))
	}

	o.mu.Lock()
	fmt.Fprint(o.out, prompt)
	o.mu.Unlock()

	select {
	case answer, ok := <-o.answers:
		if !ok {
			return "", o.closedErr()
		}
		return answer, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (o *Operator) drain() int {
	dropped := 0
	for {
		select {
		case _, ok := <-o.answers:
			if !ok {
				return dropped
			}
			dropped++
		default:
			return dropped
		}
	}
}

func (o *Operator) closedErr() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.readErr != nil {
		return fmt.Errorf("%w: operator input failed: %v", domain.ErrAborted, o.readErr)
	}
	return fmt.Errorf("%w: operator input closed", domain.ErrAborted)
}
