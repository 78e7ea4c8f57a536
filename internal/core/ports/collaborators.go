// internal/core/ports/collaborators.go
package ports

import (
	"context"
	"errors"
	"time"

	"github.com/ammerola/stockscan/internal/core/domain"
)

// ProductLookup resolves a barcode to a display name. found is false when
// the provider has no usable name; err is set when the provider failed.
type ProductLookup interface {
	LookupName(ctx context.Context, code string) (name string, found bool, err error)
}

// LabelPrinter renders and transmits one label
type LabelPrinter interface {
	Print(ctx context.Context, label domain.Label) error
}

// Operator is the request/response channel to the person at the scanner.
// Ask blocks until the operator answers.
type Operator interface {
	Say(ctx context.Context, format string, args ...any)
	Ask(ctx context.Context, prompt string) (string, error)
}

// Scan source conditions
var (
	ErrScanTimeout       = errors.New("no scan within timeout")
	ErrInputDisconnected = errors.New("scan input disconnected")
)

// ScanSource yields completed scan strings. Next returns ErrScanTimeout
// when nothing arrived within timeout and ErrInputDisconnected once no
// more scans will ever arrive.
type ScanSource interface {
	Next(ctx context.Context, timeout time.Duration) (string, error)
}
