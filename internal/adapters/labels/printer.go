// internal/adapters/labels/printer.go
package labels

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strconv"

	"github.com/ammerola/stockscan/internal/core/domain"
	"github.com/ammerola/stockscan/internal/core/ports"
)

// Print modes
const (
	ModeDirect = "direct"
	ModeQueue  = "queue"
	ModeOff    = "off"
)

// PNGPrinter transmits a rendered label image
type PNGPrinter interface {
	PrintPNG(ctx context.Context, png []byte) error
}

// Archive stores rendered label images
type Archive interface {
	Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error)
}

// DirectPrinter renders labels and sends them straight to the printer
type DirectPrinter struct {
	renderer *Renderer
	printer  PNGPrinter
	archive  Archive
	prefix   string
	logger   *slog.Logger
}

var _ ports.LabelPrinter = (*DirectPrinter)(nil)

// NewDirectPrinter creates a printer. archive may be nil.
func NewDirectPrinter(renderer *Renderer, printer PNGPrinter, archive Archive, prefix string, logger *slog.Logger) *DirectPrinter {
	if prefix == "" {
		prefix = "labels"
	}
	return &DirectPrinter{
		renderer: renderer,
		printer:  printer,
		archive:  archive,
		prefix:   prefix,
		logger:   logger.With(slog.String("component", "label_printer")),
	}
}

// Print renders and prints label, then archives the image. Archive
// failures are logged and never fail the print.
func (p *DirectPrinter) Print(ctx context.Context, label domain.Label) error {
	img, err := p.renderer.Render(label)
	if err != nil {
		return fmt.Errorf("failed to render label %s: %w", label.Code, err)
	}

	p.logger.InfoContext(ctx, "printing label",
		slog.String("code", label.Code),
		slog.String("line1", label.Line1),
		slog.String("line2", label.Line2),
		slog.String("date", label.Date))

	if err := p.printer.PrintPNG(ctx, img); err != nil {
		return fmt.Errorf("failed to print label %s: %w", label.Code, err)
	}

	p.archiveImage(ctx, label, img)
	return nil
}

func (p *DirectPrinter) archiveImage(ctx context.Context, label domain.Label, img []byte) {
	if p.archive == nil || label.ItemID == 0 || label.UnitID == 0 {
		return
	}

	key := ArchiveKey(p.prefix, label)
	if _, err := p.archive.Upload(ctx, key, bytes.NewReader(img), "image/png"); err != nil {
		p.logger.WarnContext(ctx, "failed to archive label",
			slog.String("key", key),
			slog.Any("error", err))
		return
	}
	p.logger.DebugContext(ctx, "label archived", slog.String("key", key))
}

// ArchiveKey returns the storage key of a label image:
// {prefix}/{itemId}/{unitId}.png
func ArchiveKey(prefix string, label domain.Label) string {
	return path.Join(prefix,
		strconv.FormatInt(label.ItemID, 10),
		strconv.FormatInt(label.UnitID, 10)+".png")
}

// DisabledPrinter accepts labels without printing them
type DisabledPrinter struct {
	logger *slog.Logger
}

var _ ports.LabelPrinter = (*DisabledPrinter)(nil)

// NewDisabledPrinter creates a printer for installations without hardware
func NewDisabledPrinter(logger *slog.Logger) *DisabledPrinter {
	return &DisabledPrinter{logger: logger.With(slog.String("component", "label_printer"))}
}

// Print logs the label
func (p *DisabledPrinter) Print(ctx context.Context, label domain.Label) error {
	p.logger.InfoContext(ctx, "label printing disabled",
		slog.String("code", label.Code),
		slog.String("line1", label.Line1),
		slog.String("date", label.Date))
	return nil
}
