// internal/core/services/custom_item.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ammerola/stockscan/internal/core/domain"
	"github.com/ammerola/stockscan/internal/core/ports"
)

// CustomItemResult describes what one run of the custom item flow stocked
type CustomItemResult struct {
	Item        *domain.Item
	Units       []*domain.StockUnit
	Printed     int
	PrintErrors []error
}

// CustomItemService stocks home-made goods that carry no barcode and
// prints a label with a removal reference for every unit.
type CustomItemService struct {
	inventory ports.InventoryService
	printer   ports.LabelPrinter
	operator  ports.Operator
	logger    *slog.Logger
}

// NewCustomItemService creates a new custom item service. printer may be
// nil when printing is disabled.
func NewCustomItemService(inventory ports.InventoryService, printer ports.LabelPrinter, operator ports.Operator, logger *slog.Logger) *CustomItemService {
	return &CustomItemService{
		inventory: inventory,
		printer:   printer,
		operator:  operator,
		logger:    logger.With(slog.String("service", "custom_item")),
	}
}

// Run asks for a name and a count, stocks that many units and prints their
// labels. Label failures are collected in the result; stock is kept.
func (s *CustomItemService) Run(ctx context.Context) (*CustomItemResult, error) {
	s.operator.Say(ctx, "adding custom item")

	answer, err := s.operator.Ask(ctx, "enter name: ")
	if err != nil {
		return nil, fmt.Errorf("failed to read name: %w", err)
	}
	name := strings.TrimSpace(answer)
	if name == "" {
		return nil, fmt.Errorf("%w: no name provided", domain.ErrAborted)
	}

	item, err := s.chooseItem(ctx, name)
	if err != nil {
		return nil, err
	}

	count, err := s.askCount(ctx)
	if err != nil {
		return nil, err
	}

	units, err := s.inventory.AddUnits(ctx, item.ID, count)
	if err != nil {
		return nil, err
	}
	s.operator.Say(ctx, "added %d x %s", len(units), item.Name)

	result := &CustomItemResult{Item: item, Units: units}
	for i, unit := range units {
		if s.printer == nil {
			break
		}
		label := domain.NewUnitLabel(item, unit)
		s.operator.Say(ctx, "printing label [%d/%d] %s", i+1, len(units), label.Code)

		if err := s.printer.Print(ctx, label); err != nil {
			s.logger.WarnContext(ctx, "label print failed",
				slog.Int64("item_id", item.ID),
				slog.Int64("unit_id", unit.ID),
				slog.Any("error", err))
			s.operator.Say(ctx, "label for unit %d failed: %v", unit.ID, err)
			result.PrintErrors = append(result.PrintErrors, err)
			continue
		}
		result.Printed++
	}

	return result, nil
}

// chooseItem picks an existing custom item or creates one
func (s *CustomItemService) chooseItem(ctx context.Context, name string) (*domain.Item, error) {
	candidates, err := s.inventory.SearchCustomByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 1 && strings.EqualFold(candidates[0].Name, name) {
		s.operator.Say(ctx, "found existing item")
		return candidates[0], nil
	}

	if len(candidates) == 0 {
		answer, err := s.operator.Ask(ctx, "no existing item found, create new? [Y/n] ")
		if err != nil {
			return nil, fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !Confirmed(answer) {
			return nil, domain.ErrAborted
		}
		return s.create(ctx, name)
	}

	s.operator.Say(ctx, "found %d existing items:", len(candidates))
	for i, c := range candidates {
		s.operator.Say(ctx, "- [%d] %s", i+1, c.Name)
	}

	prompt := "enter number or leave empty to create new item, X to cancel: "
	for {
		answer, err := s.operator.Ask(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("failed to read choice: %w", err)
		}
		answer = strings.TrimSpace(answer)

		switch {
		case answer == "":
			return s.create(ctx, name)
		case strings.EqualFold(answer, "x"):
			return nil, domain.ErrAborted
		}

		idx, err := strconv.Atoi(answer)
		if err != nil || idx < 1 || idx > len(candidates) {
			prompt = "invalid index, try again: "
			continue
		}
		return candidates[idx-1], nil
	}
}

func (s *CustomItemService) create(ctx context.Context, name string) (*domain.Item, error) {
	item, err := s.inventory.RegisterCustom(ctx, name)
	if err != nil {
		return nil, err
	}
	s.operator.Say(ctx, "created %s", item)
	return item, nil
}

// askCount reads a unit count in 1..255, defaulting to 1
func (s *CustomItemService) askCount(ctx context.Context) (int, error) {
	prompt := "enter count [1]: "
	for {
		answer, err := s.operator.Ask(ctx, prompt)
		if err != nil {
			return 0, fmt.Errorf("failed to read count: %w", err)
		}
		answer = strings.TrimSpace(answer)
		if answer == "" {
			return 1, nil
		}

		count, err := strconv.ParseUint(answer, 10, 8)
		if err != nil {
			prompt = fmt.Sprintf("invalid input (%s), try again: ", answer)
			continue
		}
		if count == 0 {
			return 0, fmt.Errorf("%w: nothing to add to stock", domain.ErrAborted)
		}
		return int(count), nil
	}
}
