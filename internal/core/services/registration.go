// internal/core/services/registration.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ammerola/stockscan/internal/core/domain"
	"github.com/ammerola/stockscan/internal/core/ports"
)

// RegistrationService turns an unknown barcode into an item, asking the
// operator whenever the product database has no answer or the name is
// already taken.
type RegistrationService struct {
	inventory ports.InventoryService
	lookup    ports.ProductLookup
	operator  ports.Operator
	logger    *slog.Logger
}

// NewRegistrationService creates a new registration service. lookup may be
// nil, in which case names are always entered manually.
func NewRegistrationService(inventory ports.InventoryService, lookup ports.ProductLookup, operator ports.Operator, logger *slog.Logger) *RegistrationService {
	return &RegistrationService{
		inventory: inventory,
		lookup:    lookup,
		operator:  operator,
		logger:    logger.With(slog.String("service", "registration")),
	}
}

// Register creates an item for code and returns the item code now resolves
// to. When the name belongs to a bought item the operator may alias code to
// it instead.
func (s *RegistrationService) Register(ctx context.Context, code string) (*domain.Item, error) {
	s.operator.Say(ctx, "registering %s", code)

	name, err := s.productName(ctx, code)
	if err != nil {
		return nil, err
	}

	existing, err := s.inventory.ResolveByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return s.aliasTo(ctx, code, existing)
	}

	item, err := s.inventory.RegisterBought(ctx, code, name)
	if err != nil {
		return nil, err
	}

	s.operator.Say(ctx, "created %s", item)
	return item, nil
}

func (s *RegistrationService) aliasTo(ctx context.Context, code string, existing *domain.Item) (*domain.Item, error) {
	if !existing.HasCode() {
		return nil, fmt.Errorf("%w: name collision with custom item %q", domain.ErrConflict, existing.Name)
	}

	answer, err := s.operator.Ask(ctx, fmt.Sprintf("name collision with %s, create alias? [Y/n] ", existing.CodeOrEmpty()))
	if err != nil {
		return nil, fmt.Errorf("failed to read confirmation: %w", err)
	}
	if !Confirmed(answer) {
		return nil, fmt.Errorf("%w: unresolved name conflict with %s", domain.ErrConflict, existing.CodeOrEmpty())
	}

	if _, err := s.inventory.CreateAlias(ctx, code, existing.CodeOrEmpty()); err != nil {
		return nil, err
	}

	s.operator.Say(ctx, "alias created")
	return existing, nil
}

// productName asks the product database first and the operator second
func (s *RegistrationService) productName(ctx context.Context, code string) (string, error) {
	if s.lookup != nil {
		s.operator.Say(ctx, "looking up name")

		name, found, err := s.lookup.LookupName(ctx, code)
		switch {
		case err != nil:
			s.logger.WarnContext(ctx, "product lookup failed",
				slog.String("code", code),
				slog.Any("error", err))
			s.operator.Say(ctx, "lookup failed: %v", err)
		case found:
			if name = strings.TrimSpace(name); name != "" {
				s.operator.Say(ctx, "found %q", name)
				return name, nil
			}
		}
	}

	answer, err := s.operator.Ask(ctx, "nothing found, enter name manually: ")
	if err != nil {
		return "", fmt.Errorf("failed to read name: %w", err)
	}

	name := strings.TrimSpace(answer)
	if name == "" {
		return "", fmt.Errorf("%w: no name provided", domain.ErrAborted)
	}
	return name, nil
}

// Confirmed reports whether answer accepts a "[Y/n]" prompt
func Confirmed(answer string) bool {
	answer = strings.TrimSpace(answer)
	return answer == "" || strings.EqualFold(answer, "y")
}
