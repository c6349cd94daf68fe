package cards

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tellerdesk/tellerdesk/internal/shared"
)

// RepositoryPort defines data access methods for cards.
type RepositoryPort interface {
	CreateCard(ctx context.Context, c *Card) error
	ListCards(ctx context.Context) ([]Card, error)
	FindByNumber(ctx context.Context, cardNumber string) (*Card, error)
}

// CreateInput carries the fields for card issuance.
type CreateInput struct {
	CardNumber     string
	HolderName     string
	InitialBalance decimal.Decimal
}

// Service handles card business logic.
type Service struct {
	repo  RepositoryPort
	cache *Cache
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Create issues a new card. An absent initial balance is zero; a negative one
// is rejected before it reaches storage.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Card, error) {
	if input.InitialBalance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance must not be negative", shared.ErrValidation)
	}
	card := &Card{
		CardNumber: input.CardNumber,
		HolderName: input.HolderName,
		Balance:    input.InitialBalance,
	}
	if err := s.repo.CreateCard(ctx, card); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return card, nil
}

// List returns a snapshot of all cards, served from cache when fresh.
func (s *Service) List(ctx context.Context) ([]Card, error) {
	if cached, ok := s.cache.Get(ctx); ok {
		return cached, nil
	}
	cards, err := s.repo.ListCards(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, cards)
	return cards, nil
}

// FindByNumber fetches a single card.
func (s *Service) FindByNumber(ctx context.Context, cardNumber string) (*Card, error) {
	return s.repo.FindByNumber(ctx, cardNumber)
}
