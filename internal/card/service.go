package card

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/mfreitas/contas/internal/billing"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=card
type Repository interface {
	CreateCard(ctx context.Context, c *Card) error
	GetCard(ctx context.Context, id uuid.UUID) (*Card, error)
	UpdateCard(ctx context.Context, c *Card) error
	DeleteCard(ctx context.Context, id uuid.UUID) error
	ListCards(ctx context.Context, houseID uuid.UUID) ([]*Card, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	HouseID    uuid.UUID
	Name       string
	LastFour   string
	ClosingDay int
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Card, error) {
	c := &Card{
		HouseID:    params.HouseID,
		Name:       params.Name,
		LastFour:   params.LastFour,
		ClosingDay: params.ClosingDay,
	}
	if err := s.repo.CreateCard(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Card, error) {
	return s.repo.GetCard(ctx, id)
}

func (s *Service) Update(ctx context.Context, c *Card) error {
	return s.repo.UpdateCard(ctx, c)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteCard(ctx, id)
}

func (s *Service) ListByHouse(ctx context.Context, houseID uuid.UUID) ([]*Card, error) {
	return s.repo.ListCards(ctx, houseID)
}

// ClosingDay returns the normalized closing day for a card. Unknown cards
// resolve to the default closing day rather than an error, so a dangling
// card reference never blocks recording a purchase.
func (s *Service) ClosingDay(ctx context.Context, cardID uuid.UUID) (int, error) {
	c, err := s.repo.GetCard(ctx, cardID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return billing.DefaultClosingDay, nil
		}

		return 0, err
	}

	return billing.NormalizeClosingDay(c.ClosingDay), nil
}
