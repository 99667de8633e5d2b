package house

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=house
type Repository interface {
	CreateHouse(ctx context.Context, h *House, owner uuid.UUID) error
	GetHouse(ctx context.Context, id uuid.UUID) (*House, error)
	AddMember(ctx context.Context, m *Member) error
	GetMember(ctx context.Context, houseID, userID uuid.UUID) (*Member, error)
	ListMembers(ctx context.Context, houseID uuid.UUID) ([]*Member, error)
	ListHousesByUser(ctx context.Context, userID uuid.UUID) ([]*House, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a house and enrolls the creator as its owner, in one
// storage operation.
func (s *Service) Create(ctx context.Context, name string, createdBy uuid.UUID) (*House, error) {
	h := &House{
		Name:      name,
		CreatedBy: createdBy,
	}
	if err := s.repo.CreateHouse(ctx, h, createdBy); err != nil {
		return nil, err
	}

	return h, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*House, error) {
	return s.repo.GetHouse(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]*House, error) {
	return s.repo.ListHousesByUser(ctx, userID)
}

func (s *Service) AddMember(ctx context.Context, houseID, userID uuid.UUID, role Role) error {
	return s.repo.AddMember(ctx, &Member{
		HouseID: houseID,
		UserID:  userID,
		Role:    role,
	})
}

func (s *Service) Members(ctx context.Context, houseID uuid.UUID) ([]*Member, error) {
	return s.repo.ListMembers(ctx, houseID)
}

// Role returns the user's role in the house, or ErrNotMember.
func (s *Service) Role(ctx context.Context, houseID, userID uuid.UUID) (Role, error) {
	m, err := s.repo.GetMember(ctx, houseID, userID)
	if err != nil {
		return "", err
	}

	return m.Role, nil
}
