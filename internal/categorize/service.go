package categorize

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	FindCategory(ctx context.Context, houseID uuid.UUID, description string) (string, error)
	CreateMapping(ctx context.Context, houseID uuid.UUID, pattern, category string) error
}

// Service suggests categories for purchase descriptions based on mappings
// the house has taught it. Suggestions only; the engine treats whatever
// category ends up stored as opaque.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest tries to find a category for the given description.
// Returns empty string if no mapping matches.
func (s *Service) Suggest(ctx context.Context, houseID uuid.UUID, description string) (string, error) {
	return s.repo.FindCategory(ctx, houseID, description)
}

// Learn remembers a new mapping between a description pattern and a category.
func (s *Service) Learn(ctx context.Context, houseID uuid.UUID, pattern, category string) error {
	return s.repo.CreateMapping(ctx, houseID, pattern, category)
}
