package purchase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mfreitas/contas/internal/billing"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=purchase
type Repository interface {
	CreatePurchase(ctx context.Context, p *Purchase) error
	GetPurchase(ctx context.Context, id uuid.UUID) (*Purchase, error)
	UpdatePurchase(ctx context.Context, p *Purchase) error
	DeletePurchase(ctx context.Context, id uuid.UUID) error

	ListPurchases(ctx context.Context, filter ListFilter) ([]*Purchase, error)

	BeginImport(ctx context.Context, houseID uuid.UUID, minDate, maxDate time.Time) (ImportTx, error)
}

type ImportTx interface {
	FindDuplicates(ctx context.Context, houseID uuid.UUID, params []CreateParams) ([]*Purchase, error)
	CreatePurchases(ctx context.Context, ps []*Purchase) error
	Commit() error
	Rollback() error
}

// ClosingDays resolves a card's statement closing day. Implementations
// must return a usable day for any id: unknown cards and cards with
// out-of-range values resolve to billing.DefaultClosingDay.
type ClosingDays interface {
	ClosingDay(ctx context.Context, cardID uuid.UUID) (int, error)
}

type Service struct {
	repo  Repository
	cards ClosingDays
}

func NewService(repo Repository, cards ClosingDays) *Service {
	return &Service{repo: repo, cards: cards}
}

type CreateParams struct {
	HouseID     uuid.UUID
	CardID      *uuid.UUID
	Amount      int64
	Description string
	Category    string
	Installment string
	Date        time.Time
	CreatedBy   uuid.UUID
}

type ListFilter struct {
	HouseID   uuid.UUID
	CardID    *uuid.UUID
	Category  *string
	StartDate *time.Time
	EndDate   *time.Time
}

// Create records a purchase and assigns its billing month once, from the
// card's closing day as of today. The stored month stays authoritative
// even if the card's closing day changes later.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Purchase, error) {
	cycle, err := s.resolveCycle(ctx, params.CardID, params.Date)
	if err != nil {
		return nil, err
	}

	p := &Purchase{
		HouseID:      params.HouseID,
		CardID:       params.CardID,
		Amount:       params.Amount,
		Description:  params.Description,
		Category:     params.Category,
		Installment:  params.Installment,
		Date:         params.Date,
		BillingMonth: &cycle.Month,
		CreatedBy:    params.CreatedBy,
	}
	if err := s.repo.CreatePurchase(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Purchase, error) {
	return s.repo.GetPurchase(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Purchase, error) {
	return s.repo.ListPurchases(ctx, filter)
}

func (s *Service) Update(ctx context.Context, p *Purchase) error {
	return s.repo.UpdatePurchase(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeletePurchase(ctx, id)
}

func (s *Service) resolveCycle(ctx context.Context, cardID *uuid.UUID, date time.Time) (billing.Cycle, error) {
	closingDay := billing.DefaultClosingDay

	if cardID != nil {
		day, err := s.cards.ClosingDay(ctx, *cardID)
		if err != nil {
			return billing.Cycle{}, fmt.Errorf("resolving closing day: %w", err)
		}

		closingDay = day
	}

	return billing.ResolveCycle(date, closingDay), nil
}

type ImportResult struct {
	Imported  []*Purchase
	New       []CreateParams
	Conflicts []Conflict
}

type Conflict struct {
	Incoming CreateParams
	Existing *Purchase
}

// ImportBatch records a batch of purchases, typically parsed from a card
// statement export. When any incoming purchase matches an existing one on
// date, amount and description, nothing is written and the conflicts are
// returned for the caller to resolve.
func (s *Service) ImportBatch(ctx context.Context, houseID uuid.UUID, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	minDate, maxDate := dateRange(params)

	itx, err := s.repo.BeginImport(ctx, houseID, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	duplicates, err := itx.FindDuplicates(ctx, houseID, params)
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	type dupKey struct {
		Date        string
		Amount      int64
		Description string
	}

	lookup := make(map[dupKey]*Purchase, len(duplicates))

	for _, d := range duplicates {
		k := dupKey{
			Date:        d.Date.Format(time.DateOnly),
			Amount:      d.Amount,
			Description: d.Description,
		}
		lookup[k] = d
	}

	var newParams []CreateParams

	var conflicts []Conflict

	for _, p := range params {
		k := dupKey{
			Date:        p.Date.Format(time.DateOnly),
			Amount:      p.Amount,
			Description: p.Description,
		}

		existing, found := lookup[k]
		if found {
			conflicts = append(conflicts, Conflict{Incoming: p, Existing: existing})
			continue
		}

		newParams = append(newParams, p)
	}

	if len(conflicts) > 0 {
		return &ImportResult{New: newParams, Conflicts: conflicts}, nil
	}

	ps, err := s.paramsToPurchases(ctx, newParams)
	if err != nil {
		return nil, err
	}

	if err := itx.CreatePurchases(ctx, ps); err != nil {
		return nil, fmt.Errorf("create purchases: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return &ImportResult{Imported: ps}, nil
}

// CreateBatch records a batch without duplicate checking. Used to confirm
// an import after the caller has resolved its conflicts.
func (s *Service) CreateBatch(ctx context.Context, houseID uuid.UUID, params []CreateParams) ([]*Purchase, error) {
	if len(params) == 0 {
		return nil, nil
	}

	minDate, maxDate := dateRange(params)

	itx, err := s.repo.BeginImport(ctx, houseID, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	ps, err := s.paramsToPurchases(ctx, params)
	if err != nil {
		return nil, err
	}

	if err := itx.CreatePurchases(ctx, ps); err != nil {
		return nil, fmt.Errorf("create purchases: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return ps, nil
}

func dateRange(params []CreateParams) (time.Time, time.Time) {
	minDate := params[0].Date
	maxDate := params[0].Date

	for _, p := range params[1:] {
		if p.Date.Before(minDate) {
			minDate = p.Date
		}

		if p.Date.After(maxDate) {
			maxDate = p.Date
		}
	}

	return minDate, maxDate
}

func (s *Service) paramsToPurchases(ctx context.Context, params []CreateParams) ([]*Purchase, error) {
	ps := make([]*Purchase, len(params))

	for i, p := range params {
		cycle, err := s.resolveCycle(ctx, p.CardID, p.Date)
		if err != nil {
			return nil, err
		}

		ps[i] = &Purchase{
			HouseID:      p.HouseID,
			CardID:       p.CardID,
			Amount:       p.Amount,
			Description:  p.Description,
			Category:     p.Category,
			Installment:  p.Installment,
			Date:         p.Date,
			BillingMonth: &cycle.Month,
			CreatedBy:    p.CreatedBy,
		}
	}

	return ps, nil
}
