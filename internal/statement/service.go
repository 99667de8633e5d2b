package statement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mfreitas/contas/internal/card"
	"github.com/mfreitas/contas/internal/purchase"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=statement
type PurchaseSource interface {
	List(ctx context.Context, filter purchase.ListFilter) ([]*purchase.Purchase, error)
}

type CardSource interface {
	ListByHouse(ctx context.Context, houseID uuid.UUID) ([]*card.Card, error)
}

// Service assembles enriched statements. It fetches purchases and card
// policies concurrently, then runs the pure enrichment over both.
type Service struct {
	purchases PurchaseSource
	cards     CardSource
}

func NewService(purchases PurchaseSource, cards CardSource) *Service {
	return &Service{purchases: purchases, cards: cards}
}

// Entries returns the enriched entries for every purchase matching the
// filter: real purchases attributed to their billing months, interleaved
// with projections of their remaining installments.
func (s *Service) Entries(ctx context.Context, filter purchase.ListFilter) ([]Entry, error) {
	var (
		records []*purchase.Purchase
		cards   []*card.Card
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error

		records, err = s.purchases.List(gctx, filter)
		if err != nil {
			return fmt.Errorf("listing purchases: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		var err error

		cards, err = s.cards.ListByHouse(gctx, filter.HouseID)
		if err != nil {
			return fmt.Errorf("listing cards: %w", err)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	closingDays := make(map[uuid.UUID]int, len(cards))
	for _, c := range cards {
		closingDays[c.ID] = c.ClosingDay
	}

	return Enrich(records, closingDays), nil
}

// MonthEntries returns the entries attributed to one billing month.
func (s *Service) MonthEntries(ctx context.Context, filter purchase.ListFilter, month time.Time) ([]Entry, error) {
	entries, err := s.Entries(ctx, filter)
	if err != nil {
		return nil, err
	}

	return FilterByMonth(entries, month), nil
}

// MonthSummary returns per-category totals for one billing month,
// projections included.
func (s *Service) MonthSummary(ctx context.Context, filter purchase.ListFilter, month time.Time) (Summary, error) {
	entries, err := s.MonthEntries(ctx, filter, month)
	if err != nil {
		return Summary{}, err
	}

	return Summarize(entries), nil
}
