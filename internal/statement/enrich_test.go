package statement_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfreitas/contas/internal/purchase"
	"github.com/mfreitas/contas/internal/statement"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func newPurchase(day time.Time, opts ...func(*purchase.Purchase)) *purchase.Purchase {
	p := &purchase.Purchase{
		ID:          uuid.New(),
		HouseID:     uuid.New(),
		Amount:      1000,
		Description: "Compra",
		Date:        day,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func withCard(id uuid.UUID) func(*purchase.Purchase) {
	return func(p *purchase.Purchase) { p.CardID = &id }
}

func withInstallment(marker string) func(*purchase.Purchase) {
	return func(p *purchase.Purchase) { p.Installment = marker }
}

func withBillingMonth(month time.Time) func(*purchase.Purchase) {
	return func(p *purchase.Purchase) { p.BillingMonth = &month }
}

func TestEnrich_DeferralBoundary(t *testing.T) {
	cardID := uuid.New()
	days := map[uuid.UUID]int{cardID: 20}

	t.Run("OnClosingDay", func(t *testing.T) {
		p := newPurchase(date(2025, 3, 20), withCard(cardID))

		entries := statement.Enrich([]*purchase.Purchase{p}, days)
		require.Len(t, entries, 1)

		assert.Equal(t, date(2025, 3, 1), entries[0].BillingMonth)
		assert.False(t, entries[0].Deferred)
		assert.Empty(t, entries[0].DeferredNote)
	})

	t.Run("DayAfter", func(t *testing.T) {
		p := newPurchase(date(2025, 3, 21), withCard(cardID))

		entries := statement.Enrich([]*purchase.Purchase{p}, days)
		require.Len(t, entries, 1)

		assert.Equal(t, date(2025, 4, 1), entries[0].BillingMonth)
		assert.True(t, entries[0].Deferred)
		assert.NotEmpty(t, entries[0].DeferredNote)
	})
}

func TestEnrich_YearRollover(t *testing.T) {
	cardID := uuid.New()
	p := newPurchase(date(2025, 12, 25), withCard(cardID))

	entries := statement.Enrich([]*purchase.Purchase{p}, map[uuid.UUID]int{cardID: 20})
	require.Len(t, entries, 1)

	assert.Equal(t, date(2026, 1, 1), entries[0].BillingMonth)
	assert.True(t, entries[0].Deferred)
}

func TestEnrich_InvalidClosingDayFallsBackToDefault(t *testing.T) {
	tests := []struct {
		name string
		days map[uuid.UUID]int
	}{
		{name: "Zero", days: map[uuid.UUID]int{}},
		{name: "TooLarge", days: map[uuid.UUID]int{}},
		{name: "Absent", days: map[uuid.UUID]int{}},
	}

	cardID := uuid.New()
	tests[0].days[cardID] = 0
	tests[1].days[cardID] = 29
	// tests[2] leaves the card out of the lookup entirely.

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Day 20 is the default closing day: not deferred.
			onDay := newPurchase(date(2025, 3, 20), withCard(cardID))
			// Day 21 is past it: deferred.
			after := newPurchase(date(2025, 3, 21), withCard(cardID))

			entries := statement.Enrich([]*purchase.Purchase{onDay, after}, tt.days)
			require.Len(t, entries, 2)

			assert.Equal(t, date(2025, 3, 1), entries[0].BillingMonth)
			assert.False(t, entries[0].Deferred)
			assert.Equal(t, date(2025, 4, 1), entries[1].BillingMonth)
			assert.True(t, entries[1].Deferred)
		})
	}
}

func TestEnrich_NoCardUsesDefaultClosingDay(t *testing.T) {
	p := newPurchase(date(2025, 3, 21))

	entries := statement.Enrich([]*purchase.Purchase{p}, nil)
	require.Len(t, entries, 1)

	assert.Equal(t, date(2025, 4, 1), entries[0].BillingMonth)
	assert.True(t, entries[0].Deferred)
}

func TestEnrich_StoredBillingMonthWins(t *testing.T) {
	cardID := uuid.New()
	// Day 25 with closing day 20 would defer to April, but the stored
	// month says February.
	p := newPurchase(date(2025, 3, 25), withCard(cardID), withBillingMonth(date(2025, 2, 1)))

	entries := statement.Enrich([]*purchase.Purchase{p}, map[uuid.UUID]int{cardID: 20})
	require.Len(t, entries, 1)

	assert.Equal(t, date(2025, 2, 1), entries[0].BillingMonth)
	assert.False(t, entries[0].Deferred)
	assert.Empty(t, entries[0].DeferredNote)
}

func TestEnrich_InstallmentCardinality(t *testing.T) {
	p := newPurchase(date(2025, 3, 10), withInstallment("2/6"))

	entries := statement.Enrich([]*purchase.Purchase{p}, nil)
	require.Len(t, entries, 5)

	assert.False(t, entries[0].Projection)
	assert.Equal(t, "2/6", entries[0].Installment)

	wantMarkers := []string{"3/6", "4/6", "5/6", "6/6"}
	for i, want := range wantMarkers {
		e := entries[i+1]

		assert.True(t, e.Projection)
		assert.False(t, e.Deferred)
		assert.Empty(t, e.DeferredNote)
		assert.Equal(t, want, e.Installment)
		// One month per remaining installment, anchored to March.
		assert.Equal(t, date(2025, 3+i+1, 1), e.BillingMonth)
	}
}

func TestEnrich_NoProjections(t *testing.T) {
	markers := []string{"6/6", "7/6", "0/6", "abc", ""}

	for _, marker := range markers {
		t.Run("Marker_"+marker, func(t *testing.T) {
			p := newPurchase(date(2025, 3, 10), withInstallment(marker))

			entries := statement.Enrich([]*purchase.Purchase{p}, nil)
			require.Len(t, entries, 1)
			assert.False(t, entries[0].Projection)
		})
	}
}

func TestEnrich_ProjectionsAnchorToBillingMonth(t *testing.T) {
	t.Run("StoredMonth", func(t *testing.T) {
		// Purchased late February but billed in March by storage: the
		// projections of "1/3" land in April and May.
		p := newPurchase(date(2025, 2, 27), withInstallment("1/3"), withBillingMonth(date(2025, 3, 1)))

		entries := statement.Enrich([]*purchase.Purchase{p}, nil)
		require.Len(t, entries, 3)

		assert.Equal(t, date(2025, 3, 1), entries[0].BillingMonth)
		assert.Equal(t, date(2025, 4, 1), entries[1].BillingMonth)
		assert.Equal(t, date(2025, 5, 1), entries[2].BillingMonth)
	})

	t.Run("DerivedMonth", func(t *testing.T) {
		// Purchased March 25, deferred past closing day 20: billed in
		// April, projections in May and June.
		p := newPurchase(date(2025, 3, 25), withInstallment("1/3"))

		entries := statement.Enrich([]*purchase.Purchase{p}, nil)
		require.Len(t, entries, 3)

		assert.Equal(t, date(2025, 4, 1), entries[0].BillingMonth)
		assert.True(t, entries[0].Deferred)
		assert.Equal(t, date(2025, 5, 1), entries[1].BillingMonth)
		assert.Equal(t, date(2025, 6, 1), entries[2].BillingMonth)
	})
}

func TestEnrich_ProjectionIDs(t *testing.T) {
	p := newPurchase(date(2025, 3, 10), withInstallment("2/4"))

	entries := statement.Enrich([]*purchase.Purchase{p}, nil)
	require.Len(t, entries, 3)

	assert.Equal(t, p.ID.String(), entries[0].EntryID)
	assert.Equal(t, fmt.Sprintf("%s#proj3", p.ID), entries[1].EntryID)
	assert.Equal(t, fmt.Sprintf("%s#proj4", p.ID), entries[2].EntryID)
}

func TestEnrich_Idempotent(t *testing.T) {
	cardID := uuid.New()
	records := []*purchase.Purchase{
		newPurchase(date(2025, 3, 10), withCard(cardID), withInstallment("2/6")),
		newPurchase(date(2025, 3, 25), withCard(cardID)),
		newPurchase(date(2025, 4, 2), withInstallment("1/12"), withBillingMonth(date(2025, 4, 1))),
	}
	days := map[uuid.UUID]int{cardID: 15}

	first := statement.Enrich(records, days)
	second := statement.Enrich(records, days)

	assert.Equal(t, first, second)
}

func TestEnrich_PreservesInputOrder(t *testing.T) {
	a := newPurchase(date(2025, 3, 10), withInstallment("1/2"))
	b := newPurchase(date(2025, 3, 11))

	entries := statement.Enrich([]*purchase.Purchase{a, b}, nil)
	require.Len(t, entries, 3)

	// a, a's projection, then b.
	assert.Equal(t, a.ID.String(), entries[0].EntryID)
	assert.True(t, entries[1].Projection)
	assert.Equal(t, a.ID, entries[1].Purchase.ID)
	assert.Equal(t, b.ID.String(), entries[2].EntryID)
}

func TestEnrich_CopiesFieldsToProjections(t *testing.T) {
	cardID := uuid.New()
	p := newPurchase(date(2025, 3, 10), withCard(cardID), withInstallment("1/2"))
	p.Category = "mercado"
	p.Amount = 2599

	entries := statement.Enrich([]*purchase.Purchase{p}, map[uuid.UUID]int{cardID: 20})
	require.Len(t, entries, 2)

	proj := entries[1]
	assert.Equal(t, p.Amount, proj.Amount)
	assert.Equal(t, p.Category, proj.Category)
	assert.Equal(t, p.Description, proj.Description)
	assert.Equal(t, cardID, *proj.CardID)
	assert.Equal(t, p.Date, proj.Date)
}

func TestFilterByMonth(t *testing.T) {
	p := newPurchase(date(2025, 3, 10), withInstallment("1/3"))

	entries := statement.Enrich([]*purchase.Purchase{p}, nil)
	require.Len(t, entries, 3)

	april := statement.FilterByMonth(entries, date(2025, 4, 1))
	require.Len(t, april, 1)
	assert.Equal(t, "2/3", april[0].Installment)

	// Any day of the month selects that month.
	sameApril := statement.FilterByMonth(entries, date(2025, 4, 17))
	assert.Equal(t, april, sameApril)

	assert.Empty(t, statement.FilterByMonth(entries, date(2025, 7, 1)))
}
