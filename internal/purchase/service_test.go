package purchase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfreitas/contas/internal/billing"
	"github.com/mfreitas/contas/internal/purchase"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

// Mock Repository

type mockRepo struct {
	created     []*purchase.Purchase
	createErr   error
	beginImport func() (purchase.ImportTx, error)
}

func (m *mockRepo) CreatePurchase(ctx context.Context, p *purchase.Purchase) error {
	if m.createErr != nil {
		return m.createErr
	}

	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	m.created = append(m.created, p)

	return nil
}

func (m *mockRepo) GetPurchase(ctx context.Context, id uuid.UUID) (*purchase.Purchase, error) {
	return nil, purchase.ErrNotFound
}

func (m *mockRepo) UpdatePurchase(ctx context.Context, p *purchase.Purchase) error { return nil }
func (m *mockRepo) DeletePurchase(ctx context.Context, id uuid.UUID) error         { return nil }

func (m *mockRepo) ListPurchases(ctx context.Context, filter purchase.ListFilter) ([]*purchase.Purchase, error) {
	return nil, nil
}

func (m *mockRepo) BeginImport(ctx context.Context, houseID uuid.UUID, minDate, maxDate time.Time) (purchase.ImportTx, error) {
	if m.beginImport != nil {
		return m.beginImport()
	}

	return nil, errors.New("unexpected BeginImport")
}

type mockImportTx struct {
	duplicates []*purchase.Purchase
	created    []*purchase.Purchase
	committed  bool
	rolledBack bool
}

func (m *mockImportTx) FindDuplicates(ctx context.Context, houseID uuid.UUID, params []purchase.CreateParams) ([]*purchase.Purchase, error) {
	return m.duplicates, nil
}

func (m *mockImportTx) CreatePurchases(ctx context.Context, ps []*purchase.Purchase) error {
	for _, p := range ps {
		p.ID = uuid.New()
	}

	m.created = append(m.created, ps...)

	return nil
}

func (m *mockImportTx) Commit() error   { m.committed = true; return nil }
func (m *mockImportTx) Rollback() error { m.rolledBack = true; return nil }

// fixedClosingDays resolves every card to the same closing day.
type fixedClosingDays struct {
	day int
	err error
}

func (f fixedClosingDays) ClosingDay(ctx context.Context, cardID uuid.UUID) (int, error) {
	return f.day, f.err
}

func TestService_Create_AssignsBillingMonth(t *testing.T) {
	cardID := uuid.New()

	tests := []struct {
		name       string
		cardID     *uuid.UUID
		closingDay int
		date       time.Time
		wantMonth  time.Time
	}{
		{
			name:       "BeforeClosingDay",
			cardID:     &cardID,
			closingDay: 20,
			date:       date(2025, 3, 10),
			wantMonth:  date(2025, 3, 1),
		},
		{
			name:       "AfterClosingDayDefers",
			cardID:     &cardID,
			closingDay: 20,
			date:       date(2025, 3, 25),
			wantMonth:  date(2025, 4, 1),
		},
		{
			name:      "NoCardUsesDefault",
			cardID:    nil,
			date:      date(2025, 3, billing.DefaultClosingDay+1),
			wantMonth: date(2025, 4, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepo{}
			svc := purchase.NewService(repo, fixedClosingDays{day: tt.closingDay})

			got, err := svc.Create(context.Background(), purchase.CreateParams{
				HouseID:     uuid.New(),
				CardID:      tt.cardID,
				Amount:      1000,
				Description: "Mercado",
				Date:        tt.date,
			})
			require.NoError(t, err)
			require.NotNil(t, got.BillingMonth)

			assert.Equal(t, tt.wantMonth, *got.BillingMonth)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestService_Create_ClosingDayError(t *testing.T) {
	cardID := uuid.New()
	repo := &mockRepo{}
	svc := purchase.NewService(repo, fixedClosingDays{err: errors.New("db error")})

	_, err := svc.Create(context.Background(), purchase.CreateParams{
		HouseID: uuid.New(),
		CardID:  &cardID,
		Amount:  500,
		Date:    date(2025, 3, 10),
	})
	assert.Error(t, err)
	assert.Empty(t, repo.created)
}

func TestService_ImportBatch_NoConflicts(t *testing.T) {
	itx := &mockImportTx{}
	repo := &mockRepo{beginImport: func() (purchase.ImportTx, error) { return itx, nil }}
	svc := purchase.NewService(repo, fixedClosingDays{day: 20})

	houseID := uuid.New()
	params := []purchase.CreateParams{
		{
			HouseID:     houseID,
			Amount:      1000,
			Description: "Padaria",
			Date:        date(2025, 1, 15),
		},
		{
			HouseID:     houseID,
			Amount:      2599,
			Description: "Mercado 1/3",
			Installment: "1/3",
			Date:        date(2025, 1, 25),
		},
	}

	result, err := svc.ImportBatch(context.Background(), houseID, params)
	require.NoError(t, err)
	require.Len(t, result.Imported, 2)
	assert.Empty(t, result.Conflicts)
	assert.Empty(t, result.New)
	assert.True(t, itx.committed)

	// Billing months assigned during import too: day 25 defers.
	require.NotNil(t, result.Imported[0].BillingMonth)
	assert.Equal(t, date(2025, 1, 1), *result.Imported[0].BillingMonth)
	require.NotNil(t, result.Imported[1].BillingMonth)
	assert.Equal(t, date(2025, 2, 1), *result.Imported[1].BillingMonth)
}

func TestService_ImportBatch_WithConflicts(t *testing.T) {
	existing := &purchase.Purchase{
		ID:          uuid.New(),
		Amount:      1000,
		Description: "Padaria",
		Date:        date(2025, 1, 15),
	}
	itx := &mockImportTx{duplicates: []*purchase.Purchase{existing}}
	repo := &mockRepo{beginImport: func() (purchase.ImportTx, error) { return itx, nil }}
	svc := purchase.NewService(repo, fixedClosingDays{day: 20})

	houseID := uuid.New()
	params := []purchase.CreateParams{
		{HouseID: houseID, Amount: 1000, Description: "Padaria", Date: date(2025, 1, 15)},
		{HouseID: houseID, Amount: 2000, Description: "Farmácia", Date: date(2025, 1, 15)},
	}

	result, err := svc.ImportBatch(context.Background(), houseID, params)
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
	require.Len(t, result.Conflicts, 1)
	assert.Len(t, result.New, 1)
	assert.Equal(t, params[0], result.Conflicts[0].Incoming)
	assert.Equal(t, existing, result.Conflicts[0].Existing)
	assert.False(t, itx.committed)
	assert.True(t, itx.rolledBack)
}

func TestService_ImportBatch_Empty(t *testing.T) {
	svc := purchase.NewService(&mockRepo{}, fixedClosingDays{day: 20})

	result, err := svc.ImportBatch(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
	assert.Empty(t, result.Conflicts)
	assert.Empty(t, result.New)
}

func TestService_CreateBatch(t *testing.T) {
	itx := &mockImportTx{}
	repo := &mockRepo{beginImport: func() (purchase.ImportTx, error) { return itx, nil }}
	svc := purchase.NewService(repo, fixedClosingDays{day: 20})

	houseID := uuid.New()
	params := []purchase.CreateParams{
		{HouseID: houseID, Amount: 1000, Description: "Padaria", Date: date(2025, 1, 15)},
	}

	ps, err := svc.CreateBatch(context.Background(), houseID, params)
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, int64(1000), ps[0].Amount)
	assert.True(t, itx.committed)
}
