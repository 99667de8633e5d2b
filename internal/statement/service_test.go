package statement_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mfreitas/contas/internal/card"
	"github.com/mfreitas/contas/internal/purchase"
	"github.com/mfreitas/contas/internal/statement"
)

func TestService_Entries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	houseID := uuid.New()
	cardID := uuid.New()
	filter := purchase.ListFilter{HouseID: houseID}

	records := []*purchase.Purchase{
		newPurchase(date(2025, 3, 25), withCard(cardID), withInstallment("1/2")),
	}
	cards := []*card.Card{
		{ID: cardID, HouseID: houseID, Name: "Roxinho", ClosingDay: 20},
	}

	purchases := statement.NewMockPurchaseSource(ctrl)
	cardSrc := statement.NewMockCardSource(ctrl)
	purchases.EXPECT().List(gomock.Any(), filter).Return(records, nil)
	cardSrc.EXPECT().ListByHouse(gomock.Any(), houseID).Return(cards, nil)

	svc := statement.NewService(purchases, cardSrc)

	entries, err := svc.Entries(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Deferred past the card's closing day into April, projection in May.
	assert.Equal(t, date(2025, 4, 1), entries[0].BillingMonth)
	assert.True(t, entries[0].Deferred)
	assert.Equal(t, date(2025, 5, 1), entries[1].BillingMonth)
	assert.True(t, entries[1].Projection)
}

func TestService_Entries_PurchaseError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	houseID := uuid.New()
	filter := purchase.ListFilter{HouseID: houseID}

	purchases := statement.NewMockPurchaseSource(ctrl)
	cardSrc := statement.NewMockCardSource(ctrl)
	purchases.EXPECT().List(gomock.Any(), filter).Return(nil, errors.New("db error"))
	cardSrc.EXPECT().ListByHouse(gomock.Any(), houseID).Return(nil, nil).MaxTimes(1)

	svc := statement.NewService(purchases, cardSrc)

	_, err := svc.Entries(context.Background(), filter)
	assert.Error(t, err)
}

func TestService_MonthSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	houseID := uuid.New()
	filter := purchase.ListFilter{HouseID: houseID}

	march := newPurchase(date(2025, 3, 10), withInstallment("1/3"), withBillingMonth(date(2025, 3, 1)))
	march.Category = "eletro"
	other := newPurchase(date(2025, 1, 5), withBillingMonth(date(2025, 1, 1)))

	purchases := statement.NewMockPurchaseSource(ctrl)
	cardSrc := statement.NewMockCardSource(ctrl)
	purchases.EXPECT().List(gomock.Any(), filter).Return([]*purchase.Purchase{march, other}, nil)
	cardSrc.EXPECT().ListByHouse(gomock.Any(), houseID).Return(nil, nil)

	svc := statement.NewService(purchases, cardSrc)

	// April holds only the 2/3 projection of the March purchase.
	s, err := svc.MonthSummary(context.Background(), filter, date(2025, 4, 1))
	require.NoError(t, err)

	assert.Equal(t, march.Amount, s.Total)
	assert.Equal(t, 1, s.Count)
	assert.Equal(t, statement.CategoryTotal{Total: march.Amount, Count: 1}, s.ByCategory["eletro"])
}
