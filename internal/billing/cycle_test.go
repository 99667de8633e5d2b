package billing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mfreitas/contas/internal/billing"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestResolveCycle(t *testing.T) {
	tests := []struct {
		name         string
		purchaseDate time.Time
		closingDay   int
		wantMonth    time.Time
		wantDeferred bool
	}{
		{
			name:         "OnClosingDay",
			purchaseDate: date(2025, 3, 20),
			closingDay:   20,
			wantMonth:    date(2025, 3, 1),
			wantDeferred: false,
		},
		{
			name:         "DayAfterClosingDay",
			purchaseDate: date(2025, 3, 21),
			closingDay:   20,
			wantMonth:    date(2025, 4, 1),
			wantDeferred: true,
		},
		{
			name:         "FirstOfMonth",
			purchaseDate: date(2025, 3, 1),
			closingDay:   20,
			wantMonth:    date(2025, 3, 1),
			wantDeferred: false,
		},
		{
			name:         "DecemberRollsYear",
			purchaseDate: date(2025, 12, 25),
			closingDay:   20,
			wantMonth:    date(2026, 1, 1),
			wantDeferred: true,
		},
		{
			name:         "ClosingDayZeroFallsBackToDefault",
			purchaseDate: date(2025, 3, 21),
			closingDay:   0,
			wantMonth:    date(2025, 4, 1),
			wantDeferred: true,
		},
		{
			name:         "ClosingDay29FallsBackToDefault",
			purchaseDate: date(2025, 3, 20),
			closingDay:   29,
			wantMonth:    date(2025, 3, 1),
			wantDeferred: false,
		},
		{
			name:         "EarlyClosingDay",
			purchaseDate: date(2025, 3, 10),
			closingDay:   5,
			wantMonth:    date(2025, 4, 1),
			wantDeferred: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := billing.ResolveCycle(tt.purchaseDate, tt.closingDay)

			assert.Equal(t, tt.wantMonth, c.Month)
			assert.Equal(t, tt.wantDeferred, c.Deferred)
		})
	}
}

func TestNormalizeClosingDay(t *testing.T) {
	assert.Equal(t, 1, billing.NormalizeClosingDay(1))
	assert.Equal(t, 28, billing.NormalizeClosingDay(28))
	assert.Equal(t, billing.DefaultClosingDay, billing.NormalizeClosingDay(0))
	assert.Equal(t, billing.DefaultClosingDay, billing.NormalizeClosingDay(-3))
	assert.Equal(t, billing.DefaultClosingDay, billing.NormalizeClosingDay(29))
	assert.Equal(t, billing.DefaultClosingDay, billing.NormalizeClosingDay(31))
}

func TestAddMonths(t *testing.T) {
	assert.Equal(t, date(2025, 4, 1), billing.AddMonths(date(2025, 3, 1), 1))
	assert.Equal(t, date(2026, 2, 1), billing.AddMonths(date(2025, 11, 1), 3))
	assert.Equal(t, date(2025, 3, 1), billing.AddMonths(date(2025, 3, 1), 0))
	// Day stays pinned to 1 across short months.
	assert.Equal(t, date(2025, 2, 1), billing.AddMonths(date(2025, 1, 1), 1))
}

func TestMonthOf(t *testing.T) {
	assert.Equal(t, date(2025, 7, 1), billing.MonthOf(date(2025, 7, 31)))
	assert.Equal(t, date(2025, 7, 1), billing.MonthOf(time.Date(2025, 7, 15, 13, 45, 0, 0, time.UTC)))
}
