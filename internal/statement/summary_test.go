package statement_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mfreitas/contas/internal/purchase"
	"github.com/mfreitas/contas/internal/statement"
)

func TestSummarizeRecords(t *testing.T) {
	records := []*purchase.Purchase{
		{Category: "A", Amount: 10},
		{Category: "A", Amount: 5},
		{Category: "", Amount: 3},
	}

	s := statement.SummarizeRecords(records)

	assert.Equal(t, int64(18), s.Total)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, statement.CategoryTotal{Total: 15, Count: 2}, s.ByCategory["A"])
	assert.Equal(t, statement.CategoryTotal{Total: 3, Count: 1}, s.ByCategory[statement.CategoryUnclassified])
	assert.Len(t, s.ByCategory, 2)
}

func TestSummarizeRecords_Empty(t *testing.T) {
	s := statement.SummarizeRecords(nil)

	assert.Zero(t, s.Total)
	assert.Zero(t, s.Count)
	assert.Empty(t, s.ByCategory)
}

func TestSummarize_OrderIndependent(t *testing.T) {
	a := statement.Entry{Purchase: purchase.Purchase{Category: "casa", Amount: 1200}}
	b := statement.Entry{Purchase: purchase.Purchase{Category: "mercado", Amount: 800}}
	c := statement.Entry{Purchase: purchase.Purchase{Amount: 50}}

	assert.Equal(t,
		statement.Summarize([]statement.Entry{a, b, c}),
		statement.Summarize([]statement.Entry{c, a, b}),
	)
}

func TestSummarize_IncludesProjections(t *testing.T) {
	p := &purchase.Purchase{Category: "eletro", Amount: 300, Installment: "1/3",
		Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)}

	entries := statement.Enrich([]*purchase.Purchase{p}, nil)
	s := statement.Summarize(entries)

	// Real entry plus two projections, each carrying the same amount.
	assert.Equal(t, int64(900), s.Total)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, statement.CategoryTotal{Total: 900, Count: 3}, s.ByCategory["eletro"])
}
