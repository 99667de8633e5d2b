package statement

import "github.com/mfreitas/contas/internal/purchase"

// CategoryUnclassified is the bucket for purchases without a category.
const CategoryUnclassified = "unclassified"

type CategoryTotal struct {
	Total int64
	Count int
}

// Summary holds per-category totals and a grand total. Amounts are cents,
// so summation is exact and order-independent.
type Summary struct {
	Total      int64
	Count      int
	ByCategory map[string]CategoryTotal
}

// Summarize folds statement entries into per-category totals. Projections
// count like real entries here; callers who want persisted-only totals
// summarize the raw purchases instead.
func Summarize(entries []Entry) Summary {
	s := newSummary()

	for _, e := range entries {
		s.add(e.Amount, e.Category)
	}

	return s
}

// SummarizeRecords folds stored purchases into per-category totals.
func SummarizeRecords(records []*purchase.Purchase) Summary {
	s := newSummary()

	for _, r := range records {
		s.add(r.Amount, r.Category)
	}

	return s
}

func newSummary() Summary {
	return Summary{ByCategory: make(map[string]CategoryTotal)}
}

func (s *Summary) add(amount int64, category string) {
	if category == "" {
		category = CategoryUnclassified
	}

	s.Total += amount
	s.Count++

	ct := s.ByCategory[category]
	ct.Total += amount
	ct.Count++
	s.ByCategory[category] = ct
}
