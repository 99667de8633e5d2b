// Package statement turns stored purchases into the entries a monthly
// statement view shows: each real purchase attributed to its billing
// month, followed by synthetic entries for the remaining installments of
// multi-installment purchases.
//
// Enrichment is a pure transform. It never touches storage, and running
// it twice over the same input yields identical output, synthetic ids
// included.
package statement

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mfreitas/contas/internal/billing"
	"github.com/mfreitas/contas/internal/purchase"
)

// projectionSuffix separates a parent purchase id from the projected
// installment number. '#' never appears in a uuid, so a synthetic id can
// never collide with a stored one.
const projectionSuffix = "#proj"

// Entry is one line of an enriched statement: a stored purchase, or a
// synthetic preview of one of its future installments.
//
// Projections are not real records. Their EntryID does not resolve in
// storage, they must never be written back, and they carry no deferral
// flag of their own.
type Entry struct {
	purchase.Purchase

	// EntryID is the purchase uuid for real entries and
	// "<uuid>#proj<n>" for the projection of installment n.
	EntryID string
	// BillingMonth is the statement month this entry is attributed to,
	// as its first day.
	BillingMonth time.Time
	// Projection marks synthetic future-installment entries.
	Projection bool
	// Deferred is true only on a real entry whose purchase date fell
	// after the card's closing day.
	Deferred bool
	// DeferredNote explains the deferral to the user; set iff Deferred.
	DeferredNote string
}

// Enrich attributes every purchase to its billing month and expands
// installment purchases with one projected entry per remaining
// installment. closingDays maps card ids to their closing day; missing
// cards and out-of-range days behave as billing.DefaultClosingDay.
//
// Input order is preserved, with each purchase's projections emitted
// right after it. No purchase can fail the pass: malformed installment
// markers simply produce no projections.
func Enrich(records []*purchase.Purchase, closingDays map[uuid.UUID]int) []Entry {
	entries := make([]Entry, 0, len(records))

	for _, r := range records {
		closingDay := billing.DefaultClosingDay
		if r.CardID != nil {
			if day, ok := closingDays[*r.CardID]; ok {
				closingDay = billing.NormalizeClosingDay(day)
			}
		}

		real := Entry{
			Purchase: *r,
			EntryID:  r.ID.String(),
		}

		if r.BillingMonth != nil {
			// A month assigned at insert time is authoritative. It is
			// never re-derived, so closing-day changes cannot move old
			// purchases between statements, and the deferral banner is
			// not shown for history.
			real.BillingMonth = *r.BillingMonth
		} else {
			cycle := billing.ResolveCycle(r.Date, closingDay)

			real.BillingMonth = cycle.Month
			real.Deferred = cycle.Deferred

			if cycle.Deferred {
				real.DeferredNote = deferredNote(closingDay, cycle.Month)
			}
		}

		entries = append(entries, real)
		entries = append(entries, project(r, real.BillingMonth)...)
	}

	return entries
}

// project builds the synthetic entries for the installments still to
// come, anchored to the billing month of the originating installment.
// Anchoring to the month rather than the purchase date keeps the spacing
// exactly one month per installment regardless of closing-day edge cases.
func project(r *purchase.Purchase, baseMonth time.Time) []Entry {
	current, total, ok := billing.ParseInstallment(r.Installment)
	if !ok || current >= total {
		return nil
	}

	entries := make([]Entry, 0, total-current)

	for i := current + 1; i <= total; i++ {
		e := Entry{
			Purchase:     *r,
			EntryID:      fmt.Sprintf("%s%s%d", r.ID, projectionSuffix, i),
			BillingMonth: billing.AddMonths(baseMonth, i-current),
			Projection:   true,
		}
		e.Installment = fmt.Sprintf("%d/%d", i, total)

		entries = append(entries, e)
	}

	return entries
}

// FilterByMonth keeps the entries attributed to the given month.
func FilterByMonth(entries []Entry, month time.Time) []Entry {
	month = billing.MonthOf(month)

	var out []Entry

	for _, e := range entries {
		if e.BillingMonth.Equal(month) {
			out = append(out, e)
		}
	}

	return out
}

func deferredNote(closingDay int, month time.Time) string {
	return fmt.Sprintf("Purchased after closing day %d, charged on the %s statement", closingDay, month.Format("January 2006"))
}
