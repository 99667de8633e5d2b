// Package export renders a statement month as a CSV download.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/mfreitas/contas/internal/purchase"
	"github.com/mfreitas/contas/internal/statement"
)

var header = []string{"date", "description", "category", "installment", "amount", "billing_month", "note"}

// Statements provides the enriched entries of a billing month.
type Statements interface {
	MonthEntries(ctx context.Context, filter purchase.ListFilter, month time.Time) ([]statement.Entry, error)
}

// Service writes statement months as CSV.
type Service struct {
	statements Statements
}

func NewService(statements Statements) *Service {
	return &Service{statements: statements}
}

// ExportMonth writes the CSV statement of the given billing month to w.
// Projected installments are included and marked in the note column.
func (s *Service) ExportMonth(ctx context.Context, w io.Writer, filter purchase.ListFilter, month time.Time) error {
	entries, err := s.statements.MonthEntries(ctx, filter, month)
	if err != nil {
		return fmt.Errorf("listing statement entries: %w", err)
	}

	return Write(w, entries)
}

// Write renders entries as CSV.
func Write(w io.Writer, entries []statement.Entry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, e := range entries {
		if err := cw.Write(record(e)); err != nil {
			return fmt.Errorf("writing entry %s: %w", e.EntryID, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}

func record(e statement.Entry) []string {
	note := ""

	switch {
	case e.Projection:
		note = "projected"
	case e.Deferred:
		note = e.DeferredNote
	}

	return []string{
		e.Date.Format("2006-01-02"),
		e.Description,
		e.Category,
		e.Installment,
		formatCents(e.Amount),
		e.BillingMonth.Format("2006-01"),
		note,
	}
}

func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// Filename builds the suggested download name for a statement export.
func Filename(month time.Time) string {
	return fmt.Sprintf("statement_%s.csv", month.Format("2006-01"))
}
