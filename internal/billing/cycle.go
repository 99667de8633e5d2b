// Package billing implements the credit-card statement calendar rules:
// which monthly statement a purchase belongs to, and the month arithmetic
// used to place future installments.
//
// Everything in this package is a pure function of its inputs. Billing
// months are always represented as the first day of the month at midnight
// UTC.
package billing

import "time"

// DefaultClosingDay is used whenever a card has no usable closing day.
const DefaultClosingDay = 20

const (
	minClosingDay = 1
	maxClosingDay = 28
)

// NormalizeClosingDay maps any closing day outside [1, 28] to the default.
// Days 29-31 are never valid closing days because they do not exist in
// every month.
func NormalizeClosingDay(day int) int {
	if day < minClosingDay || day > maxClosingDay {
		return DefaultClosingDay
	}

	return day
}

// Cycle is the statement attribution of a single purchase.
type Cycle struct {
	// Month is the billing month, as its first day.
	Month time.Time
	// Deferred is true when the purchase fell after the closing day and
	// rolled onto the following statement.
	Deferred bool
}

// ResolveCycle decides which statement a purchase made on purchaseDate
// belongs to, given the card's closing day.
//
// A purchase on or before the closing day lands on the current month's
// statement; after it, on the next month's (rolling the year in December).
// Closing days outside [1, 28] behave as DefaultClosingDay.
func ResolveCycle(purchaseDate time.Time, closingDay int) Cycle {
	closingDay = NormalizeClosingDay(closingDay)

	month := MonthOf(purchaseDate)
	if purchaseDate.Day() <= closingDay {
		return Cycle{Month: month}
	}

	return Cycle{Month: AddMonths(month, 1), Deferred: true}
}

// MonthOf returns the first day of t's month at midnight UTC.
func MonthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// AddMonths moves a billing month forward by n calendar months, keeping
// the day pinned to 1. time.Date normalizes month overflow, so December
// plus one month becomes January of the next year.
func AddMonths(month time.Time, n int) time.Time {
	return time.Date(month.Year(), month.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
}
