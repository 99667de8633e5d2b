package purchase

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("purchase not found")

// Purchase represents a single card or cash charge belonging to a house.
type Purchase struct {
	ID          uuid.UUID
	HouseID     uuid.UUID
	CardID      *uuid.UUID // nil for purchases outside any card
	Amount      int64      // Amount in cents
	Description string
	Category    string // empty means unclassified
	// Installment is a "current/total" marker like "2/6", or empty for
	// single-payment purchases. Malformed markers are kept as-is and
	// simply never projected.
	Installment string
	Date        time.Time
	// BillingMonth is the statement month assigned when the purchase was
	// recorded, as the first day of that month. Once set it is
	// authoritative: later closing-day changes must not move old
	// purchases between statements.
	BillingMonth *time.Time
	CreatedBy    uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
}
