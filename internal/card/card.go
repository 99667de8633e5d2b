package card

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("card not found")

// Card is a credit card registered in a house. ClosingDay is stored as
// the user entered it; readers run it through billing.NormalizeClosingDay
// instead of rejecting odd values.
type Card struct {
	ID         uuid.UUID
	HouseID    uuid.UUID
	Name       string
	LastFour   string
	ClosingDay int
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
}
