package house

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("house not found")
	ErrNotMember = errors.New("not a member of this house")
)

// Role is what a member may do inside a house. Owners manage cards,
// purchases and members; viewers only read.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleViewer Role = "viewer"
)

// House groups the people sharing a set of cards and purchases.
type House struct {
	ID        uuid.UUID
	Name      string
	CreatedBy uuid.UUID
	CreatedAt time.Time
}

type Member struct {
	HouseID   uuid.UUID
	UserID    uuid.UUID
	Role      Role
	CreatedAt time.Time
}
