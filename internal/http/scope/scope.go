// Package scope guards house-scoped handlers: every request must come
// from an authenticated member of the house it touches, and writes
// require the owner role.
package scope

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/mfreitas/contas/internal/auth"
	"github.com/mfreitas/contas/internal/house"
)

// Roles answers membership lookups. Implemented by house.Service.
type Roles interface {
	Role(ctx context.Context, houseID, userID uuid.UUID) (house.Role, error)
}

type Guard struct {
	roles Roles
}

func NewGuard(roles Roles) *Guard {
	return &Guard{roles: roles}
}

// Require checks that the authenticated user holds at least the needed
// role in the house. On failure it writes the error response and returns
// false; handlers must return immediately.
func (g *Guard) Require(w http.ResponseWriter, r *http.Request, houseID uuid.UUID, need house.Role) bool {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return false
	}

	role, err := g.roles.Role(r.Context(), houseID, userID)
	if err != nil {
		if errors.Is(err, house.ErrNotMember) {
			http.Error(w, "not a member of this house", http.StatusForbidden)
			return false
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return false
	}

	if need == house.RoleOwner && role != house.RoleOwner {
		http.Error(w, "owner role required", http.StatusForbidden)
		return false
	}

	return true
}
