package card

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mfreitas/contas/internal/card"
	"github.com/mfreitas/contas/internal/house"
	"github.com/mfreitas/contas/internal/http/scope"
)

type Handler struct {
	svc   *card.Service
	guard *scope.Guard
}

func NewHandler(svc *card.Service, guard *scope.Guard) *Handler {
	return &Handler{svc: svc, guard: guard}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type cardResponse struct {
	ID         uuid.UUID  `json:"id"`
	HouseID    uuid.UUID  `json:"house_id"`
	Name       string     `json:"name"`
	LastFour   string     `json:"last_four,omitempty"`
	ClosingDay int        `json:"closing_day"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

func toResponse(c *card.Card) cardResponse {
	return cardResponse{
		ID:         c.ID,
		HouseID:    c.HouseID,
		Name:       c.Name,
		LastFour:   c.LastFour,
		ClosingDay: c.ClosingDay,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

type createCardRequest struct {
	HouseID    uuid.UUID `json:"house_id"`
	Name       string    `json:"name"`
	LastFour   string    `json:"last_four"`
	ClosingDay int       `json:"closing_day"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	if !h.guard.Require(w, r, req.HouseID, house.RoleOwner) {
		return
	}

	c, err := h.svc.Create(r.Context(), card.CreateParams{
		HouseID:    req.HouseID,
		Name:       req.Name,
		LastFour:   req.LastFour,
		ClosingDay: req.ClosingDay,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	houseID, err := uuid.Parse(r.URL.Query().Get("house_id"))
	if err != nil {
		http.Error(w, "house_id query parameter is required", http.StatusBadRequest)
		return
	}

	if !h.guard.Require(w, r, houseID, house.RoleViewer) {
		return
	}

	cards, err := h.svc.ListByHouse(r.Context(), houseID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]cardResponse, len(cards))
	for i, c := range cards {
		resp[i] = toResponse(c)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	c, ok := h.fetch(w, r, house.RoleViewer)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateCardRequest struct {
	Name       *string `json:"name,omitempty"`
	LastFour   *string `json:"last_four,omitempty"`
	ClosingDay *int    `json:"closing_day,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	c, ok := h.fetch(w, r, house.RoleOwner)
	if !ok {
		return
	}

	var req updateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name != nil {
		c.Name = *req.Name
	}

	if req.LastFour != nil {
		c.LastFour = *req.LastFour
	}

	if req.ClosingDay != nil {
		c.ClosingDay = *req.ClosingDay
	}

	if err := h.svc.Update(r.Context(), c); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	c, ok := h.fetch(w, r, house.RoleOwner)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), c.ID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// fetch loads the card from the path id and checks the caller's role in
// its house. It writes the error response itself when it returns !ok.
func (h *Handler) fetch(w http.ResponseWriter, r *http.Request, need house.Role) (*card.Card, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return nil, false
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, card.ErrNotFound) {
			http.Error(w, "card not found", http.StatusNotFound)
			return nil, false
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return nil, false
	}

	if !h.guard.Require(w, r, c.HouseID, need) {
		return nil, false
	}

	return c, true
}
