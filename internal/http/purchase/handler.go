package purchase

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mfreitas/contas/internal/auth"
	"github.com/mfreitas/contas/internal/house"
	"github.com/mfreitas/contas/internal/http/scope"
	"github.com/mfreitas/contas/internal/purchase"
)

type Handler struct {
	svc   *purchase.Service
	guard *scope.Guard
}

func NewHandler(svc *purchase.Service, guard *scope.Guard) *Handler {
	return &Handler{svc: svc, guard: guard}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createPurchaseRequest struct {
	HouseID     uuid.UUID  `json:"house_id"`
	CardID      *uuid.UUID `json:"card_id,omitempty"`
	Amount      int64      `json:"amount"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Installment string     `json:"installment"`
	Date        time.Time  `json:"date"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req createPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Amount <= 0 {
		http.Error(w, "amount must be positive", http.StatusBadRequest)
		return
	}

	if !h.guard.Require(w, r, req.HouseID, house.RoleOwner) {
		return
	}

	p, err := h.svc.Create(r.Context(), purchase.CreateParams{
		HouseID:     req.HouseID,
		CardID:      req.CardID,
		Amount:      req.Amount,
		Description: req.Description,
		Category:    req.Category,
		Installment: req.Installment,
		Date:        req.Date,
		CreatedBy:   userID,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
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

	filter := purchase.ListFilter{HouseID: houseID}

	if s := r.URL.Query().Get("card_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.CardID = new(id)
		}
	}

	if s := r.URL.Query().Get("category"); s != "" {
		filter.Category = new(s)
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = new(t)
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = new(t)
		}
	}

	ps, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(ps)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p, ok := h.fetch(w, r, house.RoleViewer)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updatePurchaseRequest struct {
	Description *string    `json:"description,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Amount      *int64     `json:"amount,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	p, ok := h.fetch(w, r, house.RoleOwner)
	if !ok {
		return
	}

	var req updatePurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Description != nil {
		p.Description = *req.Description
	}

	if req.Category != nil {
		p.Category = *req.Category
	}

	if req.Amount != nil {
		p.Amount = *req.Amount
	}

	if req.Date != nil {
		p.Date = *req.Date
	}

	if err := h.svc.Update(r.Context(), p); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	p, ok := h.fetch(w, r, house.RoleOwner)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), p.ID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) fetch(w http.ResponseWriter, r *http.Request, need house.Role) (*purchase.Purchase, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return nil, false
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, purchase.ErrNotFound) {
			http.Error(w, "purchase not found", http.StatusNotFound)
			return nil, false
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return nil, false
	}

	if !h.guard.Require(w, r, p.HouseID, need) {
		return nil, false
	}

	return p, true
}
