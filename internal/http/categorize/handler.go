package categorize

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mfreitas/contas/internal/categorize"
	"github.com/mfreitas/contas/internal/house"
	"github.com/mfreitas/contas/internal/http/scope"
)

type Handler struct {
	svc   *categorize.Service
	guard *scope.Guard
}

func NewHandler(svc *categorize.Service, guard *scope.Guard) *Handler {
	return &Handler{svc: svc, guard: guard}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/suggest", h.suggest)
	r.Post("/", h.learn)
}

type suggestResponse struct {
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	houseID, err := uuid.Parse(r.URL.Query().Get("house_id"))
	if err != nil {
		http.Error(w, "house_id query parameter is required", http.StatusBadRequest)
		return
	}

	description := r.URL.Query().Get("description")
	if description == "" {
		http.Error(w, "description query parameter is required", http.StatusBadRequest)
		return
	}

	if !h.guard.Require(w, r, houseID, house.RoleViewer) {
		return
	}

	category, err := h.svc.Suggest(r.Context(), houseID, description)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(suggestResponse{
		Description: description,
		Category:    category,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type learnRequest struct {
	HouseID  uuid.UUID `json:"house_id"`
	Pattern  string    `json:"pattern"`
	Category string    `json:"category"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Pattern == "" || req.Category == "" {
		http.Error(w, "pattern and category are required", http.StatusBadRequest)
		return
	}

	if !h.guard.Require(w, r, req.HouseID, house.RoleOwner) {
		return
	}

	if err := h.svc.Learn(r.Context(), req.HouseID, req.Pattern, req.Category); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
