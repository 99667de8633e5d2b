package statement

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mfreitas/contas/internal/export"
	"github.com/mfreitas/contas/internal/house"
	"github.com/mfreitas/contas/internal/http/scope"
	"github.com/mfreitas/contas/internal/purchase"
	"github.com/mfreitas/contas/internal/statement"
)

type Handler struct {
	svc       *statement.Service
	exportSvc *export.Service
	guard     *scope.Guard
}

func NewHandler(svc *statement.Service, exportSvc *export.Service, guard *scope.Guard) *Handler {
	return &Handler{svc: svc, exportSvc: exportSvc, guard: guard}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.entries)
	r.Get("/summary", h.summary)
	r.Get("/export", h.exportCSV)
}

type entryResponse struct {
	EntryID      string     `json:"entry_id"`
	PurchaseID   uuid.UUID  `json:"purchase_id"`
	CardID       *uuid.UUID `json:"card_id,omitempty"`
	Amount       int64      `json:"amount"`
	Description  string     `json:"description"`
	Category     string     `json:"category,omitempty"`
	Installment  string     `json:"installment,omitempty"`
	Date         time.Time  `json:"date"`
	BillingMonth time.Time  `json:"billing_month"`
	Projection   bool       `json:"projection"`
	Deferred     bool       `json:"deferred"`
	DeferredNote string     `json:"deferred_note,omitempty"`
}

func toEntryResponse(e statement.Entry) entryResponse {
	return entryResponse{
		EntryID:      e.EntryID,
		PurchaseID:   e.ID,
		CardID:       e.CardID,
		Amount:       e.Amount,
		Description:  e.Description,
		Category:     e.Category,
		Installment:  e.Installment,
		Date:         e.Date,
		BillingMonth: e.BillingMonth,
		Projection:   e.Projection,
		Deferred:     e.Deferred,
		DeferredNote: e.DeferredNote,
	}
}

func (h *Handler) entries(w http.ResponseWriter, r *http.Request) {
	filter, month, ok := h.query(w, r)
	if !ok {
		return
	}

	var (
		entries []statement.Entry
		err     error
	)

	if month != nil {
		entries, err = h.svc.MonthEntries(r.Context(), filter, *month)
	} else {
		entries, err = h.svc.Entries(r.Context(), filter)
	}

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = toEntryResponse(e)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type categoryTotalDTO struct {
	Total int64 `json:"total"`
	Count int   `json:"count"`
}

type summaryResponse struct {
	Month      string                      `json:"month"`
	Total      int64                       `json:"total"`
	Count      int                         `json:"count"`
	ByCategory map[string]categoryTotalDTO `json:"by_category"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	filter, month, ok := h.query(w, r)
	if !ok {
		return
	}

	if month == nil {
		http.Error(w, "month query parameter is required", http.StatusBadRequest)
		return
	}

	summary, err := h.svc.MonthSummary(r.Context(), filter, *month)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := summaryResponse{
		Month:      month.Format("2006-01"),
		Total:      summary.Total,
		Count:      summary.Count,
		ByCategory: make(map[string]categoryTotalDTO, len(summary.ByCategory)),
	}
	for category, ct := range summary.ByCategory {
		resp.ByCategory[category] = categoryTotalDTO{Total: ct.Total, Count: ct.Count}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	filter, month, ok := h.query(w, r)
	if !ok {
		return
	}

	if month == nil {
		http.Error(w, "month query parameter is required", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(*month)))

	if err := h.exportSvc.ExportMonth(r.Context(), w, filter, *month); err != nil {
		slog.Error("failed to export statement", "error", err)
	}
}

// query parses the common statement query parameters and checks the
// caller's membership. month is nil when the parameter is absent.
func (h *Handler) query(w http.ResponseWriter, r *http.Request) (purchase.ListFilter, *time.Time, bool) {
	houseID, err := uuid.Parse(r.URL.Query().Get("house_id"))
	if err != nil {
		http.Error(w, "house_id query parameter is required", http.StatusBadRequest)
		return purchase.ListFilter{}, nil, false
	}

	if !h.guard.Require(w, r, houseID, house.RoleViewer) {
		return purchase.ListFilter{}, nil, false
	}

	filter := purchase.ListFilter{HouseID: houseID}

	if s := r.URL.Query().Get("card_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.CardID = new(id)
		}
	}

	var month *time.Time

	if s := r.URL.Query().Get("month"); s != "" {
		t, err := time.Parse("2006-01", s)
		if err != nil {
			http.Error(w, "month must be formatted as YYYY-MM", http.StatusBadRequest)
			return purchase.ListFilter{}, nil, false
		}

		month = new(t)
	}

	return filter, month, true
}
