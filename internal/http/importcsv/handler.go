package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mfreitas/contas/internal/auth"
	"github.com/mfreitas/contas/internal/categorize"
	"github.com/mfreitas/contas/internal/house"
	"github.com/mfreitas/contas/internal/http/scope"
	"github.com/mfreitas/contas/internal/importer"
	"github.com/mfreitas/contas/internal/purchase"
)

type Handler struct {
	importSvc     *importer.Service
	purchaseSvc   *purchase.Service
	categorizeSvc *categorize.Service
	guard         *scope.Guard
}

func NewHandler(importSvc *importer.Service, purchaseSvc *purchase.Service, categorizeSvc *categorize.Service, guard *scope.Guard) *Handler {
	return &Handler{
		importSvc:     importSvc,
		purchaseSvc:   purchaseSvc,
		categorizeSvc: categorizeSvc,
		guard:         guard,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
	r.Post("/confirm", h.confirmImport)
}

type purchaseResponse struct {
	ID           uuid.UUID  `json:"id"`
	Amount       int64      `json:"amount"`
	Description  string     `json:"description"`
	Category     string     `json:"category,omitempty"`
	Installment  string     `json:"installment,omitempty"`
	Date         time.Time  `json:"date"`
	BillingMonth *time.Time `json:"billing_month,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type importSuccessResponse struct {
	Imported  int                `json:"imported"`
	Purchases []purchaseResponse `json:"purchases"`
}

type createParamsDTO struct {
	CardID      *uuid.UUID `json:"card_id,omitempty"`
	Amount      int64      `json:"amount"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Installment string     `json:"installment"`
	Date        time.Time  `json:"date"`
}

type conflictDTO struct {
	Incoming createParamsDTO  `json:"incoming"`
	Existing purchaseResponse `json:"existing"`
}

type importConflictResponse struct {
	New       []createParamsDTO `json:"new"`
	Conflicts []conflictDTO     `json:"conflicts"`
}

type confirmRequest struct {
	HouseID uuid.UUID         `json:"house_id"`
	Params  []createParamsDTO `json:"params"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	bank := importer.Bank(r.FormValue("bank"))
	if bank == "" {
		http.Error(w, "bank field is required", http.StatusBadRequest)
		return
	}

	houseID, err := uuid.Parse(r.FormValue("house_id"))
	if err != nil {
		http.Error(w, "house_id field is required", http.StatusBadRequest)
		return
	}

	if !h.guard.Require(w, r, houseID, house.RoleOwner) {
		return
	}

	var cardID *uuid.UUID

	if s := r.FormValue("card_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid card_id", http.StatusBadRequest)
			return
		}

		cardID = &id
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(bank, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	for i := range params {
		params[i].HouseID = houseID
		params[i].CardID = cardID
		params[i].CreatedBy = userID

		if params[i].Category != "" {
			continue
		}

		suggested, err := h.categorizeSvc.Suggest(r.Context(), houseID, params[i].Description)
		if err != nil || suggested == "" {
			continue
		}

		params[i].Category = suggested
	}

	result, err := h.purchaseSvc.ImportBatch(r.Context(), houseID, params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if len(result.Conflicts) > 0 {
		resp := importConflictResponse{
			New:       make([]createParamsDTO, 0, len(result.New)),
			Conflicts: make([]conflictDTO, 0, len(result.Conflicts)),
		}
		for _, p := range result.New {
			resp.New = append(resp.New, toParamsDTO(p))
		}

		for _, c := range result.Conflicts {
			resp.Conflicts = append(resp.Conflicts, conflictDTO{
				Incoming: toParamsDTO(c.Incoming),
				Existing: toPurchaseResponse(c.Existing),
			})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			slog.Error("failed to encode response", "error", err)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toSuccessResponse(result.Imported)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if !h.guard.Require(w, r, req.HouseID, house.RoleOwner) {
		return
	}

	params := make([]purchase.CreateParams, 0, len(req.Params))
	for _, p := range req.Params {
		params = append(params, purchase.CreateParams{
			HouseID:     req.HouseID,
			CardID:      p.CardID,
			Amount:      p.Amount,
			Description: p.Description,
			Category:    p.Category,
			Installment: p.Installment,
			Date:        p.Date,
			CreatedBy:   userID,
		})
	}

	ps, err := h.purchaseSvc.CreateBatch(r.Context(), req.HouseID, params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toSuccessResponse(ps)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toSuccessResponse(ps []*purchase.Purchase) importSuccessResponse {
	responses := make([]purchaseResponse, 0, len(ps))
	for _, p := range ps {
		responses = append(responses, toPurchaseResponse(p))
	}

	return importSuccessResponse{
		Imported:  len(ps),
		Purchases: responses,
	}
}

func toPurchaseResponse(p *purchase.Purchase) purchaseResponse {
	return purchaseResponse{
		ID:           p.ID,
		Amount:       p.Amount,
		Description:  p.Description,
		Category:     p.Category,
		Installment:  p.Installment,
		Date:         p.Date,
		BillingMonth: p.BillingMonth,
		CreatedAt:    p.CreatedAt,
	}
}

func toParamsDTO(p purchase.CreateParams) createParamsDTO {
	return createParamsDTO{
		CardID:      p.CardID,
		Amount:      p.Amount,
		Description: p.Description,
		Category:    p.Category,
		Installment: p.Installment,
		Date:        p.Date,
	}
}
