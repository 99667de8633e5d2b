package purchase

import (
	"time"

	"github.com/google/uuid"

	"github.com/mfreitas/contas/internal/purchase"
)

type purchaseResponse struct {
	ID           uuid.UUID  `json:"id"`
	HouseID      uuid.UUID  `json:"house_id"`
	CardID       *uuid.UUID `json:"card_id,omitempty"`
	Amount       int64      `json:"amount"`
	Description  string     `json:"description"`
	Category     string     `json:"category,omitempty"`
	Installment  string     `json:"installment,omitempty"`
	Date         time.Time  `json:"date"`
	BillingMonth *time.Time `json:"billing_month,omitempty"`
	CreatedBy    uuid.UUID  `json:"created_by"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

func toResponse(p *purchase.Purchase) purchaseResponse {
	return purchaseResponse{
		ID:           p.ID,
		HouseID:      p.HouseID,
		CardID:       p.CardID,
		Amount:       p.Amount,
		Description:  p.Description,
		Category:     p.Category,
		Installment:  p.Installment,
		Date:         p.Date,
		BillingMonth: p.BillingMonth,
		CreatedBy:    p.CreatedBy,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toResponseList(ps []*purchase.Purchase) []purchaseResponse {
	resp := make([]purchaseResponse, len(ps))
	for i, p := range ps {
		resp[i] = toResponse(p)
	}

	return resp
}
