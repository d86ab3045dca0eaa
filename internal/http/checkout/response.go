package checkout

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/till/internal/checkout"
)

type saleResponse struct {
	ID           uuid.UUID           `json:"id"`
	Subtotal     int64               `json:"subtotal"`
	TaxRate      string              `json:"tax_rate"`
	TaxAmount    int64               `json:"tax_amount"`
	Total        int64               `json:"total"`
	CashReceived int64               `json:"cash_received"`
	ChangeGiven  int64               `json:"change_given"`
	Lines        []checkout.LineItem `json:"lines"`
	Actor        string              `json:"actor"`
	CreatedAt    time.Time           `json:"created_at"`
}

type lowStockResponse struct {
	ItemID    uuid.UUID `json:"item_id"`
	Name      string    `json:"name"`
	Quantity  int64     `json:"quantity"`
	Threshold int64     `json:"threshold"`
}

type receiptResponse struct {
	Sale     saleResponse       `json:"sale"`
	LowStock []lowStockResponse `json:"low_stock"`
}

func toSaleResponse(s *checkout.Sale) saleResponse {
	return saleResponse{
		ID:           s.ID,
		Subtotal:     s.Subtotal,
		TaxRate:      s.TaxRate.String(),
		TaxAmount:    s.TaxAmount,
		Total:        s.Total,
		CashReceived: s.CashReceived,
		ChangeGiven:  s.ChangeGiven,
		Lines:        s.Lines,
		Actor:        s.Actor,
		CreatedAt:    s.CreatedAt,
	}
}

func toReceiptResponse(r *checkout.Receipt) receiptResponse {
	resp := receiptResponse{
		Sale:     toSaleResponse(r.Sale),
		LowStock: make([]lowStockResponse, len(r.LowStock)),
	}

	for i, n := range r.LowStock {
		resp.LowStock[i] = lowStockResponse{
			ItemID:    n.ItemID,
			Name:      n.Name,
			Quantity:  n.Quantity,
			Threshold: n.Threshold,
		}
	}

	return resp
}
