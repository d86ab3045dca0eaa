package settlement

import (
	"time"

	"github.com/MrJamesThe3rd/till/internal/settlement"
)

type settlementResponse struct {
	Date             string     `json:"date"`
	OpeningCashFloat int64      `json:"opening_cash_float"`
	TotalSalesCash   int64      `json:"total_sales_cash"`
	ExpectedCash     int64      `json:"expected_cash"`
	ActualCash       *int64     `json:"actual_cash"`
	Discrepancy      *int64     `json:"discrepancy"`
	Saved            bool       `json:"saved"`
	Settled          bool       `json:"settled"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

func toResponse(st *settlement.DailySettlement) settlementResponse {
	resp := settlementResponse{
		Date:             st.Date.Format(time.DateOnly),
		OpeningCashFloat: st.OpeningCashFloat,
		TotalSalesCash:   st.TotalSalesCash,
		ExpectedCash:     st.ExpectedCash,
		ActualCash:       st.ActualCash,
		Discrepancy:      st.Discrepancy,
		Saved:            st.Saved,
		Settled:          st.Settled(),
	}

	if !st.UpdatedAt.IsZero() {
		resp.UpdatedAt = &st.UpdatedAt
	}

	return resp
}
