package checkout

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/till/internal/checkout"
	"github.com/MrJamesThe3rd/till/internal/http/auth"
	"github.com/MrJamesThe3rd/till/internal/http/respond"
)

type Handler struct {
	svc *checkout.Service
}

func NewHandler(svc *checkout.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/checkout", h.checkout)
	r.Get("/sales", h.listSales)
}

type lineRequest struct {
	ItemID    uuid.UUID `json:"item_id"`
	Name      string    `json:"name"`
	Quantity  int64     `json:"quantity"`
	UnitPrice int64     `json:"unit_price"`
}

type checkoutRequest struct {
	Lines        []lineRequest `json:"lines"`
	CashReceived int64         `json:"cash_received"`
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body: "+err.Error())
		return
	}

	cart := checkout.Cart{Lines: make([]checkout.Line, len(req.Lines))}
	for i, l := range req.Lines {
		cart.Lines[i] = checkout.Line{
			ItemID:    l.ItemID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		}
	}

	receipt, err := h.svc.Checkout(r.Context(), cart, req.CashReceived, auth.Actor(r.Context()))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toReceiptResponse(receipt))
}

// listSales takes an RFC 3339 window; both ends default to the last 24 hours.
func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	to := time.Now()
	from := to.Add(-24 * time.Hour)

	if s := r.URL.Query().Get("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			respond.BadRequest(w, "from must be RFC 3339")
			return
		}

		from = t
	}

	if s := r.URL.Query().Get("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			respond.BadRequest(w, "to must be RFC 3339")
			return
		}

		to = t
	}

	sales, err := h.svc.Sales(r.Context(), from, to)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]saleResponse, len(sales))
	for i, s := range sales {
		resp[i] = toSaleResponse(s)
	}

	respond.JSON(w, http.StatusOK, resp)
}
