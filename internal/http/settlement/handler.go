package settlement

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/till/internal/http/respond"
	"github.com/MrJamesThe3rd/till/internal/settlement"
)

type Handler struct {
	svc *settlement.Service
}

func NewHandler(svc *settlement.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Route("/settlements/{date}", func(r chi.Router) {
		r.Get("/", h.get)
		r.Put("/float", h.setFloat)
		r.Put("/actual", h.settle)
	})
}

func (h *Handler) day(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	date, err := h.svc.ParseDay(chi.URLParam(r, "date"))
	if err != nil {
		respond.Error(w, r, err)
		return time.Time{}, false
	}

	return date, true
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	date, ok := h.day(w, r)
	if !ok {
		return
	}

	st, err := h.svc.Get(r.Context(), date)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(st))
}

type floatRequest struct {
	Amount *int64 `json:"amount"`
}

func (h *Handler) setFloat(w http.ResponseWriter, r *http.Request) {
	date, ok := h.day(w, r)
	if !ok {
		return
	}

	var req floatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body: "+err.Error())
		return
	}

	if req.Amount == nil {
		respond.BadRequest(w, "amount is required")
		return
	}

	st, err := h.svc.SetOpeningFloat(r.Context(), date, *req.Amount)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(st))
}

// actualRequest carries either a counted total or a count per denomination.
type actualRequest struct {
	Amount        *int64          `json:"amount"`
	Denominations map[int64]int64 `json:"denominations"`
}

func (h *Handler) settle(w http.ResponseWriter, r *http.Request) {
	date, ok := h.day(w, r)
	if !ok {
		return
	}

	var req actualRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body: "+err.Error())
		return
	}

	var actual int64

	switch {
	case req.Amount != nil && req.Denominations != nil:
		respond.BadRequest(w, "send either amount or denominations, not both")
		return
	case req.Amount != nil:
		actual = *req.Amount
	case req.Denominations != nil:
		total, err := settlement.Tally(req.Denominations)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		actual = total
	default:
		respond.BadRequest(w, "amount or denominations is required")
		return
	}

	st, err := h.svc.Settle(r.Context(), date, actual)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(st))
}
