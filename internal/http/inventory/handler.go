package inventory

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/till/internal/http/auth"
	"github.com/MrJamesThe3rd/till/internal/http/respond"
	"github.com/MrJamesThe3rd/till/internal/inventory"
)

type Handler struct {
	svc *inventory.Service
}

func NewHandler(svc *inventory.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/categories", h.listCategories)

	r.Route("/items", func(r chi.Router) {
		r.Get("/", h.listItems)
		r.Post("/", h.createItem)
		r.Get("/summary", h.summary)
		r.Get("/low-stock", h.lowStock)
		r.Get("/expiring", h.expiring)
		r.Get("/{id}", h.getItem)
		r.Put("/{id}", h.updateItem)
		r.Delete("/{id}", h.deleteItem)
		r.Post("/{id}/movements", h.applyMovement)
	})

	r.Get("/movements", h.recentMovements)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]categoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = categoryResponse{ID: c.ID, Name: c.Name}
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	filter := inventory.ListFilter{}

	if s := r.URL.Query().Get("category"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			respond.BadRequest(w, "invalid category id")
			return
		}

		filter.CategoryID = &id
	}

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(inventory.Status(s))
	}

	items, err := h.svc.ListItems(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toItemList(items))
}

func (h *Handler) lowStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.LowStock(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toItemList(items))
}

func (h *Handler) expiring(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ExpiringSoon(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toItemList(items))
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Summary(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, summaryResponse{
		TotalItems:    s.TotalItems,
		LowStockItems: s.LowStockItems,
		ExpiringItems: s.ExpiringItems,
		StockValue:    s.StockValue,
	})
}

type itemRequest struct {
	Name         string    `json:"name"`
	CategoryID   uuid.UUID `json:"category_id"`
	Quantity     int64     `json:"quantity"`
	Unit         string    `json:"unit"`
	CostPrice    int64     `json:"cost_price"`
	SellingPrice int64     `json:"selling_price"`
	ReorderLevel int64     `json:"reorder_level"`
	Supplier     string    `json:"supplier"`
	ExpiryDate   string    `json:"expiry_date"` // YYYY-MM-DD, empty for none
}

func (req itemRequest) params() (inventory.ItemParams, error) {
	p := inventory.ItemParams{
		Name:         req.Name,
		CategoryID:   req.CategoryID,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		CostPrice:    req.CostPrice,
		SellingPrice: req.SellingPrice,
		ReorderLevel: req.ReorderLevel,
		Supplier:     req.Supplier,
	}

	if req.ExpiryDate != "" {
		t, err := time.Parse(time.DateOnly, req.ExpiryDate)
		if err != nil {
			return p, err
		}

		p.ExpiryDate = &t
	}

	return p, nil
}

func decodeItem(w http.ResponseWriter, r *http.Request) (inventory.ItemParams, bool) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body: "+err.Error())
		return inventory.ItemParams{}, false
	}

	params, err := req.params()
	if err != nil {
		respond.BadRequest(w, "expiry_date must be YYYY-MM-DD")
		return inventory.ItemParams{}, false
	}

	return params, true
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	params, ok := decodeItem(w, r)
	if !ok {
		return
	}

	item, err := h.svc.AddItem(r.Context(), params, auth.Actor(r.Context()))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toItemResponse(item))
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid id")
		return uuid.Nil, false
	}

	return id, true
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	item, err := h.svc.GetItem(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toItemResponse(item))
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	params, ok := decodeItem(w, r)
	if !ok {
		return
	}

	item, err := h.svc.UpdateItem(r.Context(), id, params, auth.Actor(r.Context()))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toItemResponse(item))
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteItem(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type movementRequest struct {
	Type     inventory.MovementType `json:"type"`
	Quantity int64                  `json:"quantity"`
	Reason   string                 `json:"reason"`
}

func (h *Handler) applyMovement(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req movementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body: "+err.Error())
		return
	}

	result, err := h.svc.ApplyMovement(r.Context(), inventory.MovementParams{
		ItemID:   id,
		Type:     req.Type,
		Quantity: req.Quantity,
		Reason:   req.Reason,
		Actor:    auth.Actor(r.Context()),
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	status := http.StatusCreated
	if result.Movement == nil {
		status = http.StatusOK
	}

	respond.JSON(w, status, toMovementResult(result))
}

func (h *Handler) recentMovements(w http.ResponseWriter, r *http.Request) {
	limit := 0

	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			respond.BadRequest(w, "limit must be a number")
			return
		}

		limit = n
	}

	movements, err := h.svc.RecentMovements(r.Context(), limit)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]movementResponse, len(movements))
	for i, m := range movements {
		resp[i] = toMovementResponse(m)
	}

	respond.JSON(w, http.StatusOK, resp)
}
