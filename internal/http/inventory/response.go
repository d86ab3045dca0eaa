package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/till/internal/inventory"
)

type categoryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type itemResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	CategoryID   uuid.UUID `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	Quantity     int64     `json:"quantity"`
	Unit         string    `json:"unit"`
	CostPrice    int64     `json:"cost_price"`
	SellingPrice int64     `json:"selling_price"`
	ReorderLevel int64     `json:"reorder_level"`
	BelowReorder bool      `json:"below_reorder"`
	Supplier     string    `json:"supplier,omitempty"`
	ExpiryDate   string    `json:"expiry_date,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type summaryResponse struct {
	TotalItems    int64 `json:"total_items"`
	LowStockItems int64 `json:"low_stock_items"`
	ExpiringItems int64 `json:"expiring_items"`
	StockValue    int64 `json:"stock_value"`
}

type movementResponse struct {
	ID        uuid.UUID              `json:"id"`
	ItemID    uuid.UUID              `json:"item_id"`
	ItemName  string                 `json:"item_name,omitempty"`
	Type      inventory.MovementType `json:"type"`
	Quantity  int64                  `json:"quantity"`
	Delta     int64                  `json:"delta"`
	Reason    string                 `json:"reason"`
	Actor     string                 `json:"actor"`
	SaleID    *uuid.UUID             `json:"sale_id,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type movementResultResponse struct {
	Movement         *movementResponse `json:"movement"`
	PreviousQuantity int64             `json:"previous_quantity"`
	Quantity         int64             `json:"quantity"`
	ReorderLevel     int64             `json:"reorder_level"`
	BelowReorder     bool              `json:"below_reorder"`
}

func toItemResponse(item *inventory.Item) itemResponse {
	resp := itemResponse{
		ID:           item.ID,
		Name:         item.Name,
		CategoryID:   item.CategoryID,
		CategoryName: item.CategoryName,
		Quantity:     item.Quantity,
		Unit:         item.Unit,
		CostPrice:    item.CostPrice,
		SellingPrice: item.SellingPrice,
		ReorderLevel: item.ReorderLevel,
		BelowReorder: item.BelowReorder(),
		Supplier:     item.Supplier,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}

	if item.ExpiryDate != nil {
		resp.ExpiryDate = item.ExpiryDate.Format(time.DateOnly)
	}

	return resp
}

func toItemList(items []*inventory.Item) []itemResponse {
	resp := make([]itemResponse, len(items))
	for i, item := range items {
		resp[i] = toItemResponse(item)
	}

	return resp
}

func toMovementResponse(m *inventory.Movement) movementResponse {
	return movementResponse{
		ID:        m.ID,
		ItemID:    m.ItemID,
		ItemName:  m.ItemName,
		Type:      m.Type,
		Quantity:  m.Quantity,
		Delta:     m.Delta(),
		Reason:    m.Reason,
		Actor:     m.Actor,
		SaleID:    m.SaleID,
		CreatedAt: m.CreatedAt,
	}
}

func toMovementResult(r *inventory.MovementResult) movementResultResponse {
	resp := movementResultResponse{
		PreviousQuantity: r.PreviousQuantity,
		Quantity:         r.Quantity,
		ReorderLevel:     r.ReorderLevel,
		BelowReorder:     r.BelowReorder,
	}

	if r.Movement != nil {
		resp.Movement = new(toMovementResponse(r.Movement))
	}

	return resp
}
