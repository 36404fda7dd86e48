package dto

import "github.com/shopspring/decimal"

// PostMovementRequest body para POST /api/inventory/movements.
// Quantity siempre positiva; direction IN u OUT.
type PostMovementRequest struct {
	ItemID          string          `json:"item_id"`
	WarehouseID     string          `json:"warehouse_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	Direction       string          `json:"direction"`
	MovementType    string          `json:"movement_type"`
	ReferenceType   string          `json:"reference_type,omitempty"`
	ReferenceID     string          `json:"reference_id,omitempty"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
}

// MovementResponse asiento del libro en respuestas.
type MovementResponse struct {
	ID              string          `json:"id"`
	ItemID          string          `json:"item_id"`
	WarehouseID     string          `json:"warehouse_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	Direction       string          `json:"direction"`
	MovementType    string          `json:"movement_type"`
	ReferenceType   string          `json:"reference_type,omitempty"`
	ReferenceID     string          `json:"reference_id,omitempty"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	BalanceBefore   decimal.Decimal `json:"balance_before"`
	BalanceAfter    decimal.Decimal `json:"balance_after"`
	Date            string          `json:"date"`
	CreatedBy       string          `json:"created_by,omitempty"`
}

// BalanceResponse saldo por artículo+bodega.
type BalanceResponse struct {
	ItemID           string          `json:"item_id"`
	WarehouseID      string          `json:"warehouse_id"`
	QuantityOnHand   decimal.Decimal `json:"quantity_on_hand"`
	QuantityReserved decimal.Decimal `json:"quantity_reserved"`
	Available        decimal.Decimal `json:"available"`
	AverageCost      decimal.Decimal `json:"average_cost"`
	LastMovementAt   string          `json:"last_movement_at,omitempty"`
}

// ConsistencyResponse resultado de GET /api/inventory/consistency.
type ConsistencyResponse struct {
	ItemID      string          `json:"item_id"`
	WarehouseID string          `json:"warehouse_id"`
	OnHand      decimal.Decimal `json:"on_hand"`
	MovementSum decimal.Decimal `json:"movement_sum"`
	Consistent  bool            `json:"consistent"`
}
