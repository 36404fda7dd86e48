package dto

import "github.com/shopspring/decimal"

// CreateTransferRequest body para POST /api/transfers.
type CreateTransferRequest struct {
	FromWarehouseID string                `json:"from_warehouse_id"`
	ToWarehouseID   string                `json:"to_warehouse_id"`
	TransferDate    string                `json:"transfer_date,omitempty"` // YYYY-MM-DD; vacío = hoy
	Notes           string                `json:"notes,omitempty"`
	Lines           []TransferLineRequest `json:"lines"`
}

// TransferLineRequest línea de traslado.
type TransferLineRequest struct {
	ItemID   string          `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// TransferResponse traslado con líneas.
type TransferResponse struct {
	ID              string                 `json:"id"`
	Number          string                 `json:"number"`
	FromWarehouseID string                 `json:"from_warehouse_id"`
	ToWarehouseID   string                 `json:"to_warehouse_id"`
	Status          string                 `json:"status"`
	TransferDate    string                 `json:"transfer_date"`
	Notes           string                 `json:"notes,omitempty"`
	Lines           []TransferLineResponse `json:"lines"`
}

// TransferLineResponse línea de traslado en respuestas.
type TransferLineResponse struct {
	ID       string          `json:"id"`
	LineNo   int             `json:"line_no"`
	ItemID   string          `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// CreateCountRequest body para POST /api/adjustments. El snapshot de
// saldos de la bodega se toma al crear el documento.
type CreateCountRequest struct {
	WarehouseID string `json:"warehouse_id"`
	CountDate   string `json:"count_date,omitempty"` // YYYY-MM-DD; vacío = hoy
	Notes       string `json:"notes,omitempty"`
}

// CountItemRequest cantidad contada de un artículo.
type CountItemRequest struct {
	ItemID     string          `json:"item_id"`
	CountedQty decimal.Decimal `json:"counted_qty"`
}

// UpdateCountRequest body para PUT /api/adjustments/:id/items.
type UpdateCountRequest struct {
	Items []CountItemRequest `json:"items"`
}

// AdjustmentResponse conteo físico con líneas.
type AdjustmentResponse struct {
	ID          string                   `json:"id"`
	Number      string                   `json:"number"`
	WarehouseID string                   `json:"warehouse_id"`
	Status      string                   `json:"status"`
	CountDate   string                   `json:"count_date"`
	Notes       string                   `json:"notes,omitempty"`
	Lines       []AdjustmentLineResponse `json:"lines"`
}

// AdjustmentLineResponse línea de conteo en respuestas.
type AdjustmentLineResponse struct {
	ID            string          `json:"id"`
	LineNo        int             `json:"line_no"`
	ItemID        string          `json:"item_id"`
	SystemQty     decimal.Decimal `json:"system_qty"`
	CountedQty    decimal.Decimal `json:"counted_qty"`
	Counted       bool            `json:"counted"`
	Variance      decimal.Decimal `json:"variance"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	VarianceValue decimal.Decimal `json:"variance_value"`
}
