package dto

import "github.com/shopspring/decimal"

// CreateReceiptRequest body para POST /api/receipts.
// Las líneas referencian líneas de la orden de compra; received_qty no
// puede dejar el acumulado por encima de lo ordenado.
type CreateReceiptRequest struct {
	OrderID     string               `json:"order_id"`
	WarehouseID string               `json:"warehouse_id"`
	ReceiptDate string               `json:"receipt_date,omitempty"` // YYYY-MM-DD; vacío = hoy
	Notes       string               `json:"notes,omitempty"`
	Lines       []ReceiptLineRequest `json:"lines"`
}

// ReceiptLineRequest línea de recepción contra una línea de la orden.
type ReceiptLineRequest struct {
	OrderLineID string          `json:"order_line_id"`
	ReceivedQty decimal.Decimal `json:"received_qty"`
}

// UpdateReceiptRequest body para PUT /api/receipts/:id (solo en borrador /
// pendiente de inspección). Las líneas reemplazan a las existentes y la
// reconciliación contra la orden se revierte y reaplica.
type UpdateReceiptRequest struct {
	Notes string               `json:"notes,omitempty"`
	Lines []ReceiptLineRequest `json:"lines"`
}

// InspectionRequest body para POST /api/receipts/:id/inspections.
type InspectionRequest struct {
	ReceiptLineID string                     `json:"receipt_line_id"`
	SampleSize    decimal.Decimal            `json:"sample_size"`
	AcceptedQty   decimal.Decimal            `json:"accepted_qty"`
	RejectedQty   decimal.Decimal            `json:"rejected_qty"`
	Notes         string                     `json:"notes,omitempty"`
	Results       []InspectionResultRequest  `json:"results,omitempty"`
}

// InspectionResultRequest resultado de un parámetro de inspección.
type InspectionResultRequest struct {
	ParameterName string `json:"parameter_name"`
	Expected      string `json:"expected,omitempty"`
	Observed      string `json:"observed,omitempty"`
	Result        string `json:"result"` // PASS | FAIL
}

// ApprovalCallbackRequest body del callback del servicio de aprobaciones.
type ApprovalCallbackRequest struct {
	Decision   string `json:"decision"` // APPROVED | REJECTED
	ApproverID string `json:"approver_id,omitempty"`
	Comments   string `json:"comments,omitempty"`
}

// ReceiptResponse recepción con líneas.
type ReceiptResponse struct {
	ID             string                `json:"id"`
	Number         string                `json:"number"`
	OrderID        string                `json:"order_id"`
	SupplierID     string                `json:"supplier_id"`
	WarehouseID    string                `json:"warehouse_id"`
	Status         string                `json:"status"`
	ApprovalStatus string                `json:"approval_status"`
	ReceiptDate    string                `json:"receipt_date"`
	Notes          string                `json:"notes,omitempty"`
	Lines          []ReceiptLineResponse `json:"lines"`
}

// ReceiptLineResponse línea de recepción en respuestas.
type ReceiptLineResponse struct {
	ID          string          `json:"id"`
	OrderLineID string          `json:"order_line_id"`
	LineNo      int             `json:"line_no"`
	ItemID      string          `json:"item_id"`
	ReceivedQty decimal.Decimal `json:"received_qty"`
	AcceptedQty decimal.Decimal `json:"accepted_qty"`
	RejectedQty decimal.Decimal `json:"rejected_qty"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Verdict     string          `json:"verdict,omitempty"`
}

// ReturnResponse devolución a proveedor con líneas.
type ReturnResponse struct {
	ID         string               `json:"id"`
	Number     string               `json:"number"`
	ReceiptID  string               `json:"receipt_id"`
	SupplierID string               `json:"supplier_id"`
	Status     string               `json:"status"`
	NetTotal   decimal.Decimal      `json:"net_total"`
	TaxTotal   decimal.Decimal      `json:"tax_total"`
	GrandTotal decimal.Decimal      `json:"grand_total"`
	Reason     string               `json:"reason,omitempty"`
	Lines      []ReturnLineResponse `json:"lines"`
}

// ReturnLineResponse línea de devolución en respuestas.
type ReturnLineResponse struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"item_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	TaxPct    decimal.Decimal `json:"tax_pct"`
	LineTotal decimal.Decimal `json:"line_total"`
}
