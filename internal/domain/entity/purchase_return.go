package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la devolución a proveedor.
const (
	ReturnStatusDraft    = "DRAFT"
	ReturnStatusApproved = "APPROVED" // terminal: salida de stock registrada
)

// PurchaseReturn devolución a proveedor generada automáticamente a partir
// de las líneas rechazadas de una recepción.
type PurchaseReturn struct {
	ID         string
	Number     string
	ReceiptID  string
	SupplierID string
	WarehouseID string
	Status     string
	NetTotal   decimal.Decimal
	TaxTotal   decimal.Decimal
	GrandTotal decimal.Decimal
	Reason     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PurchaseReturnLine línea de devolución. Quantity es la cantidad rechazada
// de la línea de recepción origen; UnitPrice el costo unitario de la compra.
type PurchaseReturnLine struct {
	ID            string
	ReturnID      string
	ReceiptLineID string
	LineNo        int
	ItemID        string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	TaxPct        decimal.Decimal
	LineTotal     decimal.Decimal
}
