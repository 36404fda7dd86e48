package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dirección de un movimiento de inventario.
const (
	DirectionIn  = "IN"
	DirectionOut = "OUT"
)

// Tipos de movimiento (el documento que lo origina).
const (
	MovementTypeGRN         = "GRN"          // entrada por recepción de compra
	MovementTypeAdjustment  = "ADJUSTMENT"   // ajuste por conteo físico
	MovementTypeTransferIn  = "TRANSFER_IN"  // entrada por traslado
	MovementTypeTransferOut = "TRANSFER_OUT" // salida por traslado
	MovementTypeIssue       = "ISSUE"        // salida genérica
	MovementTypeReturn      = "RETURN"       // salida por devolución a proveedor
)

// StockMovement asiento inmutable del libro de inventario. Quantity es
// siempre positiva; Direction determina el signo. BalanceBefore/After son
// el snapshot del saldo en mano al momento del asiento.
type StockMovement struct {
	ID              string
	ItemID          string
	WarehouseID     string
	Quantity        decimal.Decimal
	Direction       string // IN | OUT
	MovementType    string // GRN, ADJUSTMENT, TRANSFER_IN...
	ReferenceType   string // goods_receipt, stock_transfer, stock_adjustment, purchase_return
	ReferenceID     string
	ReferenceNumber string
	UnitCost        decimal.Decimal
	TotalCost       decimal.Decimal
	BalanceBefore   decimal.Decimal
	BalanceAfter    decimal.Decimal
	Date            time.Time
	CreatedAt       time.Time
	CreatedBy       string // actor externo (id opaco)
}

// SignedQuantity devuelve la cantidad con signo según la dirección.
func (m *StockMovement) SignedQuantity() decimal.Decimal {
	if m.Direction == DirectionOut {
		return m.Quantity.Neg()
	}
	return m.Quantity
}
