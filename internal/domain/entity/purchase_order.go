package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la orden de compra (derivados de sus líneas).
const (
	POStatusOpen              = "OPEN"
	POStatusPartiallyReceived = "PARTIALLY_RECEIVED"
	POStatusClosed            = "CLOSED"
)

// Estados de línea de orden de compra.
const (
	POLineStatusOpen              = "OPEN"
	POLineStatusPartiallyReceived = "PARTIALLY_RECEIVED"
	POLineStatusReceived          = "RECEIVED"
)

// PurchaseOrder cabecera de orden de compra. Este servicio no la crea;
// solo reconcilia las cantidades recibidas contra ella.
type PurchaseOrder struct {
	ID         string
	Number     string
	SupplierID string
	Status     string
	OrderDate  time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PurchaseOrderLine línea de orden de compra. ReceivedQty es el acumulado
// de todas las recepciones y nunca puede superar OrderedQty.
type PurchaseOrderLine struct {
	ID          string
	OrderID     string
	LineNo      int
	ItemID      string
	OrderedQty  decimal.Decimal
	ReceivedQty decimal.Decimal
	UnitCost    decimal.Decimal
	Status      string
}

// Pending devuelve la cantidad aún no recibida de la línea.
func (l *PurchaseOrderLine) Pending() decimal.Decimal {
	return l.OrderedQty.Sub(l.ReceivedQty)
}

// DeriveLineStatus calcula el estado de una línea según su acumulado.
func DeriveLineStatus(ordered, received decimal.Decimal) string {
	switch {
	case received.LessThanOrEqual(decimal.Zero):
		return POLineStatusOpen
	case received.GreaterThanOrEqual(ordered):
		return POLineStatusReceived
	default:
		return POLineStatusPartiallyReceived
	}
}

// DeriveOrderStatus calcula el estado de la cabecera a partir de sus líneas.
func DeriveOrderStatus(lines []*PurchaseOrderLine) string {
	allReceived := true
	anyReceived := false
	for _, l := range lines {
		if l.ReceivedQty.GreaterThan(decimal.Zero) {
			anyReceived = true
		}
		if l.ReceivedQty.LessThan(l.OrderedQty) {
			allReceived = false
		}
	}
	switch {
	case allReceived && len(lines) > 0:
		return POStatusClosed
	case anyReceived:
		return POStatusPartiallyReceived
	default:
		return POStatusOpen
	}
}
