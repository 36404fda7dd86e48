package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockBalance saldo materializado de un artículo en una bodega.
// Es la fila que se bloquea (SELECT FOR UPDATE) en cada asiento del libro
// de inventario para serializar escrituras concurrentes.
type StockBalance struct {
	ItemID           string
	WarehouseID      string
	QuantityOnHand   decimal.Decimal
	QuantityReserved decimal.Decimal
	// AverageCost se fija con la primera entrada y no se recalcula después.
	AverageCost    decimal.Decimal
	LastMovementAt time.Time
	UpdatedAt      time.Time
}

// Available devuelve la cantidad disponible (en mano menos reservada).
func (b *StockBalance) Available() decimal.Decimal {
	return b.QuantityOnHand.Sub(b.QuantityReserved)
}
