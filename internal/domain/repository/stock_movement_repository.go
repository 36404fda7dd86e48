package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del libro de
// movimientos. Los asientos son inmutables: solo Create y lecturas.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByItemWarehouse(itemID, warehouseID string, limit int) ([]*entity.StockMovement, error)
	ListByReference(referenceType, referenceID string) ([]*entity.StockMovement, error)
	// SumSigned devuelve la suma con signo de todos los asientos del par
	// artículo+bodega (para verificar consistencia contra el saldo).
	SumSigned(itemID, warehouseID string) (decimal.Decimal, error)
}
