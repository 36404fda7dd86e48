package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// StockBalanceRepository define el puerto para consultar/actualizar el saldo
// por artículo+bodega. Usado dentro de transacciones para garantizar
// consistencia.
type StockBalanceRepository interface {
	Get(itemID, warehouseID string) (*entity.StockBalance, error)
	// GetForUpdate bloquea la fila de saldo (SELECT FOR UPDATE); si no existe
	// devuelve un saldo en cero sin crearla.
	GetForUpdate(itemID, warehouseID string) (*entity.StockBalance, error)
	Upsert(balance *entity.StockBalance) error
	ListByWarehouse(warehouseID string) ([]*entity.StockBalance, error)
}
