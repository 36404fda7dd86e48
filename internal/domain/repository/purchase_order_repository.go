package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// PurchaseOrderRepository puerto de lectura/reconciliación de órdenes de
// compra. La creación de órdenes vive en el módulo de compras, fuera de
// este servicio.
type PurchaseOrderRepository interface {
	GetByID(id string) (*entity.PurchaseOrder, error)
	// GetForUpdate bloquea la cabecera y devuelve cabecera + líneas
	// (SELECT FOR UPDATE) para reconciliar cantidades recibidas.
	GetForUpdate(id string) (*entity.PurchaseOrder, []*entity.PurchaseOrderLine, error)
	GetLines(orderID string) ([]*entity.PurchaseOrderLine, error)
	UpdateLine(line *entity.PurchaseOrderLine) error
	UpdateStatus(id, status string) error
}
