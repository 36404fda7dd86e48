package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// PurchaseReturnRepository puerto de persistencia de devoluciones a proveedor.
type PurchaseReturnRepository interface {
	Create(ret *entity.PurchaseReturn, lines []*entity.PurchaseReturnLine) error
	GetByID(id string) (*entity.PurchaseReturn, []*entity.PurchaseReturnLine, error)
	GetForUpdate(id string) (*entity.PurchaseReturn, []*entity.PurchaseReturnLine, error)
	UpdateHeader(ret *entity.PurchaseReturn) error
	ListByReceipt(receiptID string) ([]*entity.PurchaseReturn, error)
}
