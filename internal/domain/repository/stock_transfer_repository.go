package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// StockTransferRepository puerto de persistencia de traslados entre bodegas.
type StockTransferRepository interface {
	Create(transfer *entity.StockTransfer, lines []*entity.StockTransferLine) error
	GetByID(id string) (*entity.StockTransfer, []*entity.StockTransferLine, error)
	GetForUpdate(id string) (*entity.StockTransfer, []*entity.StockTransferLine, error)
	UpdateHeader(transfer *entity.StockTransfer) error
}
