package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// GoodsReceiptRepository puerto de persistencia del documento de recepción.
type GoodsReceiptRepository interface {
	Create(receipt *entity.GoodsReceipt, lines []*entity.GoodsReceiptLine) error
	GetByID(id string) (*entity.GoodsReceipt, []*entity.GoodsReceiptLine, error)
	// GetForUpdate bloquea la cabecera antes de una transición de estado.
	GetForUpdate(id string) (*entity.GoodsReceipt, []*entity.GoodsReceiptLine, error)
	UpdateHeader(receipt *entity.GoodsReceipt) error
	// ReplaceLines borra y reinserta las líneas (edición en borrador).
	ReplaceLines(receiptID string, lines []*entity.GoodsReceiptLine) error
	UpdateLine(line *entity.GoodsReceiptLine) error
	List(status string, limit int) ([]*entity.GoodsReceipt, error)
}
