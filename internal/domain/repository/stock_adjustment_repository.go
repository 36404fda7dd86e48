package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// StockAdjustmentRepository puerto de persistencia de ajustes por conteo físico.
type StockAdjustmentRepository interface {
	Create(adjustment *entity.StockAdjustment, lines []*entity.StockAdjustmentLine) error
	GetByID(id string) (*entity.StockAdjustment, []*entity.StockAdjustmentLine, error)
	GetForUpdate(id string) (*entity.StockAdjustment, []*entity.StockAdjustmentLine, error)
	UpdateHeader(adjustment *entity.StockAdjustment) error
	UpdateLine(line *entity.StockAdjustmentLine) error
}
