package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// QualityInspectionRepository puerto de persistencia de inspecciones de
// calidad y sus resultados por parámetro.
type QualityInspectionRepository interface {
	Create(inspection *entity.QualityInspection, results []*entity.QualityInspectionResult) error
	ListByReceipt(receiptID string) ([]*entity.QualityInspection, error)
	ExistsForLine(receiptLineID string) (bool, error)
}
