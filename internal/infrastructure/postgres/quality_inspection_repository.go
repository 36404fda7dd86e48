package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.QualityInspectionRepository = (*QualityInspectionRepo)(nil)

// QualityInspectionRepo implementación de QualityInspectionRepository (usable con pool o tx).
type QualityInspectionRepo struct {
	q Querier
}

// NewQualityInspectionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQualityInspectionRepository(q Querier) *QualityInspectionRepo {
	return &QualityInspectionRepo{q: q}
}

// Create persiste la inspección y sus resultados por parámetro.
// La columna receipt_line_id tiene constraint único: una inspección por línea.
func (r *QualityInspectionRepo) Create(insp *entity.QualityInspection, results []*entity.QualityInspectionResult) error {
	query := `
		INSERT INTO quality_inspections
			(id, receipt_id, receipt_line_id, item_id, inspector_id, sample_size,
			 accepted_qty, rejected_qty, verdict, notes, inspected_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		insp.ID, insp.ReceiptID, insp.ReceiptLineID, insp.ItemID,
		nullIfEmpty(insp.InspectorID), insp.SampleSize,
		insp.AcceptedQty, insp.RejectedQty, insp.Verdict,
		nullIfEmpty(insp.Notes), insp.InspectedAt, insp.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("la línea ya tiene inspección: %w", err)
		}
		return fmt.Errorf("insert quality inspection: %w", err)
	}
	resultQuery := `
		INSERT INTO quality_inspection_results
			(id, inspection_id, parameter_name, expected, observed, result)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, res := range results {
		_, err := r.q.Exec(context.Background(), resultQuery,
			res.ID, res.InspectionID, res.ParameterName,
			nullIfEmpty(res.Expected), nullIfEmpty(res.Observed), res.Result,
		)
		if err != nil {
			return fmt.Errorf("insert inspection result: %w", err)
		}
	}
	return nil
}

// ListByReceipt devuelve las inspecciones de una recepción.
func (r *QualityInspectionRepo) ListByReceipt(receiptID string) ([]*entity.QualityInspection, error) {
	query := `
		SELECT id, receipt_id, receipt_line_id, item_id, inspector_id, sample_size,
		       accepted_qty, rejected_qty, verdict, notes, inspected_at, created_at
		FROM quality_inspections WHERE receipt_id = $1
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, receiptID)
	if err != nil {
		return nil, fmt.Errorf("list quality inspections: %w", err)
	}
	defer rows.Close()

	var out []*entity.QualityInspection
	for rows.Next() {
		var i entity.QualityInspection
		var inspectorID, notes *string
		if err := rows.Scan(
			&i.ID, &i.ReceiptID, &i.ReceiptLineID, &i.ItemID, &inspectorID, &i.SampleSize,
			&i.AcceptedQty, &i.RejectedQty, &i.Verdict, &notes, &i.InspectedAt, &i.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan quality inspection: %w", err)
		}
		if inspectorID != nil {
			i.InspectorID = *inspectorID
		}
		if notes != nil {
			i.Notes = *notes
		}
		out = append(out, &i)
	}
	return out, rows.Err()
}

// ExistsForLine indica si la línea de recepción ya tiene inspección.
func (r *QualityInspectionRepo) ExistsForLine(receiptLineID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM quality_inspections WHERE receipt_line_id = $1)`,
		receiptLineID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists quality inspection: %w", err)
	}
	return exists, nil
}
