package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StockAdjustmentRepository = (*StockAdjustmentRepo)(nil)

// StockAdjustmentRepo implementación de StockAdjustmentRepository (usable con pool o tx).
type StockAdjustmentRepo struct {
	q Querier
}

// NewStockAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockAdjustmentRepository(q Querier) *StockAdjustmentRepo {
	return &StockAdjustmentRepo{q: q}
}

const adjustmentColumns = `
	id, number, warehouse_id, status, count_date, notes, created_at, updated_at, created_by`

// Create persiste cabecera y líneas del conteo.
func (r *StockAdjustmentRepo) Create(adjustment *entity.StockAdjustment, lines []*entity.StockAdjustmentLine) error {
	query := `
		INSERT INTO stock_adjustments (` + adjustmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		adjustment.ID, adjustment.Number, adjustment.WarehouseID, adjustment.Status,
		adjustment.CountDate, nullIfEmpty(adjustment.Notes),
		adjustment.CreatedAt, adjustment.UpdatedAt, nullIfEmpty(adjustment.CreatedBy),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("número de conteo duplicado: %w", err)
		}
		return fmt.Errorf("insert stock adjustment: %w", err)
	}
	lineQuery := `
		INSERT INTO stock_adjustment_lines
			(id, adjustment_id, line_no, item_id, system_qty, counted_qty, counted, variance, unit_cost, variance_value)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for _, l := range lines {
		_, err := r.q.Exec(context.Background(), lineQuery,
			l.ID, l.AdjustmentID, l.LineNo, l.ItemID, l.SystemQty,
			l.CountedQty, l.Counted, l.Variance, l.UnitCost, l.VarianceValue,
		)
		if err != nil {
			return fmt.Errorf("insert stock adjustment line: %w", err)
		}
	}
	return nil
}

func (r *StockAdjustmentRepo) get(id string, forUpdate bool) (*entity.StockAdjustment, []*entity.StockAdjustmentLine, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM stock_adjustments WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var a entity.StockAdjustment
	var notes, createdBy *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.Number, &a.WarehouseID, &a.Status, &a.CountDate,
		&notes, &a.CreatedAt, &a.UpdatedAt, &createdBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get stock adjustment: %w", err)
	}
	if notes != nil {
		a.Notes = *notes
	}
	if createdBy != nil {
		a.CreatedBy = *createdBy
	}

	lineQuery := `
		SELECT id, adjustment_id, line_no, item_id, system_qty, counted_qty, counted, variance, unit_cost, variance_value
		FROM stock_adjustment_lines WHERE adjustment_id = $1
		ORDER BY line_no`
	rows, err := r.q.Query(context.Background(), lineQuery, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list stock adjustment lines: %w", err)
	}
	defer rows.Close()

	var lines []*entity.StockAdjustmentLine
	for rows.Next() {
		var l entity.StockAdjustmentLine
		if err := rows.Scan(
			&l.ID, &l.AdjustmentID, &l.LineNo, &l.ItemID, &l.SystemQty,
			&l.CountedQty, &l.Counted, &l.Variance, &l.UnitCost, &l.VarianceValue,
		); err != nil {
			return nil, nil, fmt.Errorf("scan stock adjustment line: %w", err)
		}
		lines = append(lines, &l)
	}
	return &a, lines, rows.Err()
}

// GetByID devuelve el conteo con líneas (nil si no existe).
func (r *StockAdjustmentRepo) GetByID(id string) (*entity.StockAdjustment, []*entity.StockAdjustmentLine, error) {
	return r.get(id, false)
}

// GetForUpdate bloquea la cabecera (SELECT FOR UPDATE) antes de capturar o aprobar.
func (r *StockAdjustmentRepo) GetForUpdate(id string) (*entity.StockAdjustment, []*entity.StockAdjustmentLine, error) {
	return r.get(id, true)
}

// UpdateHeader actualiza estado y notas de la cabecera.
func (r *StockAdjustmentRepo) UpdateHeader(adjustment *entity.StockAdjustment) error {
	query := `
		UPDATE stock_adjustments
		SET status = $2, notes = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		adjustment.ID, adjustment.Status, nullIfEmpty(adjustment.Notes), adjustment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update stock adjustment: %w", err)
	}
	return nil
}

// UpdateLine escribe cantidad contada, varianza y valor en una línea.
func (r *StockAdjustmentRepo) UpdateLine(line *entity.StockAdjustmentLine) error {
	query := `
		UPDATE stock_adjustment_lines
		SET counted_qty = $2, counted = $3, variance = $4, variance_value = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.CountedQty, line.Counted, line.Variance, line.VarianceValue)
	if err != nil {
		return fmt.Errorf("update stock adjustment line: %w", err)
	}
	return nil
}
