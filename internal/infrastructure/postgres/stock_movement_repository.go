package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación de StockMovementRepository (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `
	id, item_id, warehouse_id, quantity, direction, movement_type,
	reference_type, reference_id, reference_number, unit_cost, total_cost,
	balance_before, balance_after, date, created_at, created_by`

// Create persiste un asiento del libro (inmutable).
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ItemID, m.WarehouseID, m.Quantity, m.Direction, m.MovementType,
		nullIfEmpty(m.ReferenceType), nullIfEmpty(m.ReferenceID), nullIfEmpty(m.ReferenceNumber),
		m.UnitCost, m.TotalCost, m.BalanceBefore, m.BalanceAfter,
		m.Date, m.CreatedAt, nullIfEmpty(m.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

func scanMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	defer rows.Close()
	var out []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var refType, refID, refNumber, createdBy *string
		if err := rows.Scan(
			&m.ID, &m.ItemID, &m.WarehouseID, &m.Quantity, &m.Direction, &m.MovementType,
			&refType, &refID, &refNumber, &m.UnitCost, &m.TotalCost,
			&m.BalanceBefore, &m.BalanceAfter, &m.Date, &m.CreatedAt, &createdBy,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		if refType != nil {
			m.ReferenceType = *refType
		}
		if refID != nil {
			m.ReferenceID = *refID
		}
		if refNumber != nil {
			m.ReferenceNumber = *refNumber
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// ListByItemWarehouse devuelve los últimos asientos del par artículo+bodega.
func (r *StockMovementRepo) ListByItemWarehouse(itemID, warehouseID string, limit int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE item_id = $1 AND warehouse_id = $2
		ORDER BY created_at DESC
		LIMIT $3`
	rows, err := r.q.Query(context.Background(), query, itemID, warehouseID, limit)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	return scanMovements(rows)
}

// ListByReference devuelve los asientos originados por un documento.
func (r *StockMovementRepo) ListByReference(referenceType, referenceID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE reference_type = $1 AND reference_id = $2
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, referenceType, referenceID)
	if err != nil {
		return nil, fmt.Errorf("list stock movements by reference: %w", err)
	}
	return scanMovements(rows)
}

// SumSigned suma con signo todos los asientos del par artículo+bodega.
func (r *StockMovementRepo) SumSigned(itemID, warehouseID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN direction = 'OUT' THEN -quantity ELSE quantity END), 0)
		FROM stock_movements
		WHERE item_id = $1 AND warehouse_id = $2`
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, itemID, warehouseID).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum stock movements: %w", err)
	}
	return sum, nil
}
