package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

func (r *PurchaseOrderRepo) getHeader(id string, forUpdate bool) (*entity.PurchaseOrder, error) {
	query := `
		SELECT id, number, supplier_id, status, order_date, created_at, updated_at
		FROM purchase_orders WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var o entity.PurchaseOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.Number, &o.SupplierID, &o.Status, &o.OrderDate, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return &o, nil
}

// GetByID devuelve la cabecera de la orden (nil si no existe).
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	return r.getHeader(id, false)
}

// GetForUpdate bloquea la cabecera (SELECT FOR UPDATE) y devuelve cabecera + líneas.
func (r *PurchaseOrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, []*entity.PurchaseOrderLine, error) {
	order, err := r.getHeader(id, true)
	if err != nil || order == nil {
		return order, nil, err
	}
	lines, err := r.GetLines(id)
	if err != nil {
		return nil, nil, err
	}
	return order, lines, nil
}

// GetLines devuelve las líneas de la orden en orden de línea.
func (r *PurchaseOrderRepo) GetLines(orderID string) ([]*entity.PurchaseOrderLine, error) {
	query := `
		SELECT id, order_id, line_no, item_id, ordered_qty, received_qty, unit_cost, status
		FROM purchase_order_lines WHERE order_id = $1
		ORDER BY line_no`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list purchase order lines: %w", err)
	}
	defer rows.Close()

	var out []*entity.PurchaseOrderLine
	for rows.Next() {
		var l entity.PurchaseOrderLine
		if err := rows.Scan(
			&l.ID, &l.OrderID, &l.LineNo, &l.ItemID,
			&l.OrderedQty, &l.ReceivedQty, &l.UnitCost, &l.Status,
		); err != nil {
			return nil, fmt.Errorf("scan purchase order line: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

// UpdateLine actualiza el acumulado recibido y el estado de una línea.
func (r *PurchaseOrderRepo) UpdateLine(line *entity.PurchaseOrderLine) error {
	query := `
		UPDATE purchase_order_lines
		SET received_qty = $2, status = $3
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, line.ID, line.ReceivedQty, line.Status)
	if err != nil {
		return fmt.Errorf("update purchase order line: %w", err)
	}
	return nil
}

// UpdateStatus actualiza el estado de la cabecera.
func (r *PurchaseOrderRepo) UpdateStatus(id, status string) error {
	query := `UPDATE purchase_orders SET status = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	return nil
}
