package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.PurchaseReturnRepository = (*PurchaseReturnRepo)(nil)

// PurchaseReturnRepo implementación de PurchaseReturnRepository (usable con pool o tx).
type PurchaseReturnRepo struct {
	q Querier
}

// NewPurchaseReturnRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseReturnRepository(q Querier) *PurchaseReturnRepo {
	return &PurchaseReturnRepo{q: q}
}

const returnColumns = `
	id, number, receipt_id, supplier_id, warehouse_id, status,
	net_total, tax_total, grand_total, reason, created_at, updated_at`

// Create persiste cabecera y líneas de la devolución.
func (r *PurchaseReturnRepo) Create(ret *entity.PurchaseReturn, lines []*entity.PurchaseReturnLine) error {
	query := `
		INSERT INTO purchase_returns (` + returnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		ret.ID, ret.Number, ret.ReceiptID, ret.SupplierID, ret.WarehouseID, ret.Status,
		ret.NetTotal, ret.TaxTotal, ret.GrandTotal, nullIfEmpty(ret.Reason),
		ret.CreatedAt, ret.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("número de devolución duplicado: %w", err)
		}
		return fmt.Errorf("insert purchase return: %w", err)
	}
	lineQuery := `
		INSERT INTO purchase_return_lines
			(id, return_id, receipt_line_id, line_no, item_id, quantity, unit_price, tax_pct, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, l := range lines {
		_, err := r.q.Exec(context.Background(), lineQuery,
			l.ID, l.ReturnID, l.ReceiptLineID, l.LineNo, l.ItemID,
			l.Quantity, l.UnitPrice, l.TaxPct, l.LineTotal,
		)
		if err != nil {
			return fmt.Errorf("insert purchase return line: %w", err)
		}
	}
	return nil
}

func (r *PurchaseReturnRepo) get(id string, forUpdate bool) (*entity.PurchaseReturn, []*entity.PurchaseReturnLine, error) {
	query := `SELECT ` + returnColumns + ` FROM purchase_returns WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var ret entity.PurchaseReturn
	var reason *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&ret.ID, &ret.Number, &ret.ReceiptID, &ret.SupplierID, &ret.WarehouseID, &ret.Status,
		&ret.NetTotal, &ret.TaxTotal, &ret.GrandTotal, &reason, &ret.CreatedAt, &ret.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get purchase return: %w", err)
	}
	if reason != nil {
		ret.Reason = *reason
	}
	lines, err := r.getLines(id)
	if err != nil {
		return nil, nil, err
	}
	return &ret, lines, nil
}

func (r *PurchaseReturnRepo) getLines(returnID string) ([]*entity.PurchaseReturnLine, error) {
	query := `
		SELECT id, return_id, receipt_line_id, line_no, item_id, quantity, unit_price, tax_pct, line_total
		FROM purchase_return_lines WHERE return_id = $1
		ORDER BY line_no`
	rows, err := r.q.Query(context.Background(), query, returnID)
	if err != nil {
		return nil, fmt.Errorf("list purchase return lines: %w", err)
	}
	defer rows.Close()

	var out []*entity.PurchaseReturnLine
	for rows.Next() {
		var l entity.PurchaseReturnLine
		if err := rows.Scan(
			&l.ID, &l.ReturnID, &l.ReceiptLineID, &l.LineNo, &l.ItemID,
			&l.Quantity, &l.UnitPrice, &l.TaxPct, &l.LineTotal,
		); err != nil {
			return nil, fmt.Errorf("scan purchase return line: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

// GetByID devuelve la devolución con líneas (nil si no existe).
func (r *PurchaseReturnRepo) GetByID(id string) (*entity.PurchaseReturn, []*entity.PurchaseReturnLine, error) {
	return r.get(id, false)
}

// GetForUpdate bloquea la cabecera (SELECT FOR UPDATE) antes de aprobar.
func (r *PurchaseReturnRepo) GetForUpdate(id string) (*entity.PurchaseReturn, []*entity.PurchaseReturnLine, error) {
	return r.get(id, true)
}

// UpdateHeader actualiza estado y totales de la cabecera.
func (r *PurchaseReturnRepo) UpdateHeader(ret *entity.PurchaseReturn) error {
	query := `
		UPDATE purchase_returns
		SET status = $2, net_total = $3, tax_total = $4, grand_total = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		ret.ID, ret.Status, ret.NetTotal, ret.TaxTotal, ret.GrandTotal, ret.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update purchase return: %w", err)
	}
	return nil
}

// ListByReceipt devuelve las devoluciones generadas por una recepción.
func (r *PurchaseReturnRepo) ListByReceipt(receiptID string) ([]*entity.PurchaseReturn, error) {
	query := `SELECT ` + returnColumns + ` FROM purchase_returns WHERE receipt_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, receiptID)
	if err != nil {
		return nil, fmt.Errorf("list purchase returns: %w", err)
	}
	defer rows.Close()

	var out []*entity.PurchaseReturn
	for rows.Next() {
		var ret entity.PurchaseReturn
		var reason *string
		if err := rows.Scan(
			&ret.ID, &ret.Number, &ret.ReceiptID, &ret.SupplierID, &ret.WarehouseID, &ret.Status,
			&ret.NetTotal, &ret.TaxTotal, &ret.GrandTotal, &reason, &ret.CreatedAt, &ret.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan purchase return: %w", err)
		}
		if reason != nil {
			ret.Reason = *reason
		}
		out = append(out, &ret)
	}
	return out, rows.Err()
}
