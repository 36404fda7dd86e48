package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.GoodsReceiptRepository = (*GoodsReceiptRepo)(nil)

// GoodsReceiptRepo implementación de GoodsReceiptRepository (usable con pool o tx).
type GoodsReceiptRepo struct {
	q Querier
}

// NewGoodsReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGoodsReceiptRepository(q Querier) *GoodsReceiptRepo {
	return &GoodsReceiptRepo{q: q}
}

const receiptColumns = `
	id, number, order_id, supplier_id, warehouse_id, status, approval_status,
	receipt_date, notes, created_at, updated_at, created_by`

// Create persiste cabecera y líneas de la recepción.
func (r *GoodsReceiptRepo) Create(receipt *entity.GoodsReceipt, lines []*entity.GoodsReceiptLine) error {
	query := `
		INSERT INTO goods_receipts (` + receiptColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		receipt.ID, receipt.Number, receipt.OrderID, receipt.SupplierID, receipt.WarehouseID,
		receipt.Status, receipt.ApprovalStatus,
		receipt.ReceiptDate, nullIfEmpty(receipt.Notes),
		receipt.CreatedAt, receipt.UpdatedAt, nullIfEmpty(receipt.CreatedBy),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("número de recepción duplicado: %w", err)
		}
		return fmt.Errorf("insert goods receipt: %w", err)
	}
	return r.insertLines(lines)
}

func (r *GoodsReceiptRepo) insertLines(lines []*entity.GoodsReceiptLine) error {
	query := `
		INSERT INTO goods_receipt_lines
			(id, receipt_id, order_line_id, line_no, item_id, received_qty, accepted_qty, rejected_qty, unit_cost, verdict)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for _, l := range lines {
		_, err := r.q.Exec(context.Background(), query,
			l.ID, l.ReceiptID, l.OrderLineID, l.LineNo, l.ItemID,
			l.ReceivedQty, l.AcceptedQty, l.RejectedQty, l.UnitCost, nullIfEmpty(l.Verdict),
		)
		if err != nil {
			return fmt.Errorf("insert goods receipt line: %w", err)
		}
	}
	return nil
}

func (r *GoodsReceiptRepo) get(id string, forUpdate bool) (*entity.GoodsReceipt, []*entity.GoodsReceiptLine, error) {
	query := `SELECT ` + receiptColumns + ` FROM goods_receipts WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var g entity.GoodsReceipt
	var notes, createdBy *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&g.ID, &g.Number, &g.OrderID, &g.SupplierID, &g.WarehouseID,
		&g.Status, &g.ApprovalStatus,
		&g.ReceiptDate, &notes, &g.CreatedAt, &g.UpdatedAt, &createdBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get goods receipt: %w", err)
	}
	if notes != nil {
		g.Notes = *notes
	}
	if createdBy != nil {
		g.CreatedBy = *createdBy
	}
	lines, err := r.getLines(id)
	if err != nil {
		return nil, nil, err
	}
	return &g, lines, nil
}

func (r *GoodsReceiptRepo) getLines(receiptID string) ([]*entity.GoodsReceiptLine, error) {
	query := `
		SELECT id, receipt_id, order_line_id, line_no, item_id, received_qty, accepted_qty, rejected_qty, unit_cost, verdict
		FROM goods_receipt_lines WHERE receipt_id = $1
		ORDER BY line_no`
	rows, err := r.q.Query(context.Background(), query, receiptID)
	if err != nil {
		return nil, fmt.Errorf("list goods receipt lines: %w", err)
	}
	defer rows.Close()

	var out []*entity.GoodsReceiptLine
	for rows.Next() {
		var l entity.GoodsReceiptLine
		var verdict *string
		if err := rows.Scan(
			&l.ID, &l.ReceiptID, &l.OrderLineID, &l.LineNo, &l.ItemID,
			&l.ReceivedQty, &l.AcceptedQty, &l.RejectedQty, &l.UnitCost, &verdict,
		); err != nil {
			return nil, fmt.Errorf("scan goods receipt line: %w", err)
		}
		if verdict != nil {
			l.Verdict = *verdict
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

// GetByID devuelve la recepción con líneas (nil si no existe).
func (r *GoodsReceiptRepo) GetByID(id string) (*entity.GoodsReceipt, []*entity.GoodsReceiptLine, error) {
	return r.get(id, false)
}

// GetForUpdate bloquea la cabecera (SELECT FOR UPDATE) antes de una transición.
func (r *GoodsReceiptRepo) GetForUpdate(id string) (*entity.GoodsReceipt, []*entity.GoodsReceiptLine, error) {
	return r.get(id, true)
}

// UpdateHeader actualiza estado, aprobación y notas de la cabecera.
func (r *GoodsReceiptRepo) UpdateHeader(receipt *entity.GoodsReceipt) error {
	query := `
		UPDATE goods_receipts
		SET status = $2, approval_status = $3, notes = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		receipt.ID, receipt.Status, receipt.ApprovalStatus,
		nullIfEmpty(receipt.Notes), receipt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update goods receipt: %w", err)
	}
	return nil
}

// ReplaceLines borra y reinserta las líneas (edición en borrador).
func (r *GoodsReceiptRepo) ReplaceLines(receiptID string, lines []*entity.GoodsReceiptLine) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM goods_receipt_lines WHERE receipt_id = $1`, receiptID)
	if err != nil {
		return fmt.Errorf("delete goods receipt lines: %w", err)
	}
	return r.insertLines(lines)
}

// UpdateLine escribe aceptado/rechazado/veredicto en una línea (inspección).
func (r *GoodsReceiptRepo) UpdateLine(line *entity.GoodsReceiptLine) error {
	query := `
		UPDATE goods_receipt_lines
		SET accepted_qty = $2, rejected_qty = $3, verdict = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.AcceptedQty, line.RejectedQty, nullIfEmpty(line.Verdict))
	if err != nil {
		return fmt.Errorf("update goods receipt line: %w", err)
	}
	return nil
}

// List devuelve recepciones, opcionalmente filtradas por estado.
func (r *GoodsReceiptRepo) List(status string, limit int) ([]*entity.GoodsReceipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM goods_receipts`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1 ORDER BY created_at DESC LIMIT $2`
		args = append(args, status, limit)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1`
		args = append(args, limit)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list goods receipts: %w", err)
	}
	defer rows.Close()

	var out []*entity.GoodsReceipt
	for rows.Next() {
		var g entity.GoodsReceipt
		var notes, createdBy *string
		if err := rows.Scan(
			&g.ID, &g.Number, &g.OrderID, &g.SupplierID, &g.WarehouseID,
			&g.Status, &g.ApprovalStatus,
			&g.ReceiptDate, &notes, &g.CreatedAt, &g.UpdatedAt, &createdBy,
		); err != nil {
			return nil, fmt.Errorf("scan goods receipt: %w", err)
		}
		if notes != nil {
			g.Notes = *notes
		}
		if createdBy != nil {
			g.CreatedBy = *createdBy
		}
		out = append(out, &g)
	}
	return out, rows.Err()
}
