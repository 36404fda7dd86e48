package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StockTransferRepository = (*StockTransferRepo)(nil)

// StockTransferRepo implementación de StockTransferRepository (usable con pool o tx).
type StockTransferRepo struct {
	q Querier
}

// NewStockTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTransferRepository(q Querier) *StockTransferRepo {
	return &StockTransferRepo{q: q}
}

const transferColumns = `
	id, number, from_warehouse_id, to_warehouse_id, status, transfer_date,
	notes, created_at, updated_at, created_by`

// Create persiste cabecera y líneas del traslado.
func (r *StockTransferRepo) Create(transfer *entity.StockTransfer, lines []*entity.StockTransferLine) error {
	query := `
		INSERT INTO stock_transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.Number, transfer.FromWarehouseID, transfer.ToWarehouseID,
		transfer.Status, transfer.TransferDate, nullIfEmpty(transfer.Notes),
		transfer.CreatedAt, transfer.UpdatedAt, nullIfEmpty(transfer.CreatedBy),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("número de traslado duplicado: %w", err)
		}
		return fmt.Errorf("insert stock transfer: %w", err)
	}
	lineQuery := `
		INSERT INTO stock_transfer_lines (id, transfer_id, line_no, item_id, quantity)
		VALUES ($1, $2, $3, $4, $5)`
	for _, l := range lines {
		_, err := r.q.Exec(context.Background(), lineQuery,
			l.ID, l.TransferID, l.LineNo, l.ItemID, l.Quantity)
		if err != nil {
			return fmt.Errorf("insert stock transfer line: %w", err)
		}
	}
	return nil
}

func (r *StockTransferRepo) get(id string, forUpdate bool) (*entity.StockTransfer, []*entity.StockTransferLine, error) {
	query := `SELECT ` + transferColumns + ` FROM stock_transfers WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var t entity.StockTransfer
	var notes, createdBy *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.Number, &t.FromWarehouseID, &t.ToWarehouseID, &t.Status,
		&t.TransferDate, &notes, &t.CreatedAt, &t.UpdatedAt, &createdBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get stock transfer: %w", err)
	}
	if notes != nil {
		t.Notes = *notes
	}
	if createdBy != nil {
		t.CreatedBy = *createdBy
	}

	lineQuery := `
		SELECT id, transfer_id, line_no, item_id, quantity
		FROM stock_transfer_lines WHERE transfer_id = $1
		ORDER BY line_no`
	rows, err := r.q.Query(context.Background(), lineQuery, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list stock transfer lines: %w", err)
	}
	defer rows.Close()

	var lines []*entity.StockTransferLine
	for rows.Next() {
		var l entity.StockTransferLine
		if err := rows.Scan(&l.ID, &l.TransferID, &l.LineNo, &l.ItemID, &l.Quantity); err != nil {
			return nil, nil, fmt.Errorf("scan stock transfer line: %w", err)
		}
		lines = append(lines, &l)
	}
	return &t, lines, rows.Err()
}

// GetByID devuelve el traslado con líneas (nil si no existe).
func (r *StockTransferRepo) GetByID(id string) (*entity.StockTransfer, []*entity.StockTransferLine, error) {
	return r.get(id, false)
}

// GetForUpdate bloquea la cabecera (SELECT FOR UPDATE) antes de finalizar.
func (r *StockTransferRepo) GetForUpdate(id string) (*entity.StockTransfer, []*entity.StockTransferLine, error) {
	return r.get(id, true)
}

// UpdateHeader actualiza estado y notas de la cabecera.
func (r *StockTransferRepo) UpdateHeader(transfer *entity.StockTransfer) error {
	query := `
		UPDATE stock_transfers
		SET status = $2, notes = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.Status, nullIfEmpty(transfer.Notes), transfer.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update stock transfer: %w", err)
	}
	return nil
}
