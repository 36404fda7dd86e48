package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StockBalanceRepository = (*StockBalanceRepo)(nil)

// StockBalanceRepo implementación de StockBalanceRepository (usable con pool o tx).
type StockBalanceRepo struct {
	q Querier
}

// NewStockBalanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockBalanceRepository(q Querier) *StockBalanceRepo {
	return &StockBalanceRepo{q: q}
}

func emptyBalance(itemID, warehouseID string) *entity.StockBalance {
	return &entity.StockBalance{
		ItemID:           itemID,
		WarehouseID:      warehouseID,
		QuantityOnHand:   decimal.Zero,
		QuantityReserved: decimal.Zero,
		AverageCost:      decimal.Zero,
	}
}

// Get obtiene el saldo de un artículo en una bodega (cero si no existe fila).
func (r *StockBalanceRepo) Get(itemID, warehouseID string) (*entity.StockBalance, error) {
	query := `
		SELECT item_id, warehouse_id, quantity_on_hand, quantity_reserved, average_cost, last_movement_at, updated_at
		FROM stock_balances WHERE item_id = $1 AND warehouse_id = $2`
	var b entity.StockBalance
	err := r.q.QueryRow(context.Background(), query, itemID, warehouseID).Scan(
		&b.ItemID, &b.WarehouseID, &b.QuantityOnHand, &b.QuantityReserved,
		&b.AverageCost, &b.LastMovementAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return emptyBalance(itemID, warehouseID), nil
		}
		return nil, fmt.Errorf("get stock balance: %w", err)
	}
	return &b, nil
}

// GetForUpdate obtiene el saldo y bloquea la fila (SELECT FOR UPDATE).
// Si no existe fila la crea en cero primero: sin fila no habría nada que
// bloquear y dos primeros movimientos concurrentes se pisarían el saldo.
func (r *StockBalanceRepo) GetForUpdate(itemID, warehouseID string) (*entity.StockBalance, error) {
	insert := `
		INSERT INTO stock_balances (item_id, warehouse_id, quantity_on_hand, quantity_reserved, average_cost, updated_at)
		VALUES ($1, $2, 0, 0, 0, now())
		ON CONFLICT (item_id, warehouse_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), insert, itemID, warehouseID); err != nil {
		return nil, fmt.Errorf("init stock balance: %w", err)
	}
	query := `
		SELECT item_id, warehouse_id, quantity_on_hand, quantity_reserved, average_cost, last_movement_at, updated_at
		FROM stock_balances WHERE item_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	var b entity.StockBalance
	err := r.q.QueryRow(context.Background(), query, itemID, warehouseID).Scan(
		&b.ItemID, &b.WarehouseID, &b.QuantityOnHand, &b.QuantityReserved,
		&b.AverageCost, &b.LastMovementAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get stock balance for update: %w", err)
	}
	return &b, nil
}

// Upsert inserta o actualiza el saldo (por artículo y bodega).
func (r *StockBalanceRepo) Upsert(balance *entity.StockBalance) error {
	query := `
		INSERT INTO stock_balances (item_id, warehouse_id, quantity_on_hand, quantity_reserved, average_cost, last_movement_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (item_id, warehouse_id)
		DO UPDATE SET quantity_on_hand = EXCLUDED.quantity_on_hand,
		              quantity_reserved = EXCLUDED.quantity_reserved,
		              average_cost = EXCLUDED.average_cost,
		              last_movement_at = EXCLUDED.last_movement_at,
		              updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		balance.ItemID, balance.WarehouseID, balance.QuantityOnHand,
		balance.QuantityReserved, balance.AverageCost, balance.LastMovementAt,
	)
	if err != nil {
		return fmt.Errorf("upsert stock balance: %w", err)
	}
	return nil
}

// ListByWarehouse devuelve todos los saldos de una bodega.
func (r *StockBalanceRepo) ListByWarehouse(warehouseID string) ([]*entity.StockBalance, error) {
	query := `
		SELECT item_id, warehouse_id, quantity_on_hand, quantity_reserved, average_cost, last_movement_at, updated_at
		FROM stock_balances WHERE warehouse_id = $1
		ORDER BY item_id`
	rows, err := r.q.Query(context.Background(), query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list stock balances: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockBalance
	for rows.Next() {
		var b entity.StockBalance
		if err := rows.Scan(
			&b.ItemID, &b.WarehouseID, &b.QuantityOnHand, &b.QuantityReserved,
			&b.AverageCost, &b.LastMovementAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock balance: %w", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}
