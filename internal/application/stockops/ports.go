package stockops

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye los
// repositorios de traslados/ajustes más los del libro de inventario.
type TxRunner interface {
	RunStockOps(ctx context.Context, fn func(
		transferRepo repository.StockTransferRepository,
		adjRepo repository.StockAdjustmentRepository,
		movRepo repository.StockMovementRepository,
		balanceRepo repository.StockBalanceRepository,
		seriesRepo repository.DocumentSeriesRepository,
	) error) error
}

// StockLedger integra traslados y ajustes con el libro de inventario
// (asientos en la transacción del caller).
type StockLedger interface {
	PostMovementInTx(
		movRepo repository.StockMovementRepository,
		balanceRepo repository.StockBalanceRepository,
		input inventory.MovementInput,
	) (*entity.StockMovement, error)
}
