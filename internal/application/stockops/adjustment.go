package stockops

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	appinventory "github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

const (
	refTypeStockAdjustment = "stock_adjustment"
	seriesStockAdjustment  = "stock_adjustment"
	prefixStockAdjustment  = "ADJ"
)

// AdjustmentUseCase conteo físico de una bodega: la creación toma un
// snapshot de todos los saldos, la captura registra cantidades contadas y
// la aprobación aplica las varianzas al libro (terminal).
type AdjustmentUseCase struct {
	txRunner      TxRunner
	ledger        StockLedger
	adjRepo       repository.StockAdjustmentRepository
	warehouseRepo repository.WarehouseRepository
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(
	txRunner TxRunner,
	ledger StockLedger,
	adjRepo repository.StockAdjustmentRepository,
	warehouseRepo repository.WarehouseRepository,
) *AdjustmentUseCase {
	return &AdjustmentUseCase{
		txRunner:      txRunner,
		ledger:        ledger,
		adjRepo:       adjRepo,
		warehouseRepo: warehouseRepo,
	}
}

// CreateCount crea el documento de conteo con una línea por cada saldo de
// la bodega al momento del snapshot (SystemQty = en mano, costo = promedio).
// Cada línea arranca con CountedQty = SystemQty: una línea que nadie toca
// es varianza cero y no genera asiento al aprobar.
func (uc *AdjustmentUseCase) CreateCount(ctx context.Context, actorID string, in dto.CreateCountRequest) (*dto.AdjustmentResponse, error) {
	if in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	countDate, err := parseDate(in.CountDate)
	if err != nil {
		return nil, err
	}
	wh, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil || wh == nil {
		return nil, fmt.Errorf("%w: bodega %s", domain.ErrNotFound, in.WarehouseID)
	}

	var resp *dto.AdjustmentResponse
	err = uc.txRunner.RunStockOps(ctx, func(
		_ repository.StockTransferRepository,
		adjRepo repository.StockAdjustmentRepository,
		_ repository.StockMovementRepository,
		balanceRepo repository.StockBalanceRepository,
		seriesRepo repository.DocumentSeriesRepository,
	) error {
		balances, err := balanceRepo.ListByWarehouse(in.WarehouseID)
		if err != nil {
			return err
		}
		if len(balances) == 0 {
			return fmt.Errorf("%w: la bodega %s no tiene saldos que contar", domain.ErrConflict, wh.Code)
		}

		number, err := seriesRepo.NextNumber(seriesStockAdjustment, prefixStockAdjustment, countDate)
		if err != nil {
			return err
		}
		now := time.Now()
		adjustment := &entity.StockAdjustment{
			ID:          uuid.New().String(),
			Number:      number,
			WarehouseID: in.WarehouseID,
			Status:      entity.AdjustmentStatusDraft,
			CountDate:   countDate,
			Notes:       in.Notes,
			CreatedAt:   now,
			UpdatedAt:   now,
			CreatedBy:   actorID,
		}
		lines := make([]*entity.StockAdjustmentLine, 0, len(balances))
		for i, b := range balances {
			lines = append(lines, &entity.StockAdjustmentLine{
				ID:           uuid.New().String(),
				AdjustmentID: adjustment.ID,
				LineNo:       i + 1,
				ItemID:       b.ItemID,
				SystemQty:    b.QuantityOnHand,
				CountedQty:   b.QuantityOnHand,
				UnitCost:     b.AverageCost,
			})
		}
		if err := adjRepo.Create(adjustment, lines); err != nil {
			return err
		}
		resp = toAdjustmentResponse(adjustment, lines)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// UpdateCountItems registra cantidades contadas en un conteo en borrador y
// recalcula varianza y valor de varianza por línea.
func (uc *AdjustmentUseCase) UpdateCountItems(ctx context.Context, adjustmentID string, in dto.UpdateCountRequest) (*dto.AdjustmentResponse, error) {
	if adjustmentID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.ItemID == "" || it.CountedQty.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	var resp *dto.AdjustmentResponse
	err := uc.txRunner.RunStockOps(ctx, func(
		_ repository.StockTransferRepository,
		adjRepo repository.StockAdjustmentRepository,
		_ repository.StockMovementRepository,
		_ repository.StockBalanceRepository,
		_ repository.DocumentSeriesRepository,
	) error {
		adjustment, lines, err := adjRepo.GetForUpdate(adjustmentID)
		if err != nil {
			return err
		}
		if adjustment == nil {
			return fmt.Errorf("%w: conteo %s", domain.ErrNotFound, adjustmentID)
		}
		if adjustment.Status != entity.AdjustmentStatusDraft {
			return fmt.Errorf("%w: el conteo %s ya no es editable", domain.ErrConflict, adjustment.Number)
		}
		linesByItem := make(map[string]*entity.StockAdjustmentLine, len(lines))
		for _, l := range lines {
			linesByItem[l.ItemID] = l
		}
		for _, it := range in.Items {
			line, ok := linesByItem[it.ItemID]
			if !ok {
				return fmt.Errorf("%w: el artículo %s no está en el conteo", domain.ErrNotFound, it.ItemID)
			}
			line.CountedQty = it.CountedQty
			line.Counted = true
			line.Variance = it.CountedQty.Sub(line.SystemQty)
			line.VarianceValue = inventory.VarianceValue(line.Variance, line.UnitCost)
			if err := adjRepo.UpdateLine(line); err != nil {
				return err
			}
		}
		adjustment.UpdatedAt = time.Now()
		if err := adjRepo.UpdateHeader(adjustment); err != nil {
			return err
		}
		resp = toAdjustmentResponse(adjustment, lines)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ApproveCount aprueba el conteo y aplica las varianzas: un asiento por
// línea con varianza distinta de cero (IN sobrante, OUT faltante) al costo
// del snapshot. Las líneas sin contar y las contadas en cantidad exacta no
// generan asiento. Terminal.
func (uc *AdjustmentUseCase) ApproveCount(ctx context.Context, actorID, adjustmentID string) (*dto.AdjustmentResponse, error) {
	if adjustmentID == "" {
		return nil, domain.ErrInvalidInput
	}
	var resp *dto.AdjustmentResponse
	err := uc.txRunner.RunStockOps(ctx, func(
		_ repository.StockTransferRepository,
		adjRepo repository.StockAdjustmentRepository,
		movRepo repository.StockMovementRepository,
		balanceRepo repository.StockBalanceRepository,
		_ repository.DocumentSeriesRepository,
	) error {
		adjustment, lines, err := adjRepo.GetForUpdate(adjustmentID)
		if err != nil {
			return err
		}
		if adjustment == nil {
			return fmt.Errorf("%w: conteo %s", domain.ErrNotFound, adjustmentID)
		}
		if err := adjustment.TransitionTo(entity.AdjustmentStatusApproved); err != nil {
			return err
		}

		now := time.Now()
		for _, l := range lines {
			if l.Variance.IsZero() {
				continue
			}
			direction := entity.DirectionIn
			qty := l.Variance
			if l.Variance.LessThan(decimal.Zero) {
				direction = entity.DirectionOut
				qty = l.Variance.Neg()
			}
			if _, err := uc.ledger.PostMovementInTx(movRepo, balanceRepo, appinventory.MovementInput{
				ItemID:          l.ItemID,
				WarehouseID:     adjustment.WarehouseID,
				Quantity:        qty,
				Direction:       direction,
				MovementType:    entity.MovementTypeAdjustment,
				ReferenceType:   refTypeStockAdjustment,
				ReferenceID:     adjustment.ID,
				ReferenceNumber: adjustment.Number,
				UnitCost:        l.UnitCost,
				Date:            now,
				ActorID:         actorID,
			}); err != nil {
				return err
			}
		}

		adjustment.UpdatedAt = now
		if err := adjRepo.UpdateHeader(adjustment); err != nil {
			return err
		}
		resp = toAdjustmentResponse(adjustment, lines)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetAdjustment devuelve un conteo con sus líneas.
func (uc *AdjustmentUseCase) GetAdjustment(id string) (*dto.AdjustmentResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	adjustment, lines, err := uc.adjRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if adjustment == nil {
		return nil, domain.ErrNotFound
	}
	return toAdjustmentResponse(adjustment, lines), nil
}

func toAdjustmentResponse(a *entity.StockAdjustment, lines []*entity.StockAdjustmentLine) *dto.AdjustmentResponse {
	resp := &dto.AdjustmentResponse{
		ID:          a.ID,
		Number:      a.Number,
		WarehouseID: a.WarehouseID,
		Status:      a.Status,
		CountDate:   a.CountDate.Format("2006-01-02"),
		Notes:       a.Notes,
		Lines:       []dto.AdjustmentLineResponse{},
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.AdjustmentLineResponse{
			ID:            l.ID,
			LineNo:        l.LineNo,
			ItemID:        l.ItemID,
			SystemQty:     l.SystemQty,
			CountedQty:    l.CountedQty,
			Counted:       l.Counted,
			Variance:      l.Variance,
			UnitCost:      l.UnitCost,
			VarianceValue: l.VarianceValue,
		})
	}
	return resp
}
