package receiving

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ApproveReturn aprueba una devolución en borrador y registra la salida de
// stock: un asiento OUT por línea al precio de la devolución. Exige que la
// recepción origen ya esté COMPLETED, de modo que la salida nunca exceda
// lo efectivamente ingresado.
func (uc *ReceiptWorkflowUseCase) ApproveReturn(ctx context.Context, actorID, returnID string) (*dto.ReturnResponse, error) {
	if returnID == "" {
		return nil, domain.ErrInvalidInput
	}
	var resp *dto.ReturnResponse
	err := uc.txRunner.RunReceiving(ctx, func(
		grnRepo repository.GoodsReceiptRepository,
		_ repository.PurchaseOrderRepository,
		_ repository.QualityInspectionRepository,
		retRepo repository.PurchaseReturnRepository,
		movRepo repository.StockMovementRepository,
		balanceRepo repository.StockBalanceRepository,
		_ repository.DocumentSeriesRepository,
	) error {
		ret, lines, err := retRepo.GetForUpdate(returnID)
		if err != nil {
			return err
		}
		if ret == nil {
			return fmt.Errorf("%w: devolución %s", domain.ErrNotFound, returnID)
		}
		receipt, _, err := grnRepo.GetByID(ret.ReceiptID)
		if err != nil {
			return err
		}
		if receipt == nil {
			return fmt.Errorf("%w: recepción %s", domain.ErrNotFound, ret.ReceiptID)
		}
		if receipt.Status != entity.ReceiptStatusCompleted {
			return fmt.Errorf("%w: la recepción %s aún no ingresó a bodega",
				domain.ErrConflict, receipt.Number)
		}
		if err := ret.TransitionTo(entity.ReturnStatusApproved); err != nil {
			return err
		}

		now := time.Now()
		for _, l := range lines {
			if _, err := uc.ledger.PostMovementInTx(movRepo, balanceRepo, inventory.MovementInput{
				ItemID:          l.ItemID,
				WarehouseID:     ret.WarehouseID,
				Quantity:        l.Quantity,
				Direction:       entity.DirectionOut,
				MovementType:    entity.MovementTypeReturn,
				ReferenceType:   refTypePurchaseReturn,
				ReferenceID:     ret.ID,
				ReferenceNumber: ret.Number,
				UnitCost:        l.UnitPrice,
				Date:            now,
				ActorID:         actorID,
			}); err != nil {
				return err
			}
		}

		ret.UpdatedAt = now
		if err := retRepo.UpdateHeader(ret); err != nil {
			return err
		}
		resp = toReturnResponse(ret, lines)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
