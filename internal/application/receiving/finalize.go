package receiving

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// FinalizeStoreIn ingresa a bodega las cantidades recibidas de la
// recepción: un asiento IN por línea al costo unitario de la compra, y el
// documento queda COMPLETED (terminal). Lo rechazado también entra (queda
// físicamente en bodega) y sale después con el OUT de la devolución, de
// modo que el neto en libro es lo aceptado. Es el único punto del flujo de
// recepción que escribe entradas; un segundo intento falla por la tabla de
// transiciones.
func (uc *ReceiptWorkflowUseCase) FinalizeStoreIn(ctx context.Context, actorID, receiptID string) (*dto.ReceiptResponse, error) {
	if receiptID == "" {
		return nil, domain.ErrInvalidInput
	}
	var resp *dto.ReceiptResponse
	err := uc.txRunner.RunReceiving(ctx, func(
		grnRepo repository.GoodsReceiptRepository,
		_ repository.PurchaseOrderRepository,
		_ repository.QualityInspectionRepository,
		_ repository.PurchaseReturnRepository,
		movRepo repository.StockMovementRepository,
		balanceRepo repository.StockBalanceRepository,
		_ repository.DocumentSeriesRepository,
	) error {
		receipt, lines, err := grnRepo.GetForUpdate(receiptID)
		if err != nil {
			return err
		}
		if receipt == nil {
			return fmt.Errorf("%w: recepción %s", domain.ErrNotFound, receiptID)
		}
		// La aprobación es condición incondicional del ingreso a bodega
		if receipt.ApprovalStatus != entity.ApprovalApproved {
			return fmt.Errorf("%w: la recepción %s no tiene aprobación (estado de aprobación %s)",
				domain.ErrConflict, receipt.Number, receipt.ApprovalStatus)
		}
		if err := receipt.TransitionTo(entity.ReceiptStatusCompleted); err != nil {
			return err
		}

		now := time.Now()
		for _, l := range lines {
			if !l.Inspected() {
				return fmt.Errorf("%w: línea %d de la recepción %s",
					domain.ErrMissingVerdict, l.LineNo, receipt.Number)
			}
			if !l.ReceivedQty.GreaterThan(decimal.Zero) {
				continue
			}
			if _, err := uc.ledger.PostMovementInTx(movRepo, balanceRepo, inventory.MovementInput{
				ItemID:          l.ItemID,
				WarehouseID:     receipt.WarehouseID,
				Quantity:        l.ReceivedQty,
				Direction:       entity.DirectionIn,
				MovementType:    entity.MovementTypeGRN,
				ReferenceType:   refTypeGoodsReceipt,
				ReferenceID:     receipt.ID,
				ReferenceNumber: receipt.Number,
				UnitCost:        l.UnitCost,
				Date:            now,
				ActorID:         actorID,
			}); err != nil {
				return err
			}
		}

		receipt.UpdatedAt = now
		if err := grnRepo.UpdateHeader(receipt); err != nil {
			return err
		}
		resp = toReceiptResponse(receipt, lines)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
