package receiving

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// UpdateReceipt reemplaza las líneas de una recepción aún editable
// (DRAFT, PENDING_INSPECTION o INSPECTED; esta última cubre la vuelta de
// un rechazo de aprobación). La reconciliación contra la orden se revierte
// por completo y se reaplica con las líneas nuevas; los veredictos ya
// registrados se descartan y la inspección debe repetirse.
func (uc *ReceiptWorkflowUseCase) UpdateReceipt(ctx context.Context, actorID, receiptID string, in dto.UpdateReceiptRequest) (*dto.ReceiptResponse, error) {
	if receiptID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	seen := make(map[string]bool)
	for _, l := range in.Lines {
		if l.OrderLineID == "" || !l.ReceivedQty.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if seen[l.OrderLineID] {
			return nil, fmt.Errorf("%w: línea de orden repetida %s", domain.ErrInvalidInput, l.OrderLineID)
		}
		seen[l.OrderLineID] = true
	}

	var resp *dto.ReceiptResponse
	err := uc.txRunner.RunReceiving(ctx, func(
		grnRepo repository.GoodsReceiptRepository,
		poRepo repository.PurchaseOrderRepository,
		_ repository.QualityInspectionRepository,
		retRepo repository.PurchaseReturnRepository,
		_ repository.StockMovementRepository,
		_ repository.StockBalanceRepository,
		_ repository.DocumentSeriesRepository,
	) error {
		receipt, oldLines, err := grnRepo.GetForUpdate(receiptID)
		if err != nil {
			return err
		}
		if receipt == nil {
			return fmt.Errorf("%w: recepción %s", domain.ErrNotFound, receiptID)
		}
		switch receipt.Status {
		case entity.ReceiptStatusDraft, entity.ReceiptStatusPendingInspection, entity.ReceiptStatusInspected:
		default:
			return fmt.Errorf("%w: la recepción %s no es editable en estado %s",
				domain.ErrConflict, receipt.Number, receipt.Status)
		}
		// Una devolución ya generada amarra las líneas rechazadas; no se puede editar
		rets, err := retRepo.ListByReceipt(receiptID)
		if err != nil {
			return err
		}
		if len(rets) > 0 {
			return fmt.Errorf("%w: la recepción %s ya tiene devolución generada", domain.ErrConflict, receipt.Number)
		}

		order, orderLines, err := poRepo.GetForUpdate(receipt.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("%w: orden %s", domain.ErrNotFound, receipt.OrderID)
		}
		linesByID := make(map[string]*entity.PurchaseOrderLine, len(orderLines))
		for _, ol := range orderLines {
			linesByID[ol.ID] = ol
		}

		// Revertir el acumulado de las líneas anteriores
		for _, old := range oldLines {
			ol, ok := linesByID[old.OrderLineID]
			if !ok {
				return fmt.Errorf("%w: línea de orden %s", domain.ErrNotFound, old.OrderLineID)
			}
			ol.ReceivedQty = ol.ReceivedQty.Sub(old.ReceivedQty)
			if ol.ReceivedQty.LessThan(decimal.Zero) {
				return fmt.Errorf("%w: acumulado negativo al revertir la línea %d", domain.ErrConflict, old.LineNo)
			}
		}

		// Reaplicar con las líneas nuevas
		now := time.Now()
		newLines := make([]*entity.GoodsReceiptLine, 0, len(in.Lines))
		for i, l := range in.Lines {
			ol, ok := linesByID[l.OrderLineID]
			if !ok {
				return fmt.Errorf("%w: línea de orden %s", domain.ErrNotFound, l.OrderLineID)
			}
			newReceived := ol.ReceivedQty.Add(l.ReceivedQty)
			if newReceived.GreaterThan(ol.OrderedQty) {
				return fmt.Errorf("%w: línea %d de la orden %s (ordenado %s, acumulado %s)",
					domain.ErrOverReceipt, ol.LineNo, order.Number,
					ol.OrderedQty.String(), newReceived.String())
			}
			ol.ReceivedQty = newReceived
			newLines = append(newLines, &entity.GoodsReceiptLine{
				ID:          uuid.New().String(),
				ReceiptID:   receipt.ID,
				OrderLineID: ol.ID,
				LineNo:      i + 1,
				ItemID:      ol.ItemID,
				ReceivedQty: l.ReceivedQty,
				AcceptedQty: decimal.Zero,
				RejectedQty: decimal.Zero,
				UnitCost:    ol.UnitCost,
			})
		}
		for _, ol := range orderLines {
			ol.Status = entity.DeriveLineStatus(ol.OrderedQty, ol.ReceivedQty)
			if err := poRepo.UpdateLine(ol); err != nil {
				return err
			}
		}
		if err := poRepo.UpdateStatus(order.ID, entity.DeriveOrderStatus(orderLines)); err != nil {
			return err
		}

		if err := grnRepo.ReplaceLines(receipt.ID, newLines); err != nil {
			return err
		}
		if in.Notes != "" {
			receipt.Notes = in.Notes
		}
		// Las líneas nuevas no tienen veredicto: el documento vuelve a borrador
		if receipt.Status != entity.ReceiptStatusDraft {
			if err := receipt.TransitionTo(entity.ReceiptStatusDraft); err != nil {
				return err
			}
		}
		receipt.UpdatedAt = now
		if err := grnRepo.UpdateHeader(receipt); err != nil {
			return err
		}
		resp = toReceiptResponse(receipt, newLines)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
