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

// CreateReceipt crea una recepción contra una orden de compra y reconcilia
// los acumulados recibidos de la orden en la misma transacción. El
// acumulado de una línea nunca puede superar lo ordenado.
func (uc *ReceiptWorkflowUseCase) CreateReceipt(ctx context.Context, actorID string, in dto.CreateReceiptRequest) (*dto.ReceiptResponse, error) {
	if in.OrderID == "" || in.WarehouseID == "" || len(in.Lines) == 0 {
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
	receiptDate, err := parseDate(in.ReceiptDate)
	if err != nil {
		return nil, err
	}

	// Validar bodega (solo lectura, fuera de la tx)
	wh, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil || wh == nil {
		return nil, fmt.Errorf("%w: bodega %s", domain.ErrNotFound, in.WarehouseID)
	}

	var resp *dto.ReceiptResponse
	err = uc.txRunner.RunReceiving(ctx, func(
		grnRepo repository.GoodsReceiptRepository,
		poRepo repository.PurchaseOrderRepository,
		_ repository.QualityInspectionRepository,
		_ repository.PurchaseReturnRepository,
		_ repository.StockMovementRepository,
		_ repository.StockBalanceRepository,
		seriesRepo repository.DocumentSeriesRepository,
	) error {
		// Bloquea la cabecera de la orden (SELECT FOR UPDATE)
		order, orderLines, err := poRepo.GetForUpdate(in.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("%w: orden %s", domain.ErrNotFound, in.OrderID)
		}
		if order.Status == entity.POStatusClosed {
			return fmt.Errorf("%w: la orden %s ya está cerrada", domain.ErrConflict, order.Number)
		}
		linesByID := make(map[string]*entity.PurchaseOrderLine, len(orderLines))
		for _, ol := range orderLines {
			linesByID[ol.ID] = ol
		}

		now := time.Now()
		receiptID := uuid.New().String()
		grnLines := make([]*entity.GoodsReceiptLine, 0, len(in.Lines))
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
			ol.Status = entity.DeriveLineStatus(ol.OrderedQty, ol.ReceivedQty)
			if err := poRepo.UpdateLine(ol); err != nil {
				return err
			}
			grnLines = append(grnLines, &entity.GoodsReceiptLine{
				ID:          uuid.New().String(),
				ReceiptID:   receiptID,
				OrderLineID: ol.ID,
				LineNo:      i + 1,
				ItemID:      ol.ItemID,
				ReceivedQty: l.ReceivedQty,
				AcceptedQty: decimal.Zero,
				RejectedQty: decimal.Zero,
				UnitCost:    ol.UnitCost,
			})
		}
		if err := poRepo.UpdateStatus(order.ID, entity.DeriveOrderStatus(orderLines)); err != nil {
			return err
		}

		number, err := seriesRepo.NextNumber(seriesGoodsReceipt, prefixGoodsReceipt, receiptDate)
		if err != nil {
			return err
		}
		receipt := &entity.GoodsReceipt{
			ID:             receiptID,
			Number:         number,
			OrderID:        order.ID,
			SupplierID:     order.SupplierID,
			WarehouseID:    in.WarehouseID,
			Status:         entity.ReceiptStatusDraft,
			ApprovalStatus: entity.ApprovalNone,
			ReceiptDate:    receiptDate,
			Notes:          in.Notes,
			CreatedAt:      now,
			UpdatedAt:      now,
			CreatedBy:      actorID,
		}
		if err := grnRepo.Create(receipt, grnLines); err != nil {
			return err
		}
		resp = toReceiptResponse(receipt, grnLines)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
