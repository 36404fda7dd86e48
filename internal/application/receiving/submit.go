package receiving

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Submit envía una recepción inspeccionada al servicio externo de
// aprobaciones. La solicitud se abre dentro de la misma transacción que
// cambia el estado: si el servicio falla, el submit queda sin efecto.
func (uc *ReceiptWorkflowUseCase) Submit(ctx context.Context, actorID, receiptID string) (*dto.ReceiptResponse, error) {
	if receiptID == "" {
		return nil, domain.ErrInvalidInput
	}
	var resp *dto.ReceiptResponse
	err := uc.txRunner.RunReceiving(ctx, func(
		grnRepo repository.GoodsReceiptRepository,
		_ repository.PurchaseOrderRepository,
		_ repository.QualityInspectionRepository,
		_ repository.PurchaseReturnRepository,
		_ repository.StockMovementRepository,
		_ repository.StockBalanceRepository,
		_ repository.DocumentSeriesRepository,
	) error {
		receipt, lines, err := grnRepo.GetForUpdate(receiptID)
		if err != nil {
			return err
		}
		if receipt == nil {
			return fmt.Errorf("%w: recepción %s", domain.ErrNotFound, receiptID)
		}
		if err := receipt.TransitionTo(entity.ReceiptStatusPendingApproval); err != nil {
			return err
		}
		if err := receipt.TransitionApproval(entity.ApprovalPending); err != nil {
			return err
		}
		receipt.UpdatedAt = time.Now()
		if err := grnRepo.UpdateHeader(receipt); err != nil {
			return err
		}
		// Abrir la solicitud dentro de la tx: si falla hay rollback completo
		if err := uc.approvalSvc.InitiateApproval(ctx, ApprovalRequest{
			WorkflowType:  "goods_receipt_approval",
			EntityType:    refTypeGoodsReceipt,
			EntityID:      receipt.ID,
			DisplayNumber: receipt.Number,
			RequesterID:   actorID,
			Amount:        receivedQuantity(lines),
		}); err != nil {
			return fmt.Errorf("servicio de aprobaciones: %w", err)
		}
		resp = toReceiptResponse(receipt, lines)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// UpdateApprovalStatus procesa el callback del servicio de aprobaciones.
// APPROVED deja la recepción lista para el ingreso a bodega; REJECTED la
// regresa a INSPECTED, desde donde puede reenviarse.
func (uc *ReceiptWorkflowUseCase) UpdateApprovalStatus(ctx context.Context, receiptID string, in dto.ApprovalCallbackRequest) (*dto.ReceiptResponse, error) {
	if receiptID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Decision != entity.ApprovalApproved && in.Decision != entity.ApprovalRejected {
		return nil, fmt.Errorf("%w: decisión %q", domain.ErrInvalidInput, in.Decision)
	}
	var resp *dto.ReceiptResponse
	err := uc.txRunner.RunReceiving(ctx, func(
		grnRepo repository.GoodsReceiptRepository,
		_ repository.PurchaseOrderRepository,
		_ repository.QualityInspectionRepository,
		_ repository.PurchaseReturnRepository,
		_ repository.StockMovementRepository,
		_ repository.StockBalanceRepository,
		_ repository.DocumentSeriesRepository,
	) error {
		receipt, lines, err := grnRepo.GetForUpdate(receiptID)
		if err != nil {
			return err
		}
		if receipt == nil {
			return fmt.Errorf("%w: recepción %s", domain.ErrNotFound, receiptID)
		}
		if err := receipt.TransitionApproval(in.Decision); err != nil {
			return err
		}
		switch in.Decision {
		case entity.ApprovalApproved:
			if err := receipt.TransitionTo(entity.ReceiptStatusApproved); err != nil {
				return err
			}
		case entity.ApprovalRejected:
			if err := receipt.TransitionTo(entity.ReceiptStatusInspected); err != nil {
				return err
			}
		}
		receipt.UpdatedAt = time.Now()
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
