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

// RecordInspection registra la inspección de calidad de una línea de la
// recepción. Cada línea se inspecciona exactamente una vez; el veredicto
// (PASSED/FAILED/PARTIAL) se deriva de lo aceptado y rechazado. Cuando la
// última línea recibe veredicto el documento pasa a INSPECTED y, si hubo
// rechazos, se genera la devolución a proveedor en borrador (una sola por
// recepción).
func (uc *ReceiptWorkflowUseCase) RecordInspection(ctx context.Context, inspectorID, receiptID string, in dto.InspectionRequest) (*dto.ReceiptResponse, error) {
	if receiptID == "" || in.ReceiptLineID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.AcceptedQty.LessThan(decimal.Zero) || in.RejectedQty.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	for _, r := range in.Results {
		if r.ParameterName == "" {
			return nil, domain.ErrInvalidInput
		}
		if r.Result != entity.InspectionResultPass && r.Result != entity.InspectionResultFail {
			return nil, fmt.Errorf("%w: resultado de parámetro %q", domain.ErrInvalidInput, r.Result)
		}
	}

	var resp *dto.ReceiptResponse
	err := uc.txRunner.RunReceiving(ctx, func(
		grnRepo repository.GoodsReceiptRepository,
		_ repository.PurchaseOrderRepository,
		inspRepo repository.QualityInspectionRepository,
		retRepo repository.PurchaseReturnRepository,
		_ repository.StockMovementRepository,
		_ repository.StockBalanceRepository,
		seriesRepo repository.DocumentSeriesRepository,
	) error {
		receipt, lines, err := grnRepo.GetForUpdate(receiptID)
		if err != nil {
			return err
		}
		if receipt == nil {
			return fmt.Errorf("%w: recepción %s", domain.ErrNotFound, receiptID)
		}
		// La primera inspección mueve el borrador a pendiente de inspección
		if receipt.Status == entity.ReceiptStatusDraft {
			if err := receipt.TransitionTo(entity.ReceiptStatusPendingInspection); err != nil {
				return err
			}
		}
		if receipt.Status != entity.ReceiptStatusPendingInspection {
			return fmt.Errorf("%w: la recepción %s no admite inspección en estado %s",
				domain.ErrConflict, receipt.Number, receipt.Status)
		}

		var line *entity.GoodsReceiptLine
		for _, l := range lines {
			if l.ID == in.ReceiptLineID {
				line = l
				break
			}
		}
		if line == nil {
			return fmt.Errorf("%w: línea de recepción %s", domain.ErrNotFound, in.ReceiptLineID)
		}
		if line.Inspected() {
			return fmt.Errorf("%w: la línea %d ya fue inspeccionada", domain.ErrDuplicate, line.LineNo)
		}
		exists, err := inspRepo.ExistsForLine(line.ID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: la línea %d ya fue inspeccionada", domain.ErrDuplicate, line.LineNo)
		}
		// Aceptado + rechazado debe cubrir exactamente lo recibido
		if !in.AcceptedQty.Add(in.RejectedQty).Equal(line.ReceivedQty) {
			return fmt.Errorf("%w: aceptado %s + rechazado %s != recibido %s",
				domain.ErrInvalidInput, in.AcceptedQty.String(), in.RejectedQty.String(),
				line.ReceivedQty.String())
		}

		now := time.Now()
		verdict := entity.DeriveVerdict(in.AcceptedQty, in.RejectedQty)
		inspection := &entity.QualityInspection{
			ID:            uuid.New().String(),
			ReceiptID:     receipt.ID,
			ReceiptLineID: line.ID,
			ItemID:        line.ItemID,
			InspectorID:   inspectorID,
			SampleSize:    in.SampleSize,
			AcceptedQty:   in.AcceptedQty,
			RejectedQty:   in.RejectedQty,
			Verdict:       verdict,
			Notes:         in.Notes,
			InspectedAt:   now,
			CreatedAt:     now,
		}
		results := make([]*entity.QualityInspectionResult, 0, len(in.Results))
		for _, r := range in.Results {
			results = append(results, &entity.QualityInspectionResult{
				ID:            uuid.New().String(),
				InspectionID:  inspection.ID,
				ParameterName: r.ParameterName,
				Expected:      r.Expected,
				Observed:      r.Observed,
				Result:        r.Result,
			})
		}
		if err := inspRepo.Create(inspection, results); err != nil {
			return err
		}

		line.AcceptedQty = in.AcceptedQty
		line.RejectedQty = in.RejectedQty
		line.Verdict = verdict
		if err := grnRepo.UpdateLine(line); err != nil {
			return err
		}

		// ¿Todas las líneas con veredicto?
		allInspected := true
		for _, l := range lines {
			if !l.Inspected() {
				allInspected = false
				break
			}
		}
		if allInspected {
			if err := receipt.TransitionTo(entity.ReceiptStatusInspected); err != nil {
				return err
			}
			if err := uc.generateReturnIfRejected(retRepo, seriesRepo, receipt, lines, now); err != nil {
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

// generateReturnIfRejected crea la devolución en borrador espejando las
// líneas con cantidad rechazada (precio = costo unitario de la compra,
// impuesto desde configuración). Si la recepción ya tiene devolución no se
// genera otra.
func (uc *ReceiptWorkflowUseCase) generateReturnIfRejected(
	retRepo repository.PurchaseReturnRepository,
	seriesRepo repository.DocumentSeriesRepository,
	receipt *entity.GoodsReceipt,
	lines []*entity.GoodsReceiptLine,
	now time.Time,
) error {
	rejected := make([]*entity.GoodsReceiptLine, 0)
	for _, l := range lines {
		if l.RejectedQty.GreaterThan(decimal.Zero) {
			rejected = append(rejected, l)
		}
	}
	if len(rejected) == 0 {
		return nil
	}
	existing, err := retRepo.ListByReceipt(receipt.ID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	number, err := seriesRepo.NextNumber(seriesPurchaseReturn, prefixPurchaseReturn, now)
	if err != nil {
		return err
	}
	taxPct := uc.cfg.ReturnTaxPct
	ret := &entity.PurchaseReturn{
		ID:          uuid.New().String(),
		Number:      number,
		ReceiptID:   receipt.ID,
		SupplierID:  receipt.SupplierID,
		WarehouseID: receipt.WarehouseID,
		Status:      entity.ReturnStatusDraft,
		Reason:      fmt.Sprintf("rechazo de calidad en recepción %s", receipt.Number),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	retLines := make([]*entity.PurchaseReturnLine, 0, len(rejected))
	net := decimal.Zero
	for i, l := range rejected {
		lineNet := l.RejectedQty.Mul(l.UnitCost)
		net = net.Add(lineNet)
		retLines = append(retLines, &entity.PurchaseReturnLine{
			ID:            uuid.New().String(),
			ReturnID:      ret.ID,
			ReceiptLineID: l.ID,
			LineNo:        i + 1,
			ItemID:        l.ItemID,
			Quantity:      l.RejectedQty,
			UnitPrice:     l.UnitCost,
			TaxPct:        taxPct,
			LineTotal:     lineNet,
		})
	}
	ret.NetTotal = net
	ret.TaxTotal = net.Mul(taxPct).Div(decimal.NewFromInt(100))
	ret.GrandTotal = ret.NetTotal.Add(ret.TaxTotal)
	return retRepo.Create(ret, retLines)
}
