package receiving

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

// ReceiptPDF arma los datos del acta de recepción (nombres de proveedor,
// bodega y artículos resueltos contra el maestro) y la renderiza en PDF.
func (uc *ReceiptWorkflowUseCase) ReceiptPDF(receiptID string) ([]byte, error) {
	if receiptID == "" {
		return nil, domain.ErrInvalidInput
	}
	receipt, lines, err := uc.grnRepo.GetByID(receiptID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, fmt.Errorf("%w: recepción %s", domain.ErrNotFound, receiptID)
	}

	data := &ReceiptDocumentData{
		Number:      receipt.Number,
		ReceiptDate: receipt.ReceiptDate.Format("2006-01-02"),
		Status:      receipt.Status,
		Notes:       receipt.Notes,
	}
	if order, err := uc.poRepo.GetByID(receipt.OrderID); err == nil && order != nil {
		data.OrderNumber = order.Number
	}
	if supplier, err := uc.supplierRepo.GetByID(receipt.SupplierID); err == nil && supplier != nil {
		data.SupplierName = supplier.Name
		data.SupplierTaxID = supplier.TaxID
	}
	if wh, err := uc.warehouseRepo.GetByID(receipt.WarehouseID); err == nil && wh != nil {
		data.WarehouseName = wh.Name
	}

	totalReceived, totalAccepted, totalRejected, totalValue := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	for _, l := range lines {
		sku, name := l.ItemID, l.ItemID
		if item, err := uc.itemRepo.GetByID(l.ItemID); err == nil && item != nil {
			sku, name = item.SKU, item.Name
		}
		data.Lines = append(data.Lines, ReceiptDocumentLine{
			LineNo:      l.LineNo,
			SKU:         sku,
			ItemName:    name,
			ReceivedQty: l.ReceivedQty,
			AcceptedQty: l.AcceptedQty,
			RejectedQty: l.RejectedQty,
			UnitCost:    l.UnitCost,
			Verdict:     l.Verdict,
		})
		totalReceived = totalReceived.Add(l.ReceivedQty)
		totalAccepted = totalAccepted.Add(l.AcceptedQty)
		totalRejected = totalRejected.Add(l.RejectedQty)
		totalValue = totalValue.Add(l.ReceivedQty.Mul(l.UnitCost))
	}
	data.TotalReceived = totalReceived
	data.TotalAccepted = totalAccepted
	data.TotalRejected = totalRejected
	data.TotalValue = totalValue

	return uc.pdfGen.GenerateReceiptPDF(data)
}
