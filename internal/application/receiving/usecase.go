package receiving

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Tipos de referencia y series de numeración del flujo de recepción.
const (
	refTypeGoodsReceipt   = "goods_receipt"
	refTypePurchaseReturn = "purchase_return"

	seriesGoodsReceipt   = "goods_receipt"
	seriesPurchaseReturn = "purchase_return"
	prefixGoodsReceipt   = "GRN"
	prefixPurchaseReturn = "RET"
)

// Config parámetros del flujo de recepción.
type Config struct {
	// ReturnTaxPct porcentaje de impuesto aplicado a las devoluciones generadas.
	ReturnTaxPct decimal.Decimal
}

// ReceiptWorkflowUseCase orquesta el ciclo de vida del documento de
// recepción: creación contra la orden de compra, inspección de calidad,
// aprobación externa, ingreso a bodega y devoluciones por rechazo.
type ReceiptWorkflowUseCase struct {
	txRunner      TxRunner
	ledger        StockLedger
	approvalSvc   ApprovalService
	grnRepo       repository.GoodsReceiptRepository
	retRepo       repository.PurchaseReturnRepository
	inspRepo      repository.QualityInspectionRepository
	poRepo        repository.PurchaseOrderRepository
	supplierRepo  repository.SupplierRepository
	warehouseRepo repository.WarehouseRepository
	itemRepo      repository.ItemRepository
	pdfGen        PDFGenerator
	cfg           Config
}

// NewReceiptWorkflowUseCase construye el caso de uso.
func NewReceiptWorkflowUseCase(
	txRunner TxRunner,
	ledger StockLedger,
	approvalSvc ApprovalService,
	grnRepo repository.GoodsReceiptRepository,
	retRepo repository.PurchaseReturnRepository,
	inspRepo repository.QualityInspectionRepository,
	poRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	warehouseRepo repository.WarehouseRepository,
	itemRepo repository.ItemRepository,
	pdfGen PDFGenerator,
	cfg Config,
) *ReceiptWorkflowUseCase {
	return &ReceiptWorkflowUseCase{
		txRunner:      txRunner,
		ledger:        ledger,
		approvalSvc:   approvalSvc,
		grnRepo:       grnRepo,
		retRepo:       retRepo,
		inspRepo:      inspRepo,
		poRepo:        poRepo,
		supplierRepo:  supplierRepo,
		warehouseRepo: warehouseRepo,
		itemRepo:      itemRepo,
		pdfGen:        pdfGen,
		cfg:           cfg,
	}
}

// GetReceipt devuelve una recepción con sus líneas.
func (uc *ReceiptWorkflowUseCase) GetReceipt(id string) (*dto.ReceiptResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	receipt, lines, err := uc.grnRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, domain.ErrNotFound
	}
	return toReceiptResponse(receipt, lines), nil
}

// ListReceipts lista recepciones, opcionalmente filtradas por estado.
func (uc *ReceiptWorkflowUseCase) ListReceipts(status string, limit int) ([]*dto.ReceiptResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	receipts, err := uc.grnRepo.List(status, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ReceiptResponse, 0, len(receipts))
	for _, r := range receipts {
		out = append(out, toReceiptResponse(r, nil))
	}
	return out, nil
}

// GetReturn devuelve una devolución con sus líneas.
func (uc *ReceiptWorkflowUseCase) GetReturn(id string) (*dto.ReturnResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	ret, lines, err := uc.retRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, domain.ErrNotFound
	}
	return toReturnResponse(ret, lines), nil
}

// ListReturnsByReceipt lista las devoluciones generadas por una recepción.
func (uc *ReceiptWorkflowUseCase) ListReturnsByReceipt(receiptID string) ([]*dto.ReturnResponse, error) {
	if receiptID == "" {
		return nil, domain.ErrInvalidInput
	}
	rets, err := uc.retRepo.ListByReceipt(receiptID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ReturnResponse, 0, len(rets))
	for _, r := range rets {
		out = append(out, toReturnResponse(r, nil))
	}
	return out, nil
}

// parseDate acepta YYYY-MM-DD; vacío devuelve la fecha actual.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	return t, nil
}

// receivedQuantity cantidad total recibida de la recepción; es la clave de
// monto de la solicitud de aprobación.
func receivedQuantity(lines []*entity.GoodsReceiptLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.ReceivedQty)
	}
	return total
}

func toReceiptResponse(r *entity.GoodsReceipt, lines []*entity.GoodsReceiptLine) *dto.ReceiptResponse {
	resp := &dto.ReceiptResponse{
		ID:             r.ID,
		Number:         r.Number,
		OrderID:        r.OrderID,
		SupplierID:     r.SupplierID,
		WarehouseID:    r.WarehouseID,
		Status:         r.Status,
		ApprovalStatus: r.ApprovalStatus,
		ReceiptDate:    r.ReceiptDate.Format("2006-01-02"),
		Notes:          r.Notes,
		Lines:          []dto.ReceiptLineResponse{},
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.ReceiptLineResponse{
			ID:          l.ID,
			OrderLineID: l.OrderLineID,
			LineNo:      l.LineNo,
			ItemID:      l.ItemID,
			ReceivedQty: l.ReceivedQty,
			AcceptedQty: l.AcceptedQty,
			RejectedQty: l.RejectedQty,
			UnitCost:    l.UnitCost,
			Verdict:     l.Verdict,
		})
	}
	return resp
}

func toReturnResponse(r *entity.PurchaseReturn, lines []*entity.PurchaseReturnLine) *dto.ReturnResponse {
	resp := &dto.ReturnResponse{
		ID:         r.ID,
		Number:     r.Number,
		ReceiptID:  r.ReceiptID,
		SupplierID: r.SupplierID,
		Status:     r.Status,
		NetTotal:   r.NetTotal,
		TaxTotal:   r.TaxTotal,
		GrandTotal: r.GrandTotal,
		Reason:     r.Reason,
		Lines:      []dto.ReturnLineResponse{},
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.ReturnLineResponse{
			ID:        l.ID,
			ItemID:    l.ItemID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			TaxPct:    l.TaxPct,
			LineTotal: l.LineTotal,
		})
	}
	return resp
}
