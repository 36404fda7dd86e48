package receiving

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye los
// repositorios del flujo de recepción más los del libro de inventario.
type TxRunner interface {
	RunReceiving(ctx context.Context, fn func(
		grnRepo repository.GoodsReceiptRepository,
		poRepo repository.PurchaseOrderRepository,
		inspRepo repository.QualityInspectionRepository,
		retRepo repository.PurchaseReturnRepository,
		movRepo repository.StockMovementRepository,
		balanceRepo repository.StockBalanceRepository,
		seriesRepo repository.DocumentSeriesRepository,
	) error) error
}

// StockLedger integra el flujo de recepción con el libro de inventario.
// PostMovementInTx registra el asiento con los repositorios del caller
// (misma transacción); si retorna error el caller hace rollback.
type StockLedger interface {
	PostMovementInTx(
		movRepo repository.StockMovementRepository,
		balanceRepo repository.StockBalanceRepository,
		input inventory.MovementInput,
	) (*entity.StockMovement, error)
}

// ApprovalRequest solicitud enviada al servicio externo de aprobaciones.
// Amount es la cantidad total recibida del documento, no un valor monetario.
type ApprovalRequest struct {
	WorkflowType  string
	EntityType    string
	EntityID      string
	DisplayNumber string
	RequesterID   string
	Amount        decimal.Decimal
}

// ApprovalService puerto hacia el motor de aprobaciones (servicio externo).
// La decisión llega después por el callback HTTP; aquí solo se abre la
// solicitud. Un error deja el submit sin efecto (rollback del caller).
type ApprovalService interface {
	InitiateApproval(ctx context.Context, req ApprovalRequest) error
}

// ReceiptDocumentData datos ya resueltos (nombres de proveedor, bodega y
// artículos) para renderizar el acta de recepción.
type ReceiptDocumentData struct {
	Number        string
	OrderNumber   string
	SupplierName  string
	SupplierTaxID string
	WarehouseName string
	ReceiptDate   string
	Status        string
	Notes         string
	Lines         []ReceiptDocumentLine
	TotalReceived decimal.Decimal
	TotalAccepted decimal.Decimal
	TotalRejected decimal.Decimal
	TotalValue    decimal.Decimal
}

// ReceiptDocumentLine línea del acta.
type ReceiptDocumentLine struct {
	LineNo      int
	SKU         string
	ItemName    string
	ReceivedQty decimal.Decimal
	AcceptedQty decimal.Decimal
	RejectedQty decimal.Decimal
	UnitCost    decimal.Decimal
	Verdict     string
}

// PDFGenerator renderiza el acta de recepción en PDF.
type PDFGenerator interface {
	GenerateReceiptPDF(data *ReceiptDocumentData) ([]byte, error)
}
