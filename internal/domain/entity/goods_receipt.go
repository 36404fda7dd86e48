package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del documento de recepción (GRN).
const (
	ReceiptStatusDraft             = "DRAFT"
	ReceiptStatusPendingInspection = "PENDING_INSPECTION"
	ReceiptStatusInspected         = "INSPECTED"
	ReceiptStatusPendingApproval   = "PENDING_APPROVAL"
	ReceiptStatusApproved          = "APPROVED"
	ReceiptStatusCompleted         = "COMPLETED" // terminal: stock ya ingresado
)

// Estado de la solicitud de aprobación externa asociada al GRN.
const (
	ApprovalNone     = "NONE"
	ApprovalPending  = "PENDING"
	ApprovalApproved = "APPROVED"
	ApprovalRejected = "REJECTED"
)

// Veredicto de calidad de una línea de recepción.
const (
	VerdictPassed  = "PASSED"  // todo aceptado
	VerdictFailed  = "FAILED"  // todo rechazado
	VerdictPartial = "PARTIAL" // aceptado y rechazado mezclados
)

// GoodsReceipt cabecera de un documento de recepción de mercancía.
// Ninguna mercancía ingresa a bodega sin aprobación: el ingreso exige
// ApprovalStatus == APPROVED, siempre.
type GoodsReceipt struct {
	ID             string
	Number         string
	OrderID        string
	SupplierID     string
	WarehouseID    string
	Status         string
	ApprovalStatus string
	ReceiptDate    time.Time
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	CreatedBy      string
}

// GoodsReceiptLine línea de recepción. AcceptedQty/RejectedQty y Verdict
// los escribe la inspección de calidad; hasta entonces Verdict queda vacío.
type GoodsReceiptLine struct {
	ID          string
	ReceiptID   string
	OrderLineID string
	LineNo      int
	ItemID      string
	ReceivedQty decimal.Decimal
	AcceptedQty decimal.Decimal
	RejectedQty decimal.Decimal
	UnitCost    decimal.Decimal
	Verdict     string // vacío hasta inspeccionar; luego PASSED | FAILED | PARTIAL
}

// Inspected indica si la línea ya tiene veredicto de calidad.
func (l *GoodsReceiptLine) Inspected() bool {
	return l.Verdict != ""
}

// DeriveVerdict calcula el veredicto de una línea según lo aceptado/rechazado.
func DeriveVerdict(accepted, rejected decimal.Decimal) string {
	switch {
	case rejected.LessThanOrEqual(decimal.Zero):
		return VerdictPassed
	case accepted.LessThanOrEqual(decimal.Zero):
		return VerdictFailed
	default:
		return VerdictPartial
	}
}
