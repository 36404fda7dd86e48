package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Resultado de un parámetro de inspección.
const (
	InspectionResultPass = "PASS"
	InspectionResultFail = "FAIL"
)

// QualityInspection cabecera de una inspección de calidad sobre una línea
// de recepción. Se crea una sola vez por (recepción, artículo).
type QualityInspection struct {
	ID            string
	ReceiptID     string
	ReceiptLineID string
	ItemID        string
	InspectorID   string
	SampleSize    decimal.Decimal
	AcceptedQty   decimal.Decimal
	RejectedQty   decimal.Decimal
	Verdict       string
	Notes         string
	InspectedAt   time.Time
	CreatedAt     time.Time
}

// QualityInspectionResult resultado de un parámetro individual de la
// inspección (peso, humedad, empaque...).
type QualityInspectionResult struct {
	ID            string
	InspectionID  string
	ParameterName string
	Expected      string
	Observed      string
	Result        string // PASS | FAIL
}
