package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ajuste por conteo físico.
const (
	AdjustmentStatusDraft    = "DRAFT"
	AdjustmentStatusApproved = "APPROVED" // terminal: varianzas aplicadas al libro
)

// StockAdjustment documento de conteo físico de una bodega. Al crearlo se
// toma un snapshot de todos los saldos de la bodega; las cantidades
// contadas se capturan después y la aprobación aplica las varianzas.
type StockAdjustment struct {
	ID          string
	Number      string
	WarehouseID string
	Status      string
	CountDate   time.Time
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CreatedBy   string
}

// StockAdjustmentLine línea de conteo. SystemQty es el saldo al momento del
// snapshot; CountedQty lo captura el bodeguero; Variance = counted - system.
type StockAdjustmentLine struct {
	ID            string
	AdjustmentID  string
	LineNo        int
	ItemID        string
	SystemQty     decimal.Decimal
	CountedQty    decimal.Decimal
	Counted       bool // false hasta que se capture la cantidad física
	Variance      decimal.Decimal
	UnitCost      decimal.Decimal
	VarianceValue decimal.Decimal
}
