package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del traslado entre bodegas.
const (
	TransferStatusDraft     = "DRAFT"
	TransferStatusCompleted = "COMPLETED" // terminal: OUT + IN registrados
)

// StockTransfer traslado de stock entre dos bodegas. Se ejecuta en un solo
// paso al finalizar: salida en origen y entrada en destino al costo
// promedio de origen.
type StockTransfer struct {
	ID              string
	Number          string
	FromWarehouseID string
	ToWarehouseID   string
	Status          string
	TransferDate    time.Time
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	CreatedBy       string
}

// StockTransferLine línea de traslado.
type StockTransferLine struct {
	ID         string
	TransferID string
	LineNo     int
	ItemID     string
	Quantity   decimal.Decimal
}
