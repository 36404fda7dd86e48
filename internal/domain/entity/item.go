package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo del maestro (solo lectura en este servicio;
// el CRUD vive en el módulo de datos maestros).
type Item struct {
	ID           string
	SKU          string
	Name         string
	UnitID       string
	StandardCost decimal.Decimal
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
