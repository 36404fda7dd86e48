package dto

import "github.com/shopspring/decimal"

// ItemResponse artículo del maestro (solo lectura).
type ItemResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	UnitID       string          `json:"unit_id"`
	UnitCode     string          `json:"unit_code,omitempty"`
	StandardCost decimal.Decimal `json:"standard_cost"`
	Active       bool            `json:"active"`
}

// WarehouseResponse bodega del maestro (solo lectura).
type WarehouseResponse struct {
	ID      string `json:"id"`
	Code    string `json:"code"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Active  bool   `json:"active"`
}
