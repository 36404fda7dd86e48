package entity

import "time"

// Supplier proveedor (maestro, solo lectura).
type Supplier struct {
	ID        string
	TaxID     string // NIT
	Name      string
	Email     string
	Phone     string
	Active    bool
	CreatedAt time.Time
}
