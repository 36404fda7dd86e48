package entity

import "time"

// Warehouse representa una bodega física o lógica (maestro, solo lectura).
type Warehouse struct {
	ID        string
	Code      string
	Name      string
	Address   string
	Active    bool
	CreatedAt time.Time
}
