package entity

// Unit unidad de medida de un artículo (maestro, solo lectura).
type Unit struct {
	ID     string
	Code   string // UND, KG, LT...
	Name   string
	Active bool
}
