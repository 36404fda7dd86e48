package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// Puertos de solo lectura del maestro. El CRUD vive en otro servicio; una
// referencia inexistente aquí es un error fatal de la operación.

type ItemRepository interface {
	GetByID(id string) (*entity.Item, error)
	List(limit int) ([]*entity.Item, error)
}

type WarehouseRepository interface {
	GetByID(id string) (*entity.Warehouse, error)
	List() ([]*entity.Warehouse, error)
}

type SupplierRepository interface {
	GetByID(id string) (*entity.Supplier, error)
}

type UnitRepository interface {
	GetByID(id string) (*entity.Unit, error)
}
