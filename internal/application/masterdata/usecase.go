// Package masterdata expone lecturas del maestro de artículos y bodegas.
// El CRUD del maestro vive en otro servicio; aquí solo se consulta.
package masterdata

import (
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// MasterDataUseCase lecturas del maestro.
type MasterDataUseCase struct {
	itemRepo      repository.ItemRepository
	warehouseRepo repository.WarehouseRepository
	unitRepo      repository.UnitRepository
}

// NewMasterDataUseCase construye el caso de uso.
func NewMasterDataUseCase(
	itemRepo repository.ItemRepository,
	warehouseRepo repository.WarehouseRepository,
	unitRepo repository.UnitRepository,
) *MasterDataUseCase {
	return &MasterDataUseCase{itemRepo: itemRepo, warehouseRepo: warehouseRepo, unitRepo: unitRepo}
}

// GetItem devuelve un artículo por ID con su unidad de medida resuelta.
func (uc *MasterDataUseCase) GetItem(id string) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	resp := toItemResponse(item)
	if item.UnitID != "" {
		unit, err := uc.unitRepo.GetByID(item.UnitID)
		if err != nil {
			return nil, err
		}
		if unit != nil {
			resp.UnitCode = unit.Code
		}
	}
	return resp, nil
}

// ListItems devuelve los artículos del maestro (limit 0 usa el default).
func (uc *MasterDataUseCase) ListItems(limit int) ([]*dto.ItemResponse, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > 500 {
		limit = 500
	}
	items, err := uc.itemRepo.List(limit)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.ItemResponse, 0, len(items))
	for _, it := range items {
		result = append(result, toItemResponse(it))
	}
	return result, nil
}

// GetWarehouse devuelve una bodega por ID.
func (uc *MasterDataUseCase) GetWarehouse(id string) (*dto.WarehouseResponse, error) {
	wh, err := uc.warehouseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	return toWarehouseResponse(wh), nil
}

// ListWarehouses devuelve todas las bodegas.
func (uc *MasterDataUseCase) ListWarehouses() ([]*dto.WarehouseResponse, error) {
	whs, err := uc.warehouseRepo.List()
	if err != nil {
		return nil, err
	}
	result := make([]*dto.WarehouseResponse, 0, len(whs))
	for _, wh := range whs {
		result = append(result, toWarehouseResponse(wh))
	}
	return result, nil
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:           it.ID,
		SKU:          it.SKU,
		Name:         it.Name,
		UnitID:       it.UnitID,
		StandardCost: it.StandardCost,
		Active:       it.Active,
	}
}

func toWarehouseResponse(wh *entity.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{
		ID:      wh.ID,
		Code:    wh.Code,
		Name:    wh.Name,
		Address: wh.Address,
		Active:  wh.Active,
	}
}
