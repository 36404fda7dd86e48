package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/masterdata"
)

// MasterDataHandler lecturas del maestro de artículos y bodegas (protegido).
type MasterDataHandler struct {
	uc *masterdata.MasterDataUseCase
}

// NewMasterDataHandler construye el handler.
func NewMasterDataHandler(uc *masterdata.MasterDataUseCase) *MasterDataHandler {
	return &MasterDataHandler{uc: uc}
}

// ListItems godoc
// @Summary      Listar artículos del maestro
// @Tags         masterdata
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de artículos (default 100)"
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/items [get]
func (h *MasterDataHandler) ListItems(c *fiber.Ctx) error {
	items, err := h.uc.ListItems(c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// GetItem godoc
// @Summary      Detalle de un artículo
// @Tags         masterdata
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID del artículo"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *MasterDataHandler) GetItem(c *fiber.Ctx) error {
	item, err := h.uc.GetItem(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// ListWarehouses godoc
// @Summary      Listar bodegas
// @Tags         masterdata
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.WarehouseResponse
// @Router       /api/warehouses [get]
func (h *MasterDataHandler) ListWarehouses(c *fiber.Ctx) error {
	whs, err := h.uc.ListWarehouses()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(whs)
}

// GetWarehouse godoc
// @Summary      Detalle de una bodega
// @Tags         masterdata
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID de la bodega"
// @Success      200  {object}  dto.WarehouseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id} [get]
func (h *MasterDataHandler) GetWarehouse(c *fiber.Ctx) error {
	wh, err := h.uc.GetWarehouse(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(wh)
}
