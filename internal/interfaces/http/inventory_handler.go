package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP del libro de inventario (protegido).
type InventoryHandler struct {
	ledger *inventory.LedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger}
}

// PostMovement godoc
// @Summary      Registrar asiento manual en el libro de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PostMovementRequest  true  "item_id, warehouse_id, quantity, direction (IN|OUT), movement_type"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) PostMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.PostMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.ledger.PostMovement(c.Context(), inventory.MovementInput{
		ItemID:          in.ItemID,
		WarehouseID:     in.WarehouseID,
		Quantity:        in.Quantity,
		Direction:       in.Direction,
		MovementType:    in.MovementType,
		ReferenceType:   in.ReferenceType,
		ReferenceID:     in.ReferenceID,
		ReferenceNumber: in.ReferenceNumber,
		UnitCost:        in.UnitCost,
		ActorID:         userID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// GetBalance godoc
// @Summary      Saldo de un artículo en una bodega
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_id       query  string  true  "UUID del artículo"
// @Param        warehouse_id  query  string  true  "UUID de la bodega"
// @Success      200  {object}  dto.BalanceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/balances/one [get]
func (h *InventoryHandler) GetBalance(c *fiber.Ctx) error {
	balance, err := h.ledger.CurrentBalance(c.Query("item_id"), c.Query("warehouse_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toBalanceResponse(balance))
}

// ListBalances godoc
// @Summary      Saldos de todos los artículos de una bodega
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  true  "UUID de la bodega"
// @Success      200  {array}   dto.BalanceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/balances [get]
func (h *InventoryHandler) ListBalances(c *fiber.Ctx) error {
	balances, err := h.ledger.ListBalances(c.Query("warehouse_id"))
	if err != nil {
		return respondError(c, err)
	}
	result := make([]*dto.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		result = append(result, toBalanceResponse(b))
	}
	return c.JSON(result)
}

// ListMovements godoc
// @Summary      Historial de asientos de un artículo en una bodega
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_id       query  string  true   "UUID del artículo"
// @Param        warehouse_id  query  string  true   "UUID de la bodega"
// @Param        limit         query  int     false  "Máximo de asientos (default 100, tope 500)"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	movs, err := h.ledger.ListMovements(c.Query("item_id"), c.Query("warehouse_id"), c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toMovementResponses(movs))
}

// ListMovementsByReference godoc
// @Summary      Asientos originados por un documento
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        reference_type  query  string  true  "Tipo de documento (goods_receipt, stock_transfer, ...)"
// @Param        reference_id    query  string  true  "UUID del documento"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/by-reference [get]
func (h *InventoryHandler) ListMovementsByReference(c *fiber.Ctx) error {
	movs, err := h.ledger.ListMovementsByReference(c.Query("reference_type"), c.Query("reference_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toMovementResponses(movs))
}

// CheckConsistency godoc
// @Summary      Verificar saldo contra la suma de asientos
// @Description  Compara el saldo materializado con la suma con signo de todos
//	los asientos del par artículo+bodega.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_id       query  string  true  "UUID del artículo"
// @Param        warehouse_id  query  string  true  "UUID de la bodega"
// @Success      200  {object}  dto.ConsistencyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/consistency [get]
func (h *InventoryHandler) CheckConsistency(c *fiber.Ctx) error {
	report, err := h.ledger.CheckConsistency(c.Query("item_id"), c.Query("warehouse_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ConsistencyResponse{
		ItemID:      report.ItemID,
		WarehouseID: report.WarehouseID,
		OnHand:      report.OnHand,
		MovementSum: report.MovementSum,
		Consistent:  report.Consistent,
	})
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:              m.ID,
		ItemID:          m.ItemID,
		WarehouseID:     m.WarehouseID,
		Quantity:        m.Quantity,
		Direction:       m.Direction,
		MovementType:    m.MovementType,
		ReferenceType:   m.ReferenceType,
		ReferenceID:     m.ReferenceID,
		ReferenceNumber: m.ReferenceNumber,
		UnitCost:        m.UnitCost,
		TotalCost:       m.TotalCost,
		BalanceBefore:   m.BalanceBefore,
		BalanceAfter:    m.BalanceAfter,
		Date:            m.Date.Format(time.RFC3339),
		CreatedBy:       m.CreatedBy,
	}
}

func toMovementResponses(movs []*entity.StockMovement) []*dto.MovementResponse {
	result := make([]*dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		result = append(result, toMovementResponse(m))
	}
	return result
}

func toBalanceResponse(b *entity.StockBalance) *dto.BalanceResponse {
	resp := &dto.BalanceResponse{
		ItemID:           b.ItemID,
		WarehouseID:      b.WarehouseID,
		QuantityOnHand:   b.QuantityOnHand,
		QuantityReserved: b.QuantityReserved,
		Available:        b.Available(),
		AverageCost:      b.AverageCost,
	}
	if !b.LastMovementAt.IsZero() {
		resp.LastMovementAt = b.LastMovementAt.Format(time.RFC3339)
	}
	return resp
}
