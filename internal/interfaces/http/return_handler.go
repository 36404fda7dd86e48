package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/receiving"
)

// ReturnHandler maneja las peticiones HTTP de devoluciones a proveedor (protegido).
type ReturnHandler struct {
	uc *receiving.ReceiptWorkflowUseCase
}

// NewReturnHandler construye el handler.
func NewReturnHandler(uc *receiving.ReceiptWorkflowUseCase) *ReturnHandler {
	return &ReturnHandler{uc: uc}
}

// GetByID godoc
// @Summary      Detalle de una devolución a proveedor
// @Tags         returns
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID de la devolución"
// @Success      200  {object}  dto.ReturnResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/returns/{id} [get]
func (h *ReturnHandler) GetByID(c *fiber.Ctx) error {
	ret, err := h.uc.GetReturn(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ret)
}

// Approve godoc
// @Summary      Aprobar una devolución y descargar el stock rechazado
// @Description  Solo procede cuando la recepción origen está COMPLETED;
//	registra una salida del libro por cada línea.
// @Tags         returns
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID de la devolución"
// @Success      200  {object}  dto.ReturnResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/returns/{id}/approve [post]
func (h *ReturnHandler) Approve(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	ret, err := h.uc.ApproveReturn(c.Context(), userID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ret)
}
