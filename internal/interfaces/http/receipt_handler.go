package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/receiving"
)

// ReceiptHandler maneja las peticiones HTTP de recepciones de mercancía (protegido).
type ReceiptHandler struct {
	uc *receiving.ReceiptWorkflowUseCase
}

// NewReceiptHandler construye el handler.
func NewReceiptHandler(uc *receiving.ReceiptWorkflowUseCase) *ReceiptHandler {
	return &ReceiptHandler{uc: uc}
}

// Create godoc
// @Summary      Crear recepción de mercancía contra una orden de compra
// @Tags         receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReceiptRequest  true  "order_id, warehouse_id, lines"
// @Success      201   {object}  dto.ReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/receipts [post]
func (h *ReceiptHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	receipt, err := h.uc.CreateReceipt(c.Context(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(receipt)
}

// List godoc
// @Summary      Listar recepciones
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado (DRAFT, PENDING_INSPECTION, ...)"
// @Param        limit   query  int     false  "Máximo de recepciones (default 100)"
// @Success      200  {array}   dto.ReceiptResponse
// @Router       /api/receipts [get]
func (h *ReceiptHandler) List(c *fiber.Ctx) error {
	receipts, err := h.uc.ListReceipts(c.Query("status"), c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(receipts)
}

// GetByID godoc
// @Summary      Detalle de una recepción con sus líneas
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID de la recepción"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [get]
func (h *ReceiptHandler) GetByID(c *fiber.Ctx) error {
	receipt, err := h.uc.GetReceipt(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(receipt)
}

// Update godoc
// @Summary      Editar una recepción en borrador o pendiente de inspección
// @Description  Reemplaza las líneas y reconcilia la orden de compra. Los
//	veredictos de inspección previos se descartan.
// @Tags         receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "UUID de la recepción"
// @Param        body  body  dto.UpdateReceiptRequest  true  "Líneas nuevas"
// @Success      200   {object}  dto.ReceiptResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [put]
func (h *ReceiptHandler) Update(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.UpdateReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	receipt, err := h.uc.UpdateReceipt(c.Context(), userID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(receipt)
}

// RecordInspection godoc
// @Summary      Registrar la inspección de calidad de una línea
// @Description  accepted_qty + rejected_qty debe ser igual a received_qty.
//	Cuando todas las líneas quedan con veredicto la recepción pasa a
//	INSPECTED y, si hubo rechazos, se genera el borrador de devolución.
// @Tags         receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "UUID de la recepción"
// @Param        body  body  dto.InspectionRequest  true  "receipt_line_id, accepted_qty, rejected_qty, results"
// @Success      200   {object}  dto.ReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/receipts/{id}/inspections [post]
func (h *ReceiptHandler) RecordInspection(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.InspectionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	receipt, err := h.uc.RecordInspection(c.Context(), userID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(receipt)
}

// Submit godoc
// @Summary      Enviar la recepción a aprobación externa
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID de la recepción"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id}/submit [post]
func (h *ReceiptHandler) Submit(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	receipt, err := h.uc.Submit(c.Context(), userID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(receipt)
}

// ApprovalCallback godoc
// @Summary      Callback del servicio de aprobaciones
// @Description  APPROVED deja la recepción lista para almacenar; REJECTED la
//	regresa a INSPECTED, desde donde puede reenviarse.
// @Tags         receipts
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "UUID de la recepción"
// @Param        body  body  dto.ApprovalCallbackRequest  true  "decision (APPROVED|REJECTED)"
// @Success      200   {object}  dto.ReceiptResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/callbacks/receipts/{id}/approval [post]
func (h *ReceiptHandler) ApprovalCallback(c *fiber.Ctx) error {
	var in dto.ApprovalCallbackRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	receipt, err := h.uc.UpdateApprovalStatus(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(receipt)
}

// Finalize godoc
// @Summary      Almacenar la mercancía recibida (cierre de la recepción)
// @Description  Registra las entradas en el libro de inventario y deja la
//	recepción en COMPLETED. Requiere todas las líneas inspeccionadas y, si
//	aplica, la aprobación externa.
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID de la recepción"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id}/finalize [post]
func (h *ReceiptHandler) Finalize(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	receipt, err := h.uc.FinalizeStoreIn(c.Context(), userID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(receipt)
}

// GetPDF godoc
// @Summary      Acta de recepción en PDF
// @Tags         receipts
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "UUID de la recepción"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id}/pdf [get]
func (h *ReceiptHandler) GetPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.ReceiptPDF(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="acta-recepcion.pdf"`)
	return c.Send(pdfBytes)
}

// ListReturns godoc
// @Summary      Devoluciones generadas por una recepción
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID de la recepción"
// @Success      200  {array}  dto.ReturnResponse
// @Router       /api/receipts/{id}/returns [get]
func (h *ReceiptHandler) ListReturns(c *fiber.Ctx) error {
	returns, err := h.uc.ListReturnsByReceipt(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(returns)
}
