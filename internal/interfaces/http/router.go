package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/masterdata"
	"github.com/jhoicas/Almacen-api/internal/application/receiving"
	"github.com/jhoicas/Almacen-api/internal/application/stockops"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC     *inventory.LedgerUseCase
	ReceivingUC  *receiving.ReceiptWorkflowUseCase
	TransferUC   *stockops.TransferUseCase
	AdjustmentUC *stockops.AdjustmentUseCase
	MasterDataUC *masterdata.MasterDataUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	receiptHandler := NewReceiptHandler(deps.ReceivingUC)

	// Callbacks (servicio a servicio; el motor de aprobaciones no porta JWT
	// de usuario, se protege a nivel de red / API gateway)
	callbacks := api.Group("/callbacks")
	callbacks.Post("/receipts/:id/approval", receiptHandler.ApprovalCallback)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Libro de inventario (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC)
	invGroup.Post("/movements", inventoryHandler.PostMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/movements/by-reference", inventoryHandler.ListMovementsByReference)
	invGroup.Get("/balances", inventoryHandler.ListBalances)
	invGroup.Get("/balances/one", inventoryHandler.GetBalance)
	invGroup.Get("/consistency", inventoryHandler.CheckConsistency)

	// Recepciones de mercancía (protegido)
	receipts := protected.Group("/receipts")
	receipts.Post("/", receiptHandler.Create)
	receipts.Get("/", receiptHandler.List)
	receipts.Get("/:id", receiptHandler.GetByID)
	receipts.Put("/:id", receiptHandler.Update)
	receipts.Post("/:id/inspections", receiptHandler.RecordInspection)
	receipts.Post("/:id/submit", receiptHandler.Submit)
	receipts.Post("/:id/finalize", RequireRole("admin", "supervisor"), receiptHandler.Finalize)
	receipts.Get("/:id/pdf", receiptHandler.GetPDF)
	receipts.Get("/:id/returns", receiptHandler.ListReturns)

	// Devoluciones a proveedor (protegido)
	returns := protected.Group("/returns")
	returnHandler := NewReturnHandler(deps.ReceivingUC)
	returns.Get("/:id", returnHandler.GetByID)
	returns.Post("/:id/approve", RequireRole("admin", "supervisor"), returnHandler.Approve)

	// Traslados entre bodegas (protegido)
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Post("/:id/finalize", transferHandler.Finalize)

	// Conteos físicos y ajustes (protegido)
	adjustments := protected.Group("/adjustments")
	adjustmentHandler := NewAdjustmentHandler(deps.AdjustmentUC)
	adjustments.Post("/", adjustmentHandler.Create)
	adjustments.Get("/:id", adjustmentHandler.GetByID)
	adjustments.Put("/:id/items", adjustmentHandler.UpdateItems)
	adjustments.Post("/:id/approve", RequireRole("admin", "supervisor"), adjustmentHandler.Approve)

	// Maestro de artículos y bodegas (protegido, solo lectura)
	masterDataHandler := NewMasterDataHandler(deps.MasterDataUC)
	protected.Get("/items", masterDataHandler.ListItems)
	protected.Get("/items/:id", masterDataHandler.GetItem)
	protected.Get("/warehouses", masterDataHandler.ListWarehouses)
	protected.Get("/warehouses/:id", masterDataHandler.GetWarehouse)
}
