package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/masterdata"
	"github.com/jhoicas/Almacen-api/internal/application/receiving"
	"github.com/jhoicas/Almacen-api/internal/application/stockops"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/approval"
	infrapdf "github.com/jhoicas/Almacen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Almacen-api/internal/interfaces/http"
	"github.com/jhoicas/Almacen-api/pkg/config"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones al día")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	unitRepo := postgres.NewUnitRepository(pool)
	balanceRepo := postgres.NewStockBalanceRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	grnRepo := postgres.NewGoodsReceiptRepository(pool)
	retRepo := postgres.NewPurchaseReturnRepository(pool)
	inspRepo := postgres.NewQualityInspectionRepository(pool)
	poRepo := postgres.NewPurchaseOrderRepository(pool)
	transferRepo := postgres.NewStockTransferRepository(pool)
	adjRepo := postgres.NewStockAdjustmentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerUC := inventory.NewLedgerUseCase(txRunner, itemRepo, warehouseRepo, balanceRepo, movementRepo)

	approvalClient := approval.NewClient(
		cfg.Approval.BaseURL,
		time.Duration(cfg.Approval.TimeoutSeconds)*time.Second,
		log,
	)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

	receivingUC := receiving.NewReceiptWorkflowUseCase(
		txRunner, ledgerUC, approvalClient,
		grnRepo, retRepo, inspRepo, poRepo,
		supplierRepo, warehouseRepo, itemRepo,
		pdfGenerator,
		receiving.Config{ReturnTaxPct: decimal.NewFromFloat(cfg.Approval.ReturnTaxPct)},
	)

	transferUC := stockops.NewTransferUseCase(txRunner, ledgerUC, transferRepo, warehouseRepo, itemRepo)
	adjustmentUC := stockops.NewAdjustmentUseCase(txRunner, ledgerUC, adjRepo, warehouseRepo)
	masterDataUC := masterdata.NewMasterDataUseCase(itemRepo, warehouseRepo, unitRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almacén Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		LedgerUC:     ledgerUC,
		ReceivingUC:  receivingUC,
		TransferUC:   transferUC,
		AdjustmentUC: adjustmentUC,
		MasterDataUC: masterDataUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
