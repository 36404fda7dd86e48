package stockops_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/apptest"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/stockops"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

const (
	itemA      = "item-a"
	itemB      = "item-b"
	warehouse1 = "wh-1"
	warehouse2 = "wh-2"
	actorID    = "user-1"
)

type harness struct {
	transferUC *stockops.TransferUseCase
	adjUC      *stockops.AdjustmentUseCase
	transfers  *apptest.MemStockTransferRepo
	adjs       *apptest.MemStockAdjustmentRepo
	mov        *apptest.MemStockMovementRepo
	bal        *apptest.MemStockBalanceRepo
	series     *apptest.MemDocumentSeriesRepo
}

// RunStockOps ejecuta la función directamente con los repos en memoria.
func (h *harness) RunStockOps(_ context.Context, fn func(
	transferRepo repository.StockTransferRepository,
	adjRepo repository.StockAdjustmentRepository,
	movRepo repository.StockMovementRepository,
	balanceRepo repository.StockBalanceRepository,
	seriesRepo repository.DocumentSeriesRepository,
) error) error {
	return fn(h.transfers, h.adjs, h.mov, h.bal, h.series)
}

func newHarness() *harness {
	h := &harness{
		transfers: apptest.NewMemStockTransferRepo(),
		adjs:      apptest.NewMemStockAdjustmentRepo(),
		mov:       apptest.NewMemStockMovementRepo(),
		bal:       apptest.NewMemStockBalanceRepo(),
		series:    apptest.NewMemDocumentSeriesRepo(),
	}

	itemRepo := apptest.NewMemItemRepo()
	itemRepo.Items[itemA] = &entity.Item{ID: itemA, SKU: "SKU-A", Name: "Tornillo 3/4", Active: true}
	itemRepo.Items[itemB] = &entity.Item{ID: itemB, SKU: "SKU-B", Name: "Tuerca 1/2", Active: true}
	whRepo := apptest.NewMemWarehouseRepo()
	whRepo.Warehouses[warehouse1] = &entity.Warehouse{ID: warehouse1, Code: "BOD1", Name: "Bodega Central", Active: true}
	whRepo.Warehouses[warehouse2] = &entity.Warehouse{ID: warehouse2, Code: "BOD2", Name: "Bodega Norte", Active: true}

	// PostMovementInTx recibe los repos como argumentos; el resto de
	// dependencias del libro no participa en estos tests.
	ledger := inventory.NewLedgerUseCase(nil, nil, nil, nil, nil)

	h.transferUC = stockops.NewTransferUseCase(h, ledger, h.transfers, whRepo, itemRepo)
	h.adjUC = stockops.NewAdjustmentUseCase(h, ledger, h.adjs, whRepo)
	return h
}

// seedBalance deja un saldo directo en el libro (sin pasar por asientos).
func (h *harness) seedBalance(t *testing.T, itemID, warehouseID string, qty, avgCost int64) {
	t.Helper()
	require.NoError(t, h.bal.Upsert(&entity.StockBalance{
		ItemID:         itemID,
		WarehouseID:    warehouseID,
		QuantityOnHand: decimal.NewFromInt(qty),
		AverageCost:    decimal.NewFromInt(avgCost),
	}))
}

func TestCreateTransfer_Borrador(t *testing.T) {
	h := newHarness()
	h.seedBalance(t, itemA, warehouse1, 200, 5)

	resp, err := h.transferUC.CreateTransfer(context.Background(), actorID, dto.CreateTransferRequest{
		FromWarehouseID: warehouse1,
		ToWarehouseID:   warehouse2,
		Lines: []dto.TransferLineRequest{
			{ItemID: itemA, Quantity: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.TransferStatusDraft, resp.Status)
	assert.Contains(t, resp.Number, "TRF-")
	assert.Empty(t, h.mov.Movements, "crear el traslado no mueve stock")
}

func TestCreateTransfer_Validaciones(t *testing.T) {
	h := newHarness()

	casos := []struct {
		nombre string
		req    dto.CreateTransferRequest
	}{
		{"misma bodega", dto.CreateTransferRequest{
			FromWarehouseID: warehouse1, ToWarehouseID: warehouse1,
			Lines: []dto.TransferLineRequest{{ItemID: itemA, Quantity: decimal.NewFromInt(1)}},
		}},
		{"sin líneas", dto.CreateTransferRequest{
			FromWarehouseID: warehouse1, ToWarehouseID: warehouse2,
		}},
		{"cantidad cero", dto.CreateTransferRequest{
			FromWarehouseID: warehouse1, ToWarehouseID: warehouse2,
			Lines: []dto.TransferLineRequest{{ItemID: itemA, Quantity: decimal.Zero}},
		}},
		{"artículo repetido", dto.CreateTransferRequest{
			FromWarehouseID: warehouse1, ToWarehouseID: warehouse2,
			Lines: []dto.TransferLineRequest{
				{ItemID: itemA, Quantity: decimal.NewFromInt(1)},
				{ItemID: itemA, Quantity: decimal.NewFromInt(2)},
			},
		}},
	}
	for _, caso := range casos {
		t.Run(caso.nombre, func(t *testing.T) {
			_, err := h.transferUC.CreateTransfer(context.Background(), actorID, caso.req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestFinalizeTransfer_MueveAlCostoDeOrigen(t *testing.T) {
	h := newHarness()
	h.seedBalance(t, itemA, warehouse1, 200, 5)

	created, err := h.transferUC.CreateTransfer(context.Background(), actorID, dto.CreateTransferRequest{
		FromWarehouseID: warehouse1,
		ToWarehouseID:   warehouse2,
		Lines: []dto.TransferLineRequest{
			{ItemID: itemA, Quantity: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, err)

	done, err := h.transferUC.FinalizeTransfer(context.Background(), actorID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusCompleted, done.Status)

	src, err := h.bal.Get(itemA, warehouse1)
	require.NoError(t, err)
	assert.True(t, src.QuantityOnHand.Equal(decimal.NewFromInt(150)))

	dst, err := h.bal.Get(itemA, warehouse2)
	require.NoError(t, err)
	assert.True(t, dst.QuantityOnHand.Equal(decimal.NewFromInt(50)))
	assert.True(t, dst.AverageCost.Equal(decimal.NewFromInt(5)),
		"el costo promedio de origen viaja al destino")

	movs, err := h.mov.ListByReference("stock_transfer", created.ID)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	tipos := []string{movs[0].MovementType, movs[1].MovementType}
	assert.Contains(t, tipos, entity.MovementTypeTransferOut)
	assert.Contains(t, tipos, entity.MovementTypeTransferIn)
}

func TestFinalizeTransfer_StockInsuficiente_NadaSeMueve(t *testing.T) {
	h := newHarness()
	h.seedBalance(t, itemA, warehouse1, 200, 5)
	h.seedBalance(t, itemB, warehouse1, 3, 2)

	// La segunda línea no alcanza: ninguna de las dos debe moverse
	created, err := h.transferUC.CreateTransfer(context.Background(), actorID, dto.CreateTransferRequest{
		FromWarehouseID: warehouse1,
		ToWarehouseID:   warehouse2,
		Lines: []dto.TransferLineRequest{
			{ItemID: itemA, Quantity: decimal.NewFromInt(50)},
			{ItemID: itemB, Quantity: decimal.NewFromInt(999)},
		},
	})
	require.NoError(t, err)

	_, err = h.transferUC.FinalizeTransfer(context.Background(), actorID, created.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, h.mov.Movements)

	src, err := h.bal.Get(itemA, warehouse1)
	require.NoError(t, err)
	assert.True(t, src.QuantityOnHand.Equal(decimal.NewFromInt(200)))

	stored, err := h.transferUC.GetTransfer(created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusDraft, stored.Status,
		"un traslado fallido sigue en borrador")
}

func TestFinalizeTransfer_DosVeces_Falla(t *testing.T) {
	h := newHarness()
	h.seedBalance(t, itemA, warehouse1, 200, 5)

	created, err := h.transferUC.CreateTransfer(context.Background(), actorID, dto.CreateTransferRequest{
		FromWarehouseID: warehouse1,
		ToWarehouseID:   warehouse2,
		Lines: []dto.TransferLineRequest{
			{ItemID: itemA, Quantity: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, err)

	_, err = h.transferUC.FinalizeTransfer(context.Background(), actorID, created.ID)
	require.NoError(t, err)

	_, err = h.transferUC.FinalizeTransfer(context.Background(), actorID, created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	movs, err := h.mov.ListByReference("stock_transfer", created.ID)
	require.NoError(t, err)
	assert.Len(t, movs, 2, "el segundo intento no debe duplicar asientos")
}

func TestFinalizeTransfer_BodegaDestinoVacia_AbreSaldo(t *testing.T) {
	h := newHarness()
	h.seedBalance(t, itemA, warehouse1, 10, 7)

	created, err := h.transferUC.CreateTransfer(context.Background(), actorID, dto.CreateTransferRequest{
		FromWarehouseID: warehouse1,
		ToWarehouseID:   warehouse2,
		Lines: []dto.TransferLineRequest{
			{ItemID: itemA, Quantity: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)

	_, err = h.transferUC.FinalizeTransfer(context.Background(), actorID, created.ID)
	require.NoError(t, err)

	src, err := h.bal.Get(itemA, warehouse1)
	require.NoError(t, err)
	assert.True(t, src.QuantityOnHand.IsZero())

	dst, err := h.bal.Get(itemA, warehouse2)
	require.NoError(t, err)
	assert.True(t, dst.QuantityOnHand.Equal(decimal.NewFromInt(10)))
	assert.True(t, dst.AverageCost.Equal(decimal.NewFromInt(7)))
}
