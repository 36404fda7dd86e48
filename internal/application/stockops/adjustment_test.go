package stockops_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

func createCount(t *testing.T, h *harness) *dto.AdjustmentResponse {
	t.Helper()
	resp, err := h.adjUC.CreateCount(context.Background(), actorID, dto.CreateCountRequest{
		WarehouseID: warehouse1,
	})
	require.NoError(t, err)
	return resp
}

func TestCreateCount_SnapshotDeSaldos(t *testing.T) {
	h := newHarness()
	h.seedBalance(t, itemA, warehouse1, 80, 5)
	h.seedBalance(t, itemB, warehouse1, 30, 2)

	resp := createCount(t, h)

	assert.Equal(t, entity.AdjustmentStatusDraft, resp.Status)
	assert.Contains(t, resp.Number, "ADJ-")
	require.Len(t, resp.Lines, 2, "una línea por cada saldo de la bodega")
	for _, l := range resp.Lines {
		assert.False(t, l.Counted)
		assert.True(t, l.CountedQty.Equal(l.SystemQty),
			"la línea arranca en la cantidad del sistema (varianza cero)")
		assert.True(t, l.Variance.IsZero())
		switch l.ItemID {
		case itemA:
			assert.True(t, l.SystemQty.Equal(decimal.NewFromInt(80)))
			assert.True(t, l.UnitCost.Equal(decimal.NewFromInt(5)))
		case itemB:
			assert.True(t, l.SystemQty.Equal(decimal.NewFromInt(30)))
			assert.True(t, l.UnitCost.Equal(decimal.NewFromInt(2)))
		default:
			t.Fatalf("artículo inesperado en el snapshot: %s", l.ItemID)
		}
	}
}

func TestCreateCount_BodegaSinSaldos(t *testing.T) {
	h := newHarness()

	_, err := h.adjUC.CreateCount(context.Background(), actorID, dto.CreateCountRequest{
		WarehouseID: warehouse1,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdateCountItems_CalculaVarianza(t *testing.T) {
	h := newHarness()
	h.seedBalance(t, itemA, warehouse1, 80, 5)
	h.seedBalance(t, itemB, warehouse1, 30, 2)
	count := createCount(t, h)

	resp, err := h.adjUC.UpdateCountItems(context.Background(), count.ID, dto.UpdateCountRequest{
		Items: []dto.CountItemRequest{
			{ItemID: itemA, CountedQty: decimal.NewFromInt(75)},
			{ItemID: itemB, CountedQty: decimal.NewFromInt(30)},
		},
	})
	require.NoError(t, err)

	for _, l := range resp.Lines {
		assert.True(t, l.Counted)
		switch l.ItemID {
		case itemA:
			assert.True(t, l.Variance.Equal(decimal.NewFromInt(-5)))
			assert.True(t, l.VarianceValue.Equal(decimal.NewFromInt(-25)),
				"valor de varianza = varianza x costo del snapshot")
		case itemB:
			assert.True(t, l.Variance.IsZero())
			assert.True(t, l.VarianceValue.IsZero())
		}
	}
}

func TestUpdateCountItems_ArticuloFueraDelConteo(t *testing.T) {
	h := newHarness()
	h.seedBalance(t, itemA, warehouse1, 80, 5)
	count := createCount(t, h)

	_, err := h.adjUC.UpdateCountItems(context.Background(), count.ID, dto.UpdateCountRequest{
		Items: []dto.CountItemRequest{
			{ItemID: "no-existe", CountedQty: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateCountItems_CantidadNegativa(t *testing.T) {
	h := newHarness()
	h.seedBalance(t, itemA, warehouse1, 80, 5)
	count := createCount(t, h)

	_, err := h.adjUC.UpdateCountItems(context.Background(), count.ID, dto.UpdateCountRequest{
		Items: []dto.CountItemRequest{
			{ItemID: itemA, CountedQty: decimal.NewFromInt(-1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApproveCount_LineasSinContarQuedanEnCero(t *testing.T) {
	h := newHarness()
	h.seedBalance(t, itemA, warehouse1, 80, 5)
	h.seedBalance(t, itemB, warehouse1, 30, 2)
	count := createCount(t, h)

	// Solo un artículo contado; el otro queda en la cantidad del snapshot
	_, err := h.adjUC.UpdateCountItems(context.Background(), count.ID, dto.UpdateCountRequest{
		Items: []dto.CountItemRequest{
			{ItemID: itemA, CountedQty: decimal.NewFromInt(75)},
		},
	})
	require.NoError(t, err)

	resp, err := h.adjUC.ApproveCount(context.Background(), actorID, count.ID)
	require.NoError(t, err, "una línea sin contar es varianza cero, no bloquea la aprobación")
	assert.Equal(t, entity.AdjustmentStatusApproved, resp.Status)

	movs, err := h.mov.ListByReference("stock_adjustment", count.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1, "la línea sin contar no genera asiento")
	assert.Equal(t, itemA, movs[0].ItemID)

	balB, err := h.bal.Get(itemB, warehouse1)
	require.NoError(t, err)
	assert.True(t, balB.QuantityOnHand.Equal(decimal.NewFromInt(30)),
		"el saldo del artículo sin contar no cambia")
}

func TestApproveCount_AplicaVarianzasAlLibro(t *testing.T) {
	h := newHarness()
	h.seedBalance(t, itemA, warehouse1, 80, 5)
	h.seedBalance(t, itemB, warehouse1, 30, 2)
	count := createCount(t, h)

	_, err := h.adjUC.UpdateCountItems(context.Background(), count.ID, dto.UpdateCountRequest{
		Items: []dto.CountItemRequest{
			{ItemID: itemA, CountedQty: decimal.NewFromInt(75)}, // faltante de 5
			{ItemID: itemB, CountedQty: decimal.NewFromInt(30)}, // sin varianza
		},
	})
	require.NoError(t, err)

	resp, err := h.adjUC.ApproveCount(context.Background(), actorID, count.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentStatusApproved, resp.Status)

	movs, err := h.mov.ListByReference("stock_adjustment", count.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1, "solo las líneas con varianza generan asiento")
	assert.Equal(t, itemA, movs[0].ItemID)
	assert.Equal(t, entity.DirectionOut, movs[0].Direction)
	assert.Equal(t, entity.MovementTypeAdjustment, movs[0].MovementType)
	assert.True(t, movs[0].Quantity.Equal(decimal.NewFromInt(5)))
	assert.True(t, movs[0].UnitCost.Equal(decimal.NewFromInt(5)))

	balA, err := h.bal.Get(itemA, warehouse1)
	require.NoError(t, err)
	assert.True(t, balA.QuantityOnHand.Equal(decimal.NewFromInt(75)))

	balB, err := h.bal.Get(itemB, warehouse1)
	require.NoError(t, err)
	assert.True(t, balB.QuantityOnHand.Equal(decimal.NewFromInt(30)))
}

func TestApproveCount_SobranteGeneraEntrada(t *testing.T) {
	h := newHarness()
	h.seedBalance(t, itemA, warehouse1, 80, 5)
	count := createCount(t, h)

	_, err := h.adjUC.UpdateCountItems(context.Background(), count.ID, dto.UpdateCountRequest{
		Items: []dto.CountItemRequest{
			{ItemID: itemA, CountedQty: decimal.NewFromInt(90)},
		},
	})
	require.NoError(t, err)

	_, err = h.adjUC.ApproveCount(context.Background(), actorID, count.ID)
	require.NoError(t, err)

	movs, err := h.mov.ListByReference("stock_adjustment", count.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.DirectionIn, movs[0].Direction)
	assert.True(t, movs[0].Quantity.Equal(decimal.NewFromInt(10)))

	balA, err := h.bal.Get(itemA, warehouse1)
	require.NoError(t, err)
	assert.True(t, balA.QuantityOnHand.Equal(decimal.NewFromInt(90)))
}

func TestApproveCount_DosVeces_Falla(t *testing.T) {
	h := newHarness()
	h.seedBalance(t, itemA, warehouse1, 80, 5)
	count := createCount(t, h)

	_, err := h.adjUC.UpdateCountItems(context.Background(), count.ID, dto.UpdateCountRequest{
		Items: []dto.CountItemRequest{
			{ItemID: itemA, CountedQty: decimal.NewFromInt(75)},
		},
	})
	require.NoError(t, err)
	_, err = h.adjUC.ApproveCount(context.Background(), actorID, count.ID)
	require.NoError(t, err)

	_, err = h.adjUC.ApproveCount(context.Background(), actorID, count.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestApproveCount_ConteoAprobadoNoEsEditable(t *testing.T) {
	h := newHarness()
	h.seedBalance(t, itemA, warehouse1, 80, 5)
	count := createCount(t, h)

	_, err := h.adjUC.UpdateCountItems(context.Background(), count.ID, dto.UpdateCountRequest{
		Items: []dto.CountItemRequest{
			{ItemID: itemA, CountedQty: decimal.NewFromInt(75)},
		},
	})
	require.NoError(t, err)
	_, err = h.adjUC.ApproveCount(context.Background(), actorID, count.ID)
	require.NoError(t, err)

	_, err = h.adjUC.UpdateCountItems(context.Background(), count.ID, dto.UpdateCountRequest{
		Items: []dto.CountItemRequest{
			{ItemID: itemA, CountedQty: decimal.NewFromInt(80)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}
