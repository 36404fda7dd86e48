package receiving_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/apptest"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/receiving"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

const (
	orderID    = "po-1"
	orderLineA = "pol-1" // item-a, ordenado 100 @ 10
	orderLineB = "pol-2" // item-b, ordenado 50 @ 20
	itemA      = "item-a"
	itemB      = "item-b"
	supplier1  = "sup-1"
	warehouse1 = "wh-1"
	actorID    = "user-1"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de prueba
// ──────────────────────────────────────────────────────────────────────────────

type fakeApprovalService struct {
	requests []receiving.ApprovalRequest
	err      error
}

func (s *fakeApprovalService) InitiateApproval(_ context.Context, req receiving.ApprovalRequest) error {
	if s.err != nil {
		return s.err
	}
	s.requests = append(s.requests, req)
	return nil
}

type fakePDFGenerator struct{}

func (fakePDFGenerator) GenerateReceiptPDF(data *receiving.ReceiptDocumentData) ([]byte, error) {
	return []byte("%PDF " + data.Number), nil
}

type harness struct {
	uc       *receiving.ReceiptWorkflowUseCase
	grn      *apptest.MemGoodsReceiptRepo
	po       *apptest.MemPurchaseOrderRepo
	insp     *apptest.MemQualityInspectionRepo
	ret      *apptest.MemPurchaseReturnRepo
	mov      *apptest.MemStockMovementRepo
	bal      *apptest.MemStockBalanceRepo
	series   *apptest.MemDocumentSeriesRepo
	approval *fakeApprovalService
}

// RunReceiving ejecuta la función directamente con los repos en memoria.
func (h *harness) RunReceiving(_ context.Context, fn func(
	grnRepo repository.GoodsReceiptRepository,
	poRepo repository.PurchaseOrderRepository,
	inspRepo repository.QualityInspectionRepository,
	retRepo repository.PurchaseReturnRepository,
	movRepo repository.StockMovementRepository,
	balanceRepo repository.StockBalanceRepository,
	seriesRepo repository.DocumentSeriesRepository,
) error) error {
	return fn(h.grn, h.po, h.insp, h.ret, h.mov, h.bal, h.series)
}

func newHarness() *harness {
	h := &harness{
		grn:      apptest.NewMemGoodsReceiptRepo(),
		po:       apptest.NewMemPurchaseOrderRepo(),
		insp:     apptest.NewMemQualityInspectionRepo(),
		ret:      apptest.NewMemPurchaseReturnRepo(),
		mov:      apptest.NewMemStockMovementRepo(),
		bal:      apptest.NewMemStockBalanceRepo(),
		series:   apptest.NewMemDocumentSeriesRepo(),
		approval: &fakeApprovalService{},
	}

	itemRepo := apptest.NewMemItemRepo()
	itemRepo.Items[itemA] = &entity.Item{ID: itemA, SKU: "SKU-A", Name: "Tornillo 3/4", Active: true}
	itemRepo.Items[itemB] = &entity.Item{ID: itemB, SKU: "SKU-B", Name: "Tuerca 1/2", Active: true}
	whRepo := apptest.NewMemWarehouseRepo()
	whRepo.Warehouses[warehouse1] = &entity.Warehouse{ID: warehouse1, Code: "BOD1", Name: "Bodega Central", Active: true}
	supplierRepo := apptest.NewMemSupplierRepo()
	supplierRepo.Suppliers[supplier1] = &entity.Supplier{ID: supplier1, Name: "Ferretería El Tornillo", TaxID: "900123456"}

	h.po.Seed(
		&entity.PurchaseOrder{ID: orderID, Number: "OC-001", SupplierID: supplier1, Status: entity.POStatusOpen},
		[]*entity.PurchaseOrderLine{
			{ID: orderLineA, OrderID: orderID, LineNo: 1, ItemID: itemA,
				OrderedQty: decimal.NewFromInt(100), UnitCost: decimal.NewFromInt(10), Status: entity.POLineStatusOpen},
			{ID: orderLineB, OrderID: orderID, LineNo: 2, ItemID: itemB,
				OrderedQty: decimal.NewFromInt(50), UnitCost: decimal.NewFromInt(20), Status: entity.POLineStatusOpen},
		},
	)

	// PostMovementInTx recibe los repos como argumentos; el resto de
	// dependencias del libro no participa en estos tests.
	ledger := inventory.NewLedgerUseCase(nil, nil, nil, nil, nil)

	h.uc = receiving.NewReceiptWorkflowUseCase(
		h, ledger, h.approval,
		h.grn, h.ret, h.insp, h.po,
		supplierRepo, whRepo, itemRepo,
		fakePDFGenerator{},
		receiving.Config{ReturnTaxPct: decimal.NewFromInt(19)},
	)
	return h
}

func createReceipt(t *testing.T, h *harness, lines ...dto.ReceiptLineRequest) *dto.ReceiptResponse {
	t.Helper()
	resp, err := h.uc.CreateReceipt(context.Background(), actorID, dto.CreateReceiptRequest{
		OrderID:     orderID,
		WarehouseID: warehouse1,
		Lines:       lines,
	})
	require.NoError(t, err)
	return resp
}

// approveReceipt recorre submit + callback APPROVED, el único camino hacia
// el ingreso a bodega.
func approveReceipt(t *testing.T, h *harness, receiptID string) {
	t.Helper()
	_, err := h.uc.Submit(context.Background(), actorID, receiptID)
	require.NoError(t, err)
	_, err = h.uc.UpdateApprovalStatus(context.Background(), receiptID, dto.ApprovalCallbackRequest{
		Decision: entity.ApprovalApproved, ApproverID: "boss-1",
	})
	require.NoError(t, err)
}

func inspectLine(t *testing.T, h *harness, receiptID, lineID string, accepted, rejected int64) *dto.ReceiptResponse {
	t.Helper()
	resp, err := h.uc.RecordInspection(context.Background(), "inspector-1", receiptID, dto.InspectionRequest{
		ReceiptLineID: lineID,
		SampleSize:    decimal.NewFromInt(5),
		AcceptedQty:   decimal.NewFromInt(accepted),
		RejectedQty:   decimal.NewFromInt(rejected),
		Results: []dto.InspectionResultRequest{
			{ParameterName: "empaque", Result: entity.InspectionResultPass},
		},
	})
	require.NoError(t, err)
	return resp
}

func orderLineByID(t *testing.T, h *harness, id string) *entity.PurchaseOrderLine {
	t.Helper()
	lines, err := h.po.GetLines(orderID)
	require.NoError(t, err)
	for _, l := range lines {
		if l.ID == id {
			return l
		}
	}
	t.Fatalf("línea de orden %s no encontrada", id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación y reconciliación contra la orden
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateReceipt_ParcialReconciliaOrden(t *testing.T) {
	h := newHarness()

	resp := createReceipt(t, h,
		dto.ReceiptLineRequest{OrderLineID: orderLineA, ReceivedQty: decimal.NewFromInt(60)},
		dto.ReceiptLineRequest{OrderLineID: orderLineB, ReceivedQty: decimal.NewFromInt(50)},
	)

	assert.Equal(t, entity.ReceiptStatusDraft, resp.Status)
	assert.Equal(t, entity.ApprovalNone, resp.ApprovalStatus)
	assert.Contains(t, resp.Number, "GRN-")
	require.Len(t, resp.Lines, 2)
	assert.True(t, resp.Lines[0].UnitCost.Equal(decimal.NewFromInt(10)),
		"el costo de la línea viene de la orden de compra")

	lineA := orderLineByID(t, h, orderLineA)
	assert.True(t, lineA.ReceivedQty.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, entity.POLineStatusPartiallyReceived, lineA.Status)

	lineB := orderLineByID(t, h, orderLineB)
	assert.Equal(t, entity.POLineStatusReceived, lineB.Status)

	order, err := h.po.GetByID(orderID)
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusPartiallyReceived, order.Status)
}

func TestCreateReceipt_SobreRecepcionRechazada(t *testing.T) {
	h := newHarness()

	_, err := h.uc.CreateReceipt(context.Background(), actorID, dto.CreateReceiptRequest{
		OrderID:     orderID,
		WarehouseID: warehouse1,
		Lines: []dto.ReceiptLineRequest{
			{OrderLineID: orderLineA, ReceivedQty: decimal.NewFromInt(120)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrOverReceipt)

	lineA := orderLineByID(t, h, orderLineA)
	assert.True(t, lineA.ReceivedQty.IsZero(), "una recepción rechazada no acumula sobre la orden")
}

func TestCreateReceipt_AcumuladoEntreRecepciones(t *testing.T) {
	h := newHarness()

	createReceipt(t, h, dto.ReceiptLineRequest{OrderLineID: orderLineA, ReceivedQty: decimal.NewFromInt(60)})

	// 60 + 50 > 100: debe rechazarse
	_, err := h.uc.CreateReceipt(context.Background(), actorID, dto.CreateReceiptRequest{
		OrderID:     orderID,
		WarehouseID: warehouse1,
		Lines: []dto.ReceiptLineRequest{
			{OrderLineID: orderLineA, ReceivedQty: decimal.NewFromInt(50)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrOverReceipt)

	// 60 + 40 = 100: cierra la línea, pero la B sigue abierta
	createReceipt(t, h, dto.ReceiptLineRequest{OrderLineID: orderLineA, ReceivedQty: decimal.NewFromInt(40)})
	assert.Equal(t, entity.POLineStatusReceived, orderLineByID(t, h, orderLineA).Status)

	order, err := h.po.GetByID(orderID)
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusPartiallyReceived, order.Status)
}

func TestCreateReceipt_OrdenCerrada(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.po.UpdateStatus(orderID, entity.POStatusClosed))

	_, err := h.uc.CreateReceipt(context.Background(), actorID, dto.CreateReceiptRequest{
		OrderID:     orderID,
		WarehouseID: warehouse1,
		Lines: []dto.ReceiptLineRequest{
			{OrderLineID: orderLineA, ReceivedQty: decimal.NewFromInt(10)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Inspección de calidad
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordInspection_SumaInvalida(t *testing.T) {
	h := newHarness()
	resp := createReceipt(t, h, dto.ReceiptLineRequest{OrderLineID: orderLineA, ReceivedQty: decimal.NewFromInt(60)})

	_, err := h.uc.RecordInspection(context.Background(), "inspector-1", resp.ID, dto.InspectionRequest{
		ReceiptLineID: resp.Lines[0].ID,
		AcceptedQty:   decimal.NewFromInt(50),
		RejectedQty:   decimal.NewFromInt(5), // 55 != 60
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordInspection_DobleInspeccionRechazada(t *testing.T) {
	h := newHarness()
	resp := createReceipt(t, h,
		dto.ReceiptLineRequest{OrderLineID: orderLineA, ReceivedQty: decimal.NewFromInt(60)},
		dto.ReceiptLineRequest{OrderLineID: orderLineB, ReceivedQty: decimal.NewFromInt(50)},
	)

	// La segunda línea sigue pendiente: el documento aún admite inspecciones
	inspectLine(t, h, resp.ID, resp.Lines[0].ID, 60, 0)

	_, err := h.uc.RecordInspection(context.Background(), "inspector-1", resp.ID, dto.InspectionRequest{
		ReceiptLineID: resp.Lines[0].ID,
		AcceptedQty:   decimal.NewFromInt(60),
		RejectedQty:   decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRecordInspection_TodasLasLineas_GeneraDevolucion(t *testing.T) {
	h := newHarness()
	resp := createReceipt(t, h,
		dto.ReceiptLineRequest{OrderLineID: orderLineA, ReceivedQty: decimal.NewFromInt(60)},
		dto.ReceiptLineRequest{OrderLineID: orderLineB, ReceivedQty: decimal.NewFromInt(50)},
	)

	mid := inspectLine(t, h, resp.ID, resp.Lines[0].ID, 50, 10)
	assert.Equal(t, entity.ReceiptStatusPendingInspection, mid.Status,
		"con líneas pendientes el documento sigue en inspección")

	final := inspectLine(t, h, resp.ID, resp.Lines[1].ID, 50, 0)
	assert.Equal(t, entity.ReceiptStatusInspected, final.Status)

	require.Len(t, final.Lines, 2)
	assert.Equal(t, entity.VerdictPartial, final.Lines[0].Verdict)
	assert.Equal(t, entity.VerdictPassed, final.Lines[1].Verdict)

	rets, err := h.uc.ListReturnsByReceipt(resp.ID)
	require.NoError(t, err)
	require.Len(t, rets, 1, "los rechazos deben generar exactamente una devolución en borrador")

	ret, err := h.uc.GetReturn(rets[0].ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReturnStatusDraft, ret.Status)
	assert.Contains(t, ret.Number, "RET-")
	require.Len(t, ret.Lines, 1)
	assert.True(t, ret.Lines[0].Quantity.Equal(decimal.NewFromInt(10)))
	assert.True(t, ret.Lines[0].UnitPrice.Equal(decimal.NewFromInt(10)))
	assert.True(t, ret.NetTotal.Equal(decimal.NewFromInt(100)))
	assert.True(t, ret.TaxTotal.Equal(decimal.NewFromInt(19)), "impuesto del 19 por ciento sobre el neto")
	assert.True(t, ret.GrandTotal.Equal(decimal.NewFromInt(119)))
}

func TestRecordInspection_SinRechazos_NoGeneraDevolucion(t *testing.T) {
	h := newHarness()
	resp := createReceipt(t, h, dto.ReceiptLineRequest{OrderLineID: orderLineA, ReceivedQty: decimal.NewFromInt(60)})

	final := inspectLine(t, h, resp.ID, resp.Lines[0].ID, 60, 0)
	assert.Equal(t, entity.ReceiptStatusInspected, final.Status)

	rets, err := h.uc.ListReturnsByReceipt(resp.ID)
	require.NoError(t, err)
	assert.Empty(t, rets)
}

// ──────────────────────────────────────────────────────────────────────────────
// Aprobación externa
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_AbreSolicitudYCallbackAprueba(t *testing.T) {
	h := newHarness()
	resp := createReceipt(t, h, dto.ReceiptLineRequest{OrderLineID: orderLineA, ReceivedQty: decimal.NewFromInt(60)})
	inspectLine(t, h, resp.ID, resp.Lines[0].ID, 60, 0)

	submitted, err := h.uc.Submit(context.Background(), actorID, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReceiptStatusPendingApproval, submitted.Status)
	assert.Equal(t, entity.ApprovalPending, submitted.ApprovalStatus)

	require.Len(t, h.approval.requests, 1)
	req := h.approval.requests[0]
	assert.Equal(t, resp.ID, req.EntityID)
	assert.True(t, req.Amount.Equal(decimal.NewFromInt(60)),
		"el monto de la solicitud es la cantidad total recibida")

	approved, err := h.uc.UpdateApprovalStatus(context.Background(), resp.ID, dto.ApprovalCallbackRequest{
		Decision: entity.ApprovalApproved, ApproverID: "boss-1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ReceiptStatusApproved, approved.Status)
	assert.Equal(t, entity.ApprovalApproved, approved.ApprovalStatus)
}

func TestSubmit_ServicioCaido_DevuelveError(t *testing.T) {
	h := newHarness()
	h.approval.err = errors.New("connection refused")
	resp := createReceipt(t, h, dto.ReceiptLineRequest{OrderLineID: orderLineA, ReceivedQty: decimal.NewFromInt(60)})
	inspectLine(t, h, resp.ID, resp.Lines[0].ID, 60, 0)

	_, err := h.uc.Submit(context.Background(), actorID, resp.ID)
	assert.Error(t, err, "si el servicio de aprobaciones falla el submit no procede")
}

func TestCallback_Rechazo_RegresaAInspectedYPermiteReenvio(t *testing.T) {
	h := newHarness()
	resp := createReceipt(t, h, dto.ReceiptLineRequest{OrderLineID: orderLineA, ReceivedQty: decimal.NewFromInt(60)})
	inspectLine(t, h, resp.ID, resp.Lines[0].ID, 60, 0)

	_, err := h.uc.Submit(context.Background(), actorID, resp.ID)
	require.NoError(t, err)

	rejected, err := h.uc.UpdateApprovalStatus(context.Background(), resp.ID, dto.ApprovalCallbackRequest{
		Decision: entity.ApprovalRejected,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ReceiptStatusInspected, rejected.Status)
	assert.Equal(t, entity.ApprovalRejected, rejected.ApprovalStatus)

	// El documento rechazado puede reenviarse
	resubmitted, err := h.uc.Submit(context.Background(), actorID, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReceiptStatusPendingApproval, resubmitted.Status)
	assert.Equal(t, entity.ApprovalPending, resubmitted.ApprovalStatus)
}

func TestCallback_DecisionDesconocida(t *testing.T) {
	h := newHarness()
	resp := createReceipt(t, h, dto.ReceiptLineRequest{OrderLineID: orderLineA, ReceivedQty: decimal.NewFromInt(60)})

	_, err := h.uc.UpdateApprovalStatus(context.Background(), resp.ID, dto.ApprovalCallbackRequest{Decision: "MAYBE"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ingreso a bodega
// ──────────────────────────────────────────────────────────────────────────────

func TestFinalize_RegistraEntradasPorCantidadRecibida(t *testing.T) {
	h := newHarness()
	resp := createReceipt(t, h,
		dto.ReceiptLineRequest{OrderLineID: orderLineA, ReceivedQty: decimal.NewFromInt(60)},
		dto.ReceiptLineRequest{OrderLineID: orderLineB, ReceivedQty: decimal.NewFromInt(50)},
	)
	inspectLine(t, h, resp.ID, resp.Lines[0].ID, 50, 10)
	inspectLine(t, h, resp.ID, resp.Lines[1].ID, 50, 0)
	approveReceipt(t, h, resp.ID)

	done, err := h.uc.FinalizeStoreIn(context.Background(), actorID, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReceiptStatusCompleted, done.Status)

	// Lo rechazado también entra; sale después con la devolución
	movs, err := h.mov.ListByReference("goods_receipt", resp.ID)
	require.NoError(t, err)
	require.Len(t, movs, 2)

	balA, err := h.bal.Get(itemA, warehouse1)
	require.NoError(t, err)
	assert.True(t, balA.QuantityOnHand.Equal(decimal.NewFromInt(60)))
	assert.True(t, balA.AverageCost.Equal(decimal.NewFromInt(10)))

	balB, err := h.bal.Get(itemB, warehouse1)
	require.NoError(t, err)
	assert.True(t, balB.QuantityOnHand.Equal(decimal.NewFromInt(50)))
}

func TestFinalize_SinInspeccion_Falla(t *testing.T) {
	h := newHarness()
	resp := createReceipt(t, h, dto.ReceiptLineRequest{OrderLineID: orderLineA, ReceivedQty: decimal.NewFromInt(60)})

	_, err := h.uc.FinalizeStoreIn(context.Background(), actorID, resp.ID)
	assert.ErrorIs(t, err, domain.ErrConflict,
		"sin inspección no hay aprobación y sin aprobación no hay ingreso")
	assert.Empty(t, h.mov.Movements)
}

func TestFinalize_InspeccionadaSinAprobacion_Falla(t *testing.T) {
	h := newHarness()
	resp := createReceipt(t, h, dto.ReceiptLineRequest{OrderLineID: orderLineA, ReceivedQty: decimal.NewFromInt(60)})
	inspectLine(t, h, resp.ID, resp.Lines[0].ID, 60, 0)

	// INSPECTED con aprobación NONE: el ingreso exige APPROVED, sin excepción
	_, err := h.uc.FinalizeStoreIn(context.Background(), actorID, resp.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, h.mov.Movements, "nada entra al libro sin aprobación")

	bal, err := h.bal.Get(itemA, warehouse1)
	require.NoError(t, err)
	assert.True(t, bal.QuantityOnHand.IsZero())
}

func TestFinalize_ConAprobacionPendiente_Falla(t *testing.T) {
	h := newHarness()
	resp := createReceipt(t, h, dto.ReceiptLineRequest{OrderLineID: orderLineA, ReceivedQty: decimal.NewFromInt(60)})
	inspectLine(t, h, resp.ID, resp.Lines[0].ID, 60, 0)
	_, err := h.uc.Submit(context.Background(), actorID, resp.ID)
	require.NoError(t, err)

	_, err = h.uc.FinalizeStoreIn(context.Background(), actorID, resp.ID)
	assert.ErrorIs(t, err, domain.ErrConflict,
		"solo se ingresa con la aprobación resuelta en APPROVED")
}

func TestFinalize_DosVeces_Falla(t *testing.T) {
	h := newHarness()
	resp := createReceipt(t, h, dto.ReceiptLineRequest{OrderLineID: orderLineA, ReceivedQty: decimal.NewFromInt(60)})
	inspectLine(t, h, resp.ID, resp.Lines[0].ID, 60, 0)
	approveReceipt(t, h, resp.ID)

	_, err := h.uc.FinalizeStoreIn(context.Background(), actorID, resp.ID)
	require.NoError(t, err)

	_, err = h.uc.FinalizeStoreIn(context.Background(), actorID, resp.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	movs, err := h.mov.ListByReference("goods_receipt", resp.ID)
	require.NoError(t, err)
	assert.Len(t, movs, 1, "el segundo intento no debe duplicar entradas")
}

// ──────────────────────────────────────────────────────────────────────────────
// Devoluciones a proveedor
// ──────────────────────────────────────────────────────────────────────────────

func TestApproveReturn_RequiereRecepcionCompletada(t *testing.T) {
	h := newHarness()
	resp := createReceipt(t, h, dto.ReceiptLineRequest{OrderLineID: orderLineA, ReceivedQty: decimal.NewFromInt(60)})
	inspectLine(t, h, resp.ID, resp.Lines[0].ID, 50, 10)

	rets, err := h.uc.ListReturnsByReceipt(resp.ID)
	require.NoError(t, err)
	require.Len(t, rets, 1)

	_, err = h.uc.ApproveReturn(context.Background(), actorID, rets[0].ID)
	assert.ErrorIs(t, err, domain.ErrConflict,
		"no se puede descargar stock que aún no ingresó")

	// Tras aprobación e ingreso a bodega la devolución sí procede
	approveReceipt(t, h, resp.ID)
	_, err = h.uc.FinalizeStoreIn(context.Background(), actorID, resp.ID)
	require.NoError(t, err)

	approved, err := h.uc.ApproveReturn(context.Background(), actorID, rets[0].ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReturnStatusApproved, approved.Status)

	balA, err := h.bal.Get(itemA, warehouse1)
	require.NoError(t, err)
	assert.True(t, balA.QuantityOnHand.Equal(decimal.NewFromInt(50)),
		"el neto en libro tras la devolución es lo aceptado")

	movs, err := h.mov.ListByReference("purchase_return", rets[0].ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.DirectionOut, movs[0].Direction)
	assert.Equal(t, entity.MovementTypeReturn, movs[0].MovementType)
}

func TestApproveReturn_DosVeces_Falla(t *testing.T) {
	h := newHarness()
	resp := createReceipt(t, h, dto.ReceiptLineRequest{OrderLineID: orderLineA, ReceivedQty: decimal.NewFromInt(60)})
	inspectLine(t, h, resp.ID, resp.Lines[0].ID, 50, 10)
	approveReceipt(t, h, resp.ID)
	_, err := h.uc.FinalizeStoreIn(context.Background(), actorID, resp.ID)
	require.NoError(t, err)

	rets, err := h.uc.ListReturnsByReceipt(resp.ID)
	require.NoError(t, err)
	_, err = h.uc.ApproveReturn(context.Background(), actorID, rets[0].ID)
	require.NoError(t, err)

	_, err = h.uc.ApproveReturn(context.Background(), actorID, rets[0].ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición de la recepción
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateReceipt_RevierteYReaplica(t *testing.T) {
	h := newHarness()
	resp := createReceipt(t, h, dto.ReceiptLineRequest{OrderLineID: orderLineA, ReceivedQty: decimal.NewFromInt(60)})

	updated, err := h.uc.UpdateReceipt(context.Background(), actorID, resp.ID, dto.UpdateReceiptRequest{
		Lines: []dto.ReceiptLineRequest{
			{OrderLineID: orderLineA, ReceivedQty: decimal.NewFromInt(40)},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Lines, 1)
	assert.True(t, updated.Lines[0].ReceivedQty.Equal(decimal.NewFromInt(40)))

	lineA := orderLineByID(t, h, orderLineA)
	assert.True(t, lineA.ReceivedQty.Equal(decimal.NewFromInt(40)),
		"el acumulado de la orden se revierte y se reaplica, no se suma")
}

func TestUpdateReceipt_DescartaVeredictosYVuelveABorrador(t *testing.T) {
	h := newHarness()
	resp := createReceipt(t, h,
		dto.ReceiptLineRequest{OrderLineID: orderLineA, ReceivedQty: decimal.NewFromInt(60)},
		dto.ReceiptLineRequest{OrderLineID: orderLineB, ReceivedQty: decimal.NewFromInt(50)},
	)
	// Solo una línea inspeccionada: sigue en PENDING_INSPECTION y sin devolución
	inspectLine(t, h, resp.ID, resp.Lines[0].ID, 60, 0)

	updated, err := h.uc.UpdateReceipt(context.Background(), actorID, resp.ID, dto.UpdateReceiptRequest{
		Lines: []dto.ReceiptLineRequest{
			{OrderLineID: orderLineA, ReceivedQty: decimal.NewFromInt(30)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ReceiptStatusDraft, updated.Status)
	for _, l := range updated.Lines {
		assert.Empty(t, l.Verdict, "las líneas nuevas no conservan veredicto")
	}
}

func TestUpdateReceipt_TrasRechazoDeAprobacion_CorrigeCantidades(t *testing.T) {
	h := newHarness()
	resp := createReceipt(t, h, dto.ReceiptLineRequest{OrderLineID: orderLineA, ReceivedQty: decimal.NewFromInt(60)})
	inspectLine(t, h, resp.ID, resp.Lines[0].ID, 60, 0)
	_, err := h.uc.Submit(context.Background(), actorID, resp.ID)
	require.NoError(t, err)

	rejected, err := h.uc.UpdateApprovalStatus(context.Background(), resp.ID, dto.ApprovalCallbackRequest{
		Decision: entity.ApprovalRejected,
	})
	require.NoError(t, err)
	require.Equal(t, entity.ReceiptStatusInspected, rejected.Status)

	// El rechazo devuelve el control a edición: las cantidades se corrigen
	updated, err := h.uc.UpdateReceipt(context.Background(), actorID, resp.ID, dto.UpdateReceiptRequest{
		Lines: []dto.ReceiptLineRequest{
			{OrderLineID: orderLineA, ReceivedQty: decimal.NewFromInt(45)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ReceiptStatusDraft, updated.Status)
	require.Len(t, updated.Lines, 1)
	assert.True(t, updated.Lines[0].ReceivedQty.Equal(decimal.NewFromInt(45)))
	assert.Empty(t, updated.Lines[0].Verdict, "los veredictos anteriores se descartan")

	lineA := orderLineByID(t, h, orderLineA)
	assert.True(t, lineA.ReceivedQty.Equal(decimal.NewFromInt(45)),
		"el acumulado de la orden refleja la corrección")

	// El documento corregido recorre de nuevo inspección y aprobación
	reinspected := inspectLine(t, h, resp.ID, updated.Lines[0].ID, 45, 0)
	require.Equal(t, entity.ReceiptStatusInspected, reinspected.Status)
	approveReceipt(t, h, resp.ID)

	done, err := h.uc.FinalizeStoreIn(context.Background(), actorID, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReceiptStatusCompleted, done.Status)
}

func TestUpdateReceipt_BloqueadoConDevolucionGenerada(t *testing.T) {
	h := newHarness()
	resp := createReceipt(t, h, dto.ReceiptLineRequest{OrderLineID: orderLineA, ReceivedQty: decimal.NewFromInt(60)})
	inspectLine(t, h, resp.ID, resp.Lines[0].ID, 50, 10)

	_, err := h.uc.UpdateReceipt(context.Background(), actorID, resp.ID, dto.UpdateReceiptRequest{
		Lines: []dto.ReceiptLineRequest{
			{OrderLineID: orderLineA, ReceivedQty: decimal.NewFromInt(30)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdateReceipt_NoEditableTrasIngreso(t *testing.T) {
	h := newHarness()
	resp := createReceipt(t, h, dto.ReceiptLineRequest{OrderLineID: orderLineA, ReceivedQty: decimal.NewFromInt(60)})
	inspectLine(t, h, resp.ID, resp.Lines[0].ID, 60, 0)
	approveReceipt(t, h, resp.ID)
	_, err := h.uc.FinalizeStoreIn(context.Background(), actorID, resp.ID)
	require.NoError(t, err)

	_, err = h.uc.UpdateReceipt(context.Background(), actorID, resp.ID, dto.UpdateReceiptRequest{
		Lines: []dto.ReceiptLineRequest{
			{OrderLineID: orderLineA, ReceivedQty: decimal.NewFromInt(30)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Acta PDF
// ──────────────────────────────────────────────────────────────────────────────

func TestReceiptPDF_IncluyeNumeroDelActa(t *testing.T) {
	h := newHarness()
	resp := createReceipt(t, h, dto.ReceiptLineRequest{OrderLineID: orderLineA, ReceivedQty: decimal.NewFromInt(60)})

	pdfBytes, err := h.uc.ReceiptPDF(resp.ID)
	require.NoError(t, err)
	assert.Contains(t, string(pdfBytes), resp.Number)
}
